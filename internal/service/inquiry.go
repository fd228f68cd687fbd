package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/mail"
	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/internal/repository"
)

// Batch actions accepted by Batch operation
const (
	BatchActionDelete       = "delete"
	BatchActionUpdateStatus = "updateStatus"
)

// csvHeader is the fixed 13-column export header, kept byte-for-byte for
// spreadsheet consumers of the existing export
const csvHeader = "询价单号,客户姓名,联系电话,邮箱,公司,产品名称,数量,需求描述,紧急程度,状态,报价金额,创建时间,更新时间"

// utf8BOM makes spreadsheet software pick UTF-8 for the Chinese header
const utf8BOM = "\uFEFF"

// NewInquiry is payload of the public submission endpoint
type NewInquiry struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Company       string
	ProductName   string
	Quantity      int
	Requirements  string
	Urgency       model.Urgency
}

// InquiryService exposes inquiry store operations
type InquiryService interface {
	List(context.Context, repository.InquiryListQuery) (*repository.InquiryPage, error)
	FindByID(context.Context, string) (*model.Inquiry, error)
	Create(context.Context, NewInquiry) (*model.Inquiry, error)
	UpdateStatus(context.Context, string, repository.InquiryStatusPatch) (*model.Inquiry, error)
	Replace(context.Context, string, repository.InquiryUpdate) (*model.Inquiry, error)
	DeleteByID(context.Context, string) error
	Batch(context.Context, string, []string, model.Status) error
	ExportCSV(context.Context, repository.InquiryExportFilter) ([]byte, error)
}

type inquiryService struct {
	inquiryRepo repository.InquiryRepository
	mailer      mail.Mailer
	now         func() time.Time
}

// NewInquiryService builds InquiryService
func NewInquiryService(inquiryRepo repository.InquiryRepository, mailer mail.Mailer) InquiryService {
	return &inquiryService{inquiryRepo: inquiryRepo, mailer: mailer, now: time.Now}
}

func (s *inquiryService) List(ctx context.Context, q repository.InquiryListQuery) (*repository.InquiryPage, error) {
	return s.inquiryRepo.List(ctx, q)
}

func (s *inquiryService) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	return s.inquiryRepo.FindByID(ctx, id)
}

func (s *inquiryService) Create(ctx context.Context, n NewInquiry) (*model.Inquiry, error) {
	now := s.now().UTC()

	urgency := n.Urgency
	if urgency == "" {
		urgency = model.UrgencyNormal
	}

	inquiry := &model.Inquiry{
		ID:            uuid.NewString(),
		InquiryNumber: generateInquiryNumber(now),
		CustomerName:  n.CustomerName,
		CustomerPhone: n.CustomerPhone,
		CustomerEmail: n.CustomerEmail,
		Company:       n.Company,
		ProductName:   n.ProductName,
		Quantity:      n.Quantity,
		Requirements:  n.Requirements,
		Urgency:       urgency,
		Status:        model.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if err := s.mailer.SendInquiryNotification(*inquiry); err != nil {
		logrus.WithError(err).WithField("inquiryNumber", inquiry.InquiryNumber).
			Warn("failed to send inquiry notification")
	}
	return inquiry, nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id string, patch repository.InquiryStatusPatch) (*model.Inquiry, error) {
	updated, err := s.inquiryRepo.UpdateStatus(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.AdminReply != nil {
		if err := s.mailer.SendInquiryReply(*updated); err != nil {
			logrus.WithError(err).WithField("inquiryNumber", updated.InquiryNumber).
				Warn("failed to send inquiry reply")
		}
	}
	return updated, nil
}

func (s *inquiryService) Replace(ctx context.Context, id string, upd repository.InquiryUpdate) (*model.Inquiry, error) {
	return s.inquiryRepo.Replace(ctx, id, upd)
}

func (s *inquiryService) DeleteByID(ctx context.Context, id string) error {
	return s.inquiryRepo.DeleteByID(ctx, id)
}

func (s *inquiryService) Batch(ctx context.Context, action string, ids []string, status model.Status) error {
	switch action {
	case BatchActionDelete:
		return s.inquiryRepo.DeleteAll(ctx, ids)
	case BatchActionUpdateStatus:
		if status == "" {
			return apperrors.NewInvalidArgumentErr("status is required for batch status update")
		}
		return s.inquiryRepo.UpdateStatusAll(ctx, ids, status)
	default:
		return apperrors.NewInvalidArgumentErr("invalid batch action")
	}
}

// ExportCSV renders matching inquiries to CSV. Only the requirements column is
// quoted with doubled embedded quotes; the rest of the columns are emitted
// verbatim to keep the export format of the previous system.
func (s *inquiryService) ExportCSV(ctx context.Context, f repository.InquiryExportFilter) ([]byte, error) {
	inquiries, err := s.inquiryRepo.Filtered(ctx, f)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(utf8BOM)
	sb.WriteString(csvHeader)
	sb.WriteString("\n")

	for i, inq := range inquiries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join([]string{
			inq.InquiryNumber,
			inq.CustomerName,
			inq.CustomerPhone,
			inq.CustomerEmail,
			inq.Company,
			inq.ProductName,
			strconv.Itoa(inq.Quantity),
			`"` + strings.ReplaceAll(inq.Requirements, `"`, `""`) + `"`,
			string(inq.Urgency),
			string(inq.Status),
			inq.QuotedPrice,
			inq.CreatedAt.Format(time.RFC3339),
			inq.UpdatedAt.Format(time.RFC3339),
		}, ","))
	}

	return []byte(sb.String()), nil
}

// generateInquiryNumber derives a human-readable number from the submission
// date and the low-order digits of the wall clock. Not collision-free for
// submissions landing within the same millisecond, kept for compatibility
// with numbers already handed out.
func generateInquiryNumber(now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	return fmt.Sprintf("INQ-%s-%s", now.Format("20060102"), millis[len(millis)-6:])
}

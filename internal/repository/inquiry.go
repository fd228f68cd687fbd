package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
)

const inquiriesFileName = "inquiries.json"

const (
	// SortByCreatedAt orders by creation time
	SortByCreatedAt = "createdAt"
	// SortByUpdatedAt orders by last mutation time
	SortByUpdatedAt = "updatedAt"
	// SortByCustomerName orders by customer name
	SortByCustomerName = "customerName"
	// SortByStatus orders by workflow status
	SortByStatus = "status"
)

// InquiryFilter narrows the listed collection, all predicates are combined with AND
type InquiryFilter struct {
	Status  model.Status
	Urgency model.Urgency
	Search  string
}

// InquiryListQuery is filter, sort and page window of a list request
type InquiryListQuery struct {
	InquiryFilter
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// InquiryPage is a single page of inquiries plus stats over the whole collection
type InquiryPage struct {
	Inquiries  []model.Inquiry
	Pagination model.Pagination
	Stats      model.InquiryStats
}

// InquiryStatusPatch is partial workflow update, nil pointer keeps the stored value,
// non-nil pointer always overwrites even when it points to an empty string
type InquiryStatusPatch struct {
	Status      model.Status
	Notes       *string
	QuotedPrice *string
	AdminReply  *string
}

// InquiryUpdate is full update of editable fields, optional pointers follow patch semantics
type InquiryUpdate struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Company       string
	ProductName   string
	Quantity      int
	Requirements  string
	Urgency       *model.Urgency
	Status        *model.Status
	QuotedPrice   *string
	Notes         *string
}

// InquiryExportFilter narrows the exported collection, date bounds are inclusive
type InquiryExportFilter struct {
	Status    model.Status
	StartDate *time.Time
	EndDate   *time.Time
}

// InquiryRepository is backing storage of customer inquiries
type InquiryRepository interface {
	List(context.Context, InquiryListQuery) (*InquiryPage, error)
	FindByID(context.Context, string) (*model.Inquiry, error)
	Create(context.Context, *model.Inquiry) error
	UpdateStatus(context.Context, string, InquiryStatusPatch) (*model.Inquiry, error)
	Replace(context.Context, string, InquiryUpdate) (*model.Inquiry, error)
	DeleteByID(context.Context, string) error
	DeleteAll(context.Context, []string) error
	UpdateStatusAll(context.Context, []string, model.Status) error
	Filtered(context.Context, InquiryExportFilter) ([]model.Inquiry, error)
	CountByStatus(context.Context) (model.InquiryStats, error)
	CreatedSince(context.Context, time.Time) ([]model.Inquiry, error)
}

// inquiriesDocument is the on-disk layout of the store file
type inquiriesDocument struct {
	Inquiries []model.Inquiry `json:"inquiries"`
}

// fileInquiryRepository keeps the whole collection in a single JSON file.
// Every write rewrites the entire file, so the store assumes a single writer
// process; the mutex only serializes read-modify-write cycles in-process.
type fileInquiryRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileInquiryRepository builds file-backed InquiryRepository, the store file
// is created empty on first run if absent
func NewFileInquiryRepository(dataDir string) (InquiryRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, apperrors.NewPersistenceErr("failed to create data directory", err)
	}

	path := filepath.Join(dataDir, inquiriesFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		doc, err := json.Marshal(inquiriesDocument{Inquiries: []model.Inquiry{}})
		if err != nil {
			return nil, apperrors.NewPersistenceErr("failed to encode empty inquiries document", err)
		}
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return nil, apperrors.NewPersistenceErr("failed to initialize inquiries file", err)
		}
	}

	return &fileInquiryRepository{path: path, now: time.Now}, nil
}

// readAll loads the whole collection, unreadable or corrupt storage degrades
// to an empty collection instead of failing the read path
func (r *fileInquiryRepository) readAll() []model.Inquiry {
	data, err := os.ReadFile(r.path)
	if err != nil {
		logrus.WithError(err).Warn("failed to read inquiries file, falling back to empty collection")
		return []model.Inquiry{}
	}

	var doc inquiriesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logrus.WithError(err).Warn("inquiries file is corrupt, falling back to empty collection")
		return []model.Inquiry{}
	}

	if doc.Inquiries == nil {
		return []model.Inquiry{}
	}
	return doc.Inquiries
}

func (r *fileInquiryRepository) writeAll(inquiries []model.Inquiry) error {
	data, err := json.MarshalIndent(inquiriesDocument{Inquiries: inquiries}, "", "  ")
	if err != nil {
		return apperrors.NewPersistenceErr("failed to encode inquiries document", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return apperrors.NewPersistenceErr("failed to write inquiries file", err)
	}
	return nil
}

func (r *fileInquiryRepository) List(_ context.Context, q InquiryListQuery) (*InquiryPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.readAll()

	matched := filterInquiries(all, q.InquiryFilter)
	sortInquiries(matched, q.SortBy, q.SortOrder)

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 10
	}

	total := len(matched)
	pages := (total + limit - 1) / limit

	skip := (page - 1) * limit
	if skip > total {
		skip = total
	}
	end := skip + limit
	if end > total {
		end = total
	}

	return &InquiryPage{
		Inquiries: matched[skip:end],
		Pagination: model.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
		Stats: countByStatus(all),
	}, nil
}

func (r *fileInquiryRepository) FindByID(_ context.Context, id string) (*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inq := range r.readAll() {
		if inq.ID == id {
			found := inq
			return &found, nil
		}
	}
	return nil, apperrors.NewNotFoundErr("inquiry does not exist")
}

func (r *fileInquiryRepository) Create(_ context.Context, inquiry *model.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inquiries := append(r.readAll(), *inquiry)
	return r.writeAll(inquiries)
}

func (r *fileInquiryRepository) UpdateStatus(_ context.Context, id string, patch InquiryStatusPatch) (*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inquiries := r.readAll()
	idx := indexByID(inquiries, id)
	if idx < 0 {
		return nil, apperrors.NewNotFoundErr("inquiry does not exist")
	}

	now := r.now().UTC()

	inq := &inquiries[idx]
	inq.Status = patch.Status
	inq.UpdatedAt = now

	if patch.Notes != nil {
		inq.Notes = *patch.Notes
	}
	if patch.QuotedPrice != nil {
		inq.QuotedPrice = *patch.QuotedPrice
	}
	if patch.AdminReply != nil {
		inq.AdminReply = *patch.AdminReply
		repliedAt := now
		inq.RepliedAt = &repliedAt
	}

	if err := r.writeAll(inquiries); err != nil {
		return nil, err
	}

	updated := *inq
	return &updated, nil
}

func (r *fileInquiryRepository) Replace(_ context.Context, id string, upd InquiryUpdate) (*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inquiries := r.readAll()
	idx := indexByID(inquiries, id)
	if idx < 0 {
		return nil, apperrors.NewNotFoundErr("inquiry does not exist")
	}

	inq := &inquiries[idx]
	inq.CustomerName = upd.CustomerName
	inq.CustomerPhone = upd.CustomerPhone
	inq.CustomerEmail = upd.CustomerEmail
	inq.Company = upd.Company
	inq.ProductName = upd.ProductName
	inq.Quantity = upd.Quantity
	inq.Requirements = upd.Requirements
	inq.UpdatedAt = r.now().UTC()

	if upd.Urgency != nil {
		inq.Urgency = *upd.Urgency
	}
	if upd.Status != nil {
		inq.Status = *upd.Status
	}
	if upd.QuotedPrice != nil {
		inq.QuotedPrice = *upd.QuotedPrice
	}
	if upd.Notes != nil {
		inq.Notes = *upd.Notes
	}

	if err := r.writeAll(inquiries); err != nil {
		return nil, err
	}

	updated := *inq
	return &updated, nil
}

func (r *fileInquiryRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inquiries := r.readAll()
	idx := indexByID(inquiries, id)
	if idx < 0 {
		return apperrors.NewNotFoundErr("inquiry does not exist")
	}

	inquiries = append(inquiries[:idx], inquiries[idx+1:]...)
	return r.writeAll(inquiries)
}

// DeleteAll removes all inquiries with matching ids, unknown ids are silently skipped
func (r *fileInquiryRepository) DeleteAll(_ context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := idSet(ids)

	kept := make([]model.Inquiry, 0)
	for _, inq := range r.readAll() {
		if _, ok := drop[inq.ID]; !ok {
			kept = append(kept, inq)
		}
	}
	return r.writeAll(kept)
}

// UpdateStatusAll applies status and a shared timestamp to all matching ids,
// unknown ids are silently skipped
func (r *fileInquiryRepository) UpdateStatusAll(_ context.Context, ids []string, status model.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	match := idSet(ids)
	now := r.now().UTC()

	inquiries := r.readAll()
	for i := range inquiries {
		if _, ok := match[inquiries[i].ID]; ok {
			inquiries[i].Status = status
			inquiries[i].UpdatedAt = now
		}
	}
	return r.writeAll(inquiries)
}

// Filtered returns inquiries matching export filter in stored collection order
func (r *fileInquiryRepository) Filtered(_ context.Context, f InquiryExportFilter) ([]model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]model.Inquiry, 0)
	for _, inq := range r.readAll() {
		if f.Status != "" && inq.Status != f.Status {
			continue
		}
		if f.StartDate != nil && inq.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && inq.CreatedAt.After(*f.EndDate) {
			continue
		}
		matched = append(matched, inq)
	}
	return matched, nil
}

func (r *fileInquiryRepository) CountByStatus(_ context.Context) (model.InquiryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return countByStatus(r.readAll()), nil
}

func (r *fileInquiryRepository) CreatedSince(_ context.Context, since time.Time) ([]model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	recent := make([]model.Inquiry, 0)
	for _, inq := range r.readAll() {
		if !inq.CreatedAt.Before(since) {
			recent = append(recent, inq)
		}
	}
	return recent, nil
}

func indexByID(inquiries []model.Inquiry, id string) int {
	for i := range inquiries {
		if inquiries[i].ID == id {
			return i
		}
	}
	return -1
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func filterInquiries(inquiries []model.Inquiry, f InquiryFilter) []model.Inquiry {
	matched := make([]model.Inquiry, 0, len(inquiries))
	search := strings.ToLower(f.Search)

	for _, inq := range inquiries {
		if f.Status != "" && inq.Status != f.Status {
			continue
		}
		if f.Urgency != "" && inq.Urgency != f.Urgency {
			continue
		}
		if f.Search != "" && !matchesSearch(inq, f.Search, search) {
			continue
		}
		matched = append(matched, inq)
	}
	return matched
}

// matchesSearch checks case-insensitive substring on text fields and plain
// substring on phone
func matchesSearch(inq model.Inquiry, raw, lowered string) bool {
	return strings.Contains(strings.ToLower(inq.CustomerName), lowered) ||
		strings.Contains(strings.ToLower(inq.Company), lowered) ||
		strings.Contains(strings.ToLower(inq.ProductName), lowered) ||
		strings.Contains(strings.ToLower(inq.InquiryNumber), lowered) ||
		strings.Contains(inq.CustomerPhone, raw) ||
		strings.Contains(strings.ToLower(inq.CustomerEmail), lowered)
}

// sortInquiries orders by one of the enumerated sortable fields, ties are not
// broken deterministically (known limitation kept from the stored behavior)
func sortInquiries(inquiries []model.Inquiry, sortBy, sortOrder string) {
	var less func(a, b model.Inquiry) bool

	switch sortBy {
	case SortByUpdatedAt:
		less = func(a, b model.Inquiry) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortByCustomerName:
		less = func(a, b model.Inquiry) bool { return a.CustomerName < b.CustomerName }
	case SortByStatus:
		less = func(a, b model.Inquiry) bool { return a.Status < b.Status }
	default:
		less = func(a, b model.Inquiry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.Slice(inquiries, func(i, j int) bool {
		if sortOrder == "asc" {
			return less(inquiries[i], inquiries[j])
		}
		return less(inquiries[j], inquiries[i])
	})
}

func countByStatus(inquiries []model.Inquiry) model.InquiryStats {
	stats := model.InquiryStats{Total: len(inquiries)}
	for _, inq := range inquiries {
		switch inq.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusProcessing:
			stats.Processing++
		case model.StatusQuoted:
			stats.Quoted++
		case model.StatusCompleted:
			stats.Completed++
		case model.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

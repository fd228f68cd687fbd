package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	mailMocks "github.com/shixiaoya/materials/internal/mail/mocks"
	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/internal/repository"
	rpsMocks "github.com/shixiaoya/materials/internal/repository/mocks"
)

var inquiryNumberPattern = regexp.MustCompile(`^INQ-\d{8}-\d{6}$`)

type inquiryServiceTestSuite struct {
	suite.Suite
	inquirySvc     InquiryService
	inquiryRpsMock *rpsMocks.InquiryRepository
	mailerMock     *mailMocks.Mailer
	clock          time.Time
}

func (s *inquiryServiceTestSuite) SetupTest() {
	t := s.T()
	s.inquiryRpsMock = rpsMocks.NewInquiryRepository(t)
	s.mailerMock = mailMocks.NewMailer(t)
	s.clock = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	svc := NewInquiryService(s.inquiryRpsMock, s.mailerMock).(*inquiryService)
	svc.now = func() time.Time { return s.clock }
	s.inquirySvc = svc
}

func (s *inquiryServiceTestSuite) TestCreateGeneratesIdentityAndDefaults() {
	ctx := context.Background()

	s.inquiryRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Inquiry")).Return(nil).Once()
	s.mailerMock.On("SendInquiryNotification", mock.AnythingOfType("model.Inquiry")).Return(nil).Once()

	s.T().Log("created inquiry gets id, number, default urgency and pending status")
	{
		inquiry, err := s.inquirySvc.Create(ctx, NewInquiry{
			CustomerName:  "张先生",
			CustomerPhone: "13800138001",
			ProductName:   "SU7-胡桃",
			Quantity:      500,
			Requirements:  "需要E0级环保标准",
		})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotEmpty(inquiry.ID, "id must be generated")
		s.Assert().Regexp(inquiryNumberPattern, inquiry.InquiryNumber)
		s.Assert().Equal(model.UrgencyNormal, inquiry.Urgency, "absent urgency defaults to normal")
		s.Assert().Equal(model.StatusPending, inquiry.Status)
		s.Assert().Equal(inquiry.CreatedAt, inquiry.UpdatedAt, "timestamps must match at creation")
	}
}

func (s *inquiryServiceTestSuite) TestCreateSurvivesMailFailure() {
	ctx := context.Background()

	s.inquiryRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Inquiry")).Return(nil).Once()
	s.mailerMock.On("SendInquiryNotification", mock.AnythingOfType("model.Inquiry")).
		Return(apperrors.NewPersistenceErr("smtp unavailable", nil)).Once()

	s.T().Log("mail failure must not fail the submission")
	{
		inquiry, err := s.inquirySvc.Create(ctx, NewInquiry{
			CustomerName:  "张先生",
			CustomerPhone: "13800138001",
			ProductName:   "SU7-胡桃",
			Quantity:      500,
			Requirements:  "需要E0级环保标准",
		})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(inquiry)
	}
}

func (s *inquiryServiceTestSuite) TestUpdateStatusWithReplySendsMail() {
	ctx := context.Background()
	reply := "已为您准备报价"

	updated := &model.Inquiry{ID: "a", AdminReply: reply, CustomerEmail: "customer@example.com"}

	s.inquiryRpsMock.On("UpdateStatus", ctx, "a", mock.AnythingOfType("repository.InquiryStatusPatch")).
		Return(updated, nil).Once()
	s.mailerMock.On("SendInquiryReply", *updated).Return(nil).Once()

	s.T().Log("attached reply triggers customer mail")
	{
		_, err := s.inquirySvc.UpdateStatus(ctx, "a", repository.InquiryStatusPatch{
			Status:     model.StatusQuoted,
			AdminReply: &reply,
		})
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *inquiryServiceTestSuite) TestUpdateStatusWithoutReplySkipsMail() {
	ctx := context.Background()

	s.inquiryRpsMock.On("UpdateStatus", ctx, "a", mock.AnythingOfType("repository.InquiryStatusPatch")).
		Return(&model.Inquiry{ID: "a"}, nil).Once()

	s.T().Log("patch without reply must not mail the customer")
	{
		_, err := s.inquirySvc.UpdateStatus(ctx, "a", repository.InquiryStatusPatch{Status: model.StatusProcessing})
		s.Assert().NoError(err, "no error must be raised")
		s.mailerMock.AssertNotCalled(s.T(), "SendInquiryReply", mock.Anything)
	}
}

func (s *inquiryServiceTestSuite) TestBatchValidatesAction() {
	ctx := context.Background()

	s.T().Log("unknown action must be rejected")
	{
		err := s.inquirySvc.Batch(ctx, "archive", []string{"a"}, "")
		s.Assert().IsType(&apperrors.InvalidArgumentErr{}, err)
	}

	s.T().Log("status update without status must be rejected")
	{
		err := s.inquirySvc.Batch(ctx, BatchActionUpdateStatus, []string{"a"}, "")
		s.Assert().IsType(&apperrors.InvalidArgumentErr{}, err)
	}
}

func (s *inquiryServiceTestSuite) TestBatchDelete() {
	ctx := context.Background()
	ids := []string{"a", "b"}

	s.inquiryRpsMock.On("DeleteAll", ctx, ids).Return(nil).Once()

	err := s.inquirySvc.Batch(ctx, BatchActionDelete, ids, "")
	s.Assert().NoError(err, "no error must be raised")
}

func (s *inquiryServiceTestSuite) TestExportCSV() {
	ctx := context.Background()

	created := time.Date(2024, time.March, 10, 8, 30, 0, 0, time.UTC)
	s.inquiryRpsMock.On("Filtered", ctx, mock.AnythingOfType("repository.InquiryExportFilter")).
		Return([]model.Inquiry{
			{
				InquiryNumber: "INQ-20240310-123456",
				CustomerName:  "张先生",
				CustomerPhone: "13800138001",
				ProductName:   "SU7-胡桃",
				Quantity:      500,
				Requirements:  `需要"E0级"标准`,
				Urgency:       model.UrgencyNormal,
				Status:        model.StatusQuoted,
				QuotedPrice:   "¥134,000",
				CreatedAt:     created,
				UpdatedAt:     created,
			},
		}, nil).Once()

	s.T().Log("export starts with BOM, keeps the fixed header and quotes only requirements")
	{
		csv, err := s.inquirySvc.ExportCSV(ctx, repository.InquiryExportFilter{})
		s.Require().NoError(err, "no error must be raised")

		content := string(csv)
		s.Assert().True(len(content) > 0 && content[:3] == "\xef\xbb\xbf", "export must start with UTF-8 BOM")
		s.Assert().Contains(content, csvHeader)
		s.Assert().Contains(content, `"需要""E0级""标准"`, "embedded quotes must be doubled inside requirements")
		s.Assert().Contains(content, "2024-03-10T08:30:00Z")
		s.Assert().Contains(content, ",500,")
	}
}

func TestInquiryService(t *testing.T) {
	suite.Run(t, new(inquiryServiceTestSuite))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shixiaoya/materials/internal/model"
	rpsMocks "github.com/shixiaoya/materials/internal/repository/mocks"
)

type statsServiceTestSuite struct {
	suite.Suite
	statsSvc         StatsService
	inquiryRpsMock   *rpsMocks.InquiryRepository
	productRpsMock   *rpsMocks.ProductRepository
	caseStudyRpsMock *rpsMocks.CaseStudyRepository
	visitRpsMock     *rpsMocks.VisitRepository
	clock            time.Time
}

func (s *statsServiceTestSuite) SetupTest() {
	t := s.T()
	s.inquiryRpsMock = rpsMocks.NewInquiryRepository(t)
	s.productRpsMock = rpsMocks.NewProductRepository(t)
	s.caseStudyRpsMock = rpsMocks.NewCaseStudyRepository(t)
	s.visitRpsMock = rpsMocks.NewVisitRepository(t)
	s.clock = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	svc := NewStatsService(s.inquiryRpsMock, s.productRpsMock, s.caseStudyRpsMock, s.visitRpsMock).(*statsService)
	svc.now = func() time.Time { return s.clock }
	s.statsSvc = svc
}

func (s *statsServiceTestSuite) TestDashboardAggregates() {
	ctx := context.Background()

	weekly := make([]model.Inquiry, 0, 12)
	for i := 0; i < 12; i++ {
		weekly = append(weekly, model.Inquiry{
			ID:        string(rune('a' + i)),
			CreatedAt: s.clock.Add(-time.Duration(i) * time.Hour),
		})
	}

	s.inquiryRpsMock.On("CountByStatus", ctx).Return(model.InquiryStats{Total: 40, Pending: 7}, nil).Once()
	s.productRpsMock.On("CountActive", ctx).Return(24, nil).Once()
	s.caseStudyRpsMock.On("CountActive", ctx).Return(6, nil).Once()
	s.inquiryRpsMock.On("CreatedSince", ctx, mock.AnythingOfType("time.Time")).Return(weekly, nil).Once()
	s.visitRpsMock.On("CountSince", ctx, mock.AnythingOfType("time.Time")).Return(int64(321), nil).Once()

	s.T().Log("dashboard combines counters from every storage")
	{
		stats, err := s.statsSvc.Dashboard(ctx)
		s.Require().NoError(err, "no error must be raised")

		s.Assert().Equal(24, stats.TotalProducts)
		s.Assert().Equal(6, stats.TotalCases)
		s.Assert().Equal(40, stats.TotalInquiries)
		s.Assert().Equal(7, stats.PendingInquiries)
		s.Assert().Equal(12, stats.WeeklyInquiries)
		s.Assert().Equal(int64(321), stats.WeeklyVisits)

		s.Assert().Len(stats.RecentInquiries, 10, "recent list is capped")
		s.Assert().Equal("a", stats.RecentInquiries[0].ID, "recent list starts with the newest inquiry")
	}
}

func (s *statsServiceTestSuite) TestInquiryTrendsIncludeEmptyDays() {
	ctx := context.Background()

	inquiries := []model.Inquiry{
		{CreatedAt: s.clock, Status: model.StatusPending},
		{CreatedAt: s.clock.Add(-time.Hour), Status: model.StatusQuoted},
		{CreatedAt: s.clock.AddDate(0, 0, -2), Status: model.StatusCompleted},
	}

	s.inquiryRpsMock.On("CreatedSince", ctx, mock.AnythingOfType("time.Time")).Return(inquiries, nil).Once()

	s.T().Log("trend has one point per day, empty days included")
	{
		points, err := s.statsSvc.InquiryTrends(ctx, 3)
		s.Require().NoError(err, "no error must be raised")
		s.Require().Len(points, 3)

		s.Assert().Equal("2024-03-13", points[0].Date)
		s.Assert().Equal(1, points[0].Total)

		s.Assert().Equal("2024-03-14", points[1].Date)
		s.Assert().Zero(points[1].Total, "day without inquiries stays zeroed")

		s.Assert().Equal("2024-03-15", points[2].Date)
		s.Assert().Equal(2, points[2].Total)
		s.Assert().Equal(1, points[2].Pending)
		s.Assert().Equal(1, points[2].Quoted)
	}
}

func (s *statsServiceTestSuite) TestRecordVisitSwallowsStorageFailure() {
	ctx := context.Background()

	s.visitRpsMock.On("Insert", ctx, mock.AnythingOfType("model.Visit")).
		Return(context.DeadlineExceeded).Once()

	s.T().Log("analytics failure must never surface to the visitor")
	{
		s.statsSvc.RecordVisit(ctx, model.Visit{Path: "/products"})
	}
}

func TestStatsService(t *testing.T) {
	suite.Run(t, new(statsServiceTestSuite))
}

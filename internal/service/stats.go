package service

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/internal/repository"
)

const recentInquiriesLimit = 10

// DashboardStats aggregates counters shown on the back office landing page
type DashboardStats struct {
	TotalProducts    int             `json:"totalProducts"`
	TotalCases       int             `json:"totalCases"`
	TotalInquiries   int             `json:"totalInquiries"`
	PendingInquiries int             `json:"pendingInquiries"`
	WeeklyInquiries  int             `json:"weeklyInquiries"`
	WeeklyVisits     int64           `json:"weeklyVisits"`
	RecentInquiries  []model.Inquiry `json:"recentInquiries"`
}

// InquiryTrendPoint is a single day of the inquiry trend chart
type InquiryTrendPoint struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Pending int    `json:"pending"`
	Quoted  int    `json:"quoted"`
}

// StatsService exposes back office analytics
type StatsService interface {
	Dashboard(context.Context) (*DashboardStats, error)
	InquiryTrends(context.Context, int) ([]InquiryTrendPoint, error)
	RecordVisit(context.Context, model.Visit)
}

type statsService struct {
	inquiryRepo   repository.InquiryRepository
	productRepo   repository.ProductRepository
	caseStudyRepo repository.CaseStudyRepository
	visitRepo     repository.VisitRepository
	now           func() time.Time
}

// NewStatsService builds StatsService
func NewStatsService(
	inquiryRepo repository.InquiryRepository,
	productRepo repository.ProductRepository,
	caseStudyRepo repository.CaseStudyRepository,
	visitRepo repository.VisitRepository,
) StatsService {
	return &statsService{
		inquiryRepo:   inquiryRepo,
		productRepo:   productRepo,
		caseStudyRepo: caseStudyRepo,
		visitRepo:     visitRepo,
		now:           time.Now,
	}
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	inquiryStats, err := s.inquiryRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.productRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	totalCases, err := s.caseStudyRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	weekAgo := s.now().UTC().AddDate(0, 0, -7)

	weekly, err := s.inquiryRepo.CreatedSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}

	weeklyVisits, err := s.visitRepo.CountSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:    totalProducts,
		TotalCases:       totalCases,
		TotalInquiries:   inquiryStats.Total,
		PendingInquiries: inquiryStats.Pending,
		WeeklyInquiries:  len(weekly),
		WeeklyVisits:     weeklyVisits,
		RecentInquiries:  recentInquiries(weekly),
	}, nil
}

// InquiryTrends groups inquiries created over the last days into one point per
// day, empty days included
func (s *statsService) InquiryTrends(ctx context.Context, days int) ([]InquiryTrendPoint, error) {
	if days < 1 {
		days = 30
	}

	start := s.now().UTC().AddDate(0, 0, -(days - 1))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	inquiries, err := s.inquiryRepo.CreatedSince(ctx, start)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*InquiryTrendPoint, days)
	points := make([]InquiryTrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, InquiryTrendPoint{Date: date})
		byDate[date] = &points[len(points)-1]
	}

	for _, inq := range inquiries {
		point, ok := byDate[inq.CreatedAt.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		point.Total++
		switch inq.Status {
		case model.StatusPending:
			point.Pending++
		case model.StatusQuoted:
			point.Quoted++
		}
	}

	return points, nil
}

// RecordVisit stores a page view, failures are logged and never surfaced to
// the visitor
func (s *statsService) RecordVisit(ctx context.Context, v model.Visit) {
	if v.VisitedAt.IsZero() {
		v.VisitedAt = s.now().UTC()
	}
	if err := s.visitRepo.Insert(ctx, v); err != nil {
		logrus.WithError(err).Warn("failed to record page visit")
	}
}

func recentInquiries(inquiries []model.Inquiry) []model.Inquiry {
	recent := make([]model.Inquiry, len(inquiries))
	copy(recent, inquiries)

	sort.Slice(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	if len(recent) > recentInquiriesLimit {
		recent = recent[:recentInquiriesLimit]
	}
	return recent
}

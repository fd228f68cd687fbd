package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shixiaoya/materials/internal/cache"
	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/internal/repository"
)

// ProductInput is payload of product create and update endpoints
type ProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       string
	Images      []string
	IsHot       bool
	IsActive    bool
	CategoryID  string
}

// CaseStudyInput is payload of case study create endpoint
type CaseStudyInput struct {
	Title       string
	Slug        string
	Description string
	Location    string
	ProjectType string
	Area        string
	ClientName  string
	Images      []string
	Sort        int
}

// CatalogService exposes public catalog browsing and admin management
type CatalogService interface {
	Products(context.Context, repository.ProductFilter) ([]model.Product, model.Pagination, error)
	ProductBySlug(context.Context, string) (*model.Product, error)
	CreateProduct(context.Context, ProductInput) (*model.Product, error)
	UpdateProduct(context.Context, string, ProductInput) (*model.Product, error)
	DeleteProduct(context.Context, string) error
	CaseStudies(context.Context, repository.CaseStudyFilter) ([]model.CaseStudy, model.Pagination, error)
	CaseStudyBySlug(context.Context, string) (*model.CaseStudy, error)
	CreateCaseStudy(context.Context, CaseStudyInput) (*model.CaseStudy, error)
}

type catalogService struct {
	productRepo   repository.ProductRepository
	caseStudyRepo repository.CaseStudyRepository
	catalogCache  cache.CatalogCache
	now           func() time.Time
}

// NewCatalogService builds CatalogService
func NewCatalogService(
	productRepo repository.ProductRepository,
	caseStudyRepo repository.CaseStudyRepository,
	catalogCache cache.CatalogCache,
) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		caseStudyRepo: caseStudyRepo,
		catalogCache:  catalogCache,
		now:           time.Now,
	}
}

func (s *catalogService) Products(ctx context.Context, f repository.ProductFilter) ([]model.Product, model.Pagination, error) {
	products, total, err := s.productRepo.FindPage(ctx, f)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return products, paginationFor(f.Page, f.Limit, 12, total), nil
}

func (s *catalogService) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	cached, err := s.catalogCache.FindProductBySlug(ctx, slug)
	if err != nil {
		logrus.WithError(err).Warn("product cache lookup failed")
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NewNotFoundErr("product does not exist")
	}

	if err := s.catalogCache.CacheProduct(ctx, product); err != nil {
		logrus.WithError(err).Warn("failed to cache product")
	}
	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	now := s.now().UTC()

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		IsHot:       in.IsHot,
		IsActive:    in.IsActive,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.NewNotFoundErr("product does not exist")
	}

	product := &model.Product{
		ID:          id,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		IsHot:       in.IsHot,
		IsActive:    in.IsActive,
		CategoryID:  in.CategoryID,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   s.now().UTC(),
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := s.catalogCache.EvictProductBySlug(ctx, existing.Slug); err != nil {
		logrus.WithError(err).Warn("failed to evict product from cache")
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.NewNotFoundErr("product does not exist")
	}

	if err := s.productRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := s.catalogCache.EvictProductBySlug(ctx, existing.Slug); err != nil {
		logrus.WithError(err).Warn("failed to evict product from cache")
	}
	return nil
}

func (s *catalogService) CaseStudies(ctx context.Context, f repository.CaseStudyFilter) ([]model.CaseStudy, model.Pagination, error) {
	cases, total, err := s.caseStudyRepo.FindPage(ctx, f)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return cases, paginationFor(f.Page, f.Limit, 12, total), nil
}

func (s *catalogService) CaseStudyBySlug(ctx context.Context, slug string) (*model.CaseStudy, error) {
	cached, err := s.catalogCache.FindCaseStudyBySlug(ctx, slug)
	if err != nil {
		logrus.WithError(err).Warn("case study cache lookup failed")
	}
	if cached != nil {
		return cached, nil
	}

	caseStudy, err := s.caseStudyRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if caseStudy == nil {
		return nil, apperrors.NewNotFoundErr("case study does not exist")
	}

	if err := s.catalogCache.CacheCaseStudy(ctx, caseStudy); err != nil {
		logrus.WithError(err).Warn("failed to cache case study")
	}
	return caseStudy, nil
}

func (s *catalogService) CreateCaseStudy(ctx context.Context, in CaseStudyInput) (*model.CaseStudy, error) {
	exists, err := s.caseStudyRepo.ExistsBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewBusinessErr("slug", "case study slug already exists")
	}

	now := s.now().UTC()

	caseStudy := &model.CaseStudy{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Location:    in.Location,
		ProjectType: in.ProjectType,
		Area:        in.Area,
		ClientName:  in.ClientName,
		Images:      in.Images,
		Sort:        in.Sort,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.caseStudyRepo.Create(ctx, caseStudy); err != nil {
		return nil, err
	}
	return caseStudy, nil
}

func paginationFor(page, limit, defaultLimit, total int) model.Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return model.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}
}

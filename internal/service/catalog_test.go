package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	cacheMocks "github.com/shixiaoya/materials/internal/cache/mocks"
	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
	rpsMocks "github.com/shixiaoya/materials/internal/repository/mocks"
)

type catalogTestData struct {
	ctx     context.Context
	product *model.Product
}

type catalogServiceTestSuite struct {
	suite.Suite
	catalogSvc       CatalogService
	productRpsMock   *rpsMocks.ProductRepository
	caseStudyRpsMock *rpsMocks.CaseStudyRepository
	catalogCacheMock *cacheMocks.CatalogCache
	testData         *catalogTestData
}

func (s *catalogServiceTestSuite) SetupSuite() {
	s.testData = &catalogTestData{
		ctx: context.Background(),
		product: &model.Product{
			ID:       "ecc770d9-4576-4f72-affa-8b1454246692",
			Name:     "圣玛丽胡桃",
			Slug:     "su7-shengmali-hutao",
			Price:    "268.00",
			IsActive: true,
		},
	}
}

func (s *catalogServiceTestSuite) SetupTest() {
	t := s.T()
	s.productRpsMock = rpsMocks.NewProductRepository(t)
	s.caseStudyRpsMock = rpsMocks.NewCaseStudyRepository(t)
	s.catalogCacheMock = cacheMocks.NewCatalogCache(t)
	s.catalogSvc = NewCatalogService(s.productRpsMock, s.caseStudyRpsMock, s.catalogCacheMock)
}

func (s *catalogServiceTestSuite) TestProductBySlugFromCache() {
	ctx := s.testData.ctx
	product := s.testData.product

	s.catalogCacheMock.On("FindProductBySlug", ctx, product.Slug).Return(product, nil).Once()

	s.T().Log("product must be served from cache")
	{
		p, err := s.catalogSvc.ProductBySlug(ctx, product.Slug)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(product, p)
		s.productRpsMock.AssertNotCalled(s.T(), "FindBySlug", ctx, product.Slug)
	}
}

func (s *catalogServiceTestSuite) TestProductBySlugCached() {
	ctx := s.testData.ctx
	product := s.testData.product

	s.catalogCacheMock.On("FindProductBySlug", ctx, product.Slug).Return(nil, nil).Once()
	s.productRpsMock.On("FindBySlug", ctx, product.Slug).Return(product, nil).Once()
	s.catalogCacheMock.On("CacheProduct", ctx, product).Return(nil).Once()

	s.T().Log("product is missing in cache, found in db and cached")
	{
		p, err := s.catalogSvc.ProductBySlug(ctx, product.Slug)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(p, "product must be found")
	}
}

func (s *catalogServiceTestSuite) TestProductBySlugNotFound() {
	ctx := s.testData.ctx

	s.catalogCacheMock.On("FindProductBySlug", ctx, "missing").Return(nil, nil).Once()
	s.productRpsMock.On("FindBySlug", ctx, "missing").Return(nil, nil).Once()

	s.T().Log("missing product raises not found")
	{
		_, err := s.catalogSvc.ProductBySlug(ctx, "missing")
		s.Assert().IsType(&apperrors.NotFoundErr{}, err)
		s.catalogCacheMock.AssertNotCalled(s.T(), "CacheProduct", mock.Anything, mock.Anything)
	}
}

func (s *catalogServiceTestSuite) TestProductBySlugSurvivesCacheFailure() {
	ctx := s.testData.ctx
	product := s.testData.product

	s.catalogCacheMock.On("FindProductBySlug", ctx, product.Slug).Return(nil, errors.New("cache err")).Once()
	s.productRpsMock.On("FindBySlug", ctx, product.Slug).Return(product, nil).Once()
	s.catalogCacheMock.On("CacheProduct", ctx, product).Return(errors.New("cache err")).Once()

	s.T().Log("cache failures must degrade to db lookup")
	{
		p, err := s.catalogSvc.ProductBySlug(ctx, product.Slug)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(p, "product must be found")
	}
}

func (s *catalogServiceTestSuite) TestUpdateProductEvictsCache() {
	ctx := s.testData.ctx
	product := s.testData.product

	s.productRpsMock.On("FindByID", ctx, product.ID).Return(product, nil).Once()
	s.productRpsMock.On("Update", ctx, mock.AnythingOfType("*model.Product")).Return(nil).Once()
	s.catalogCacheMock.On("EvictProductBySlug", ctx, product.Slug).Return(nil).Once()

	s.T().Log("update must evict the cached record")
	{
		_, err := s.catalogSvc.UpdateProduct(ctx, product.ID, ProductInput{
			Name:  product.Name,
			Slug:  product.Slug,
			Price: product.Price,
		})
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *catalogServiceTestSuite) TestDeleteProductNotFound() {
	ctx := s.testData.ctx

	s.productRpsMock.On("FindByID", ctx, "missing").Return(nil, nil).Once()

	s.T().Log("missing product cannot be deleted")
	{
		err := s.catalogSvc.DeleteProduct(ctx, "missing")
		s.Assert().IsType(&apperrors.NotFoundErr{}, err)
	}
}

func (s *catalogServiceTestSuite) TestCreateCaseStudyRejectsDuplicateSlug() {
	ctx := s.testData.ctx

	s.caseStudyRpsMock.On("ExistsBySlug", ctx, "taken").Return(true, nil).Once()

	s.T().Log("duplicate slug raises business error")
	{
		_, err := s.catalogSvc.CreateCaseStudy(ctx, CaseStudyInput{Title: "案例", Slug: "taken"})
		s.Assert().IsType(&apperrors.BusinessErr{}, err)
		s.caseStudyRpsMock.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	}
}

func (s *catalogServiceTestSuite) TestCreateCaseStudyDefaultsToActive() {
	ctx := s.testData.ctx

	s.caseStudyRpsMock.On("ExistsBySlug", ctx, "free").Return(false, nil).Once()
	s.caseStudyRpsMock.On("Create", ctx, mock.AnythingOfType("*model.CaseStudy")).Return(nil).Once()

	s.T().Log("created case study is active with matching timestamps")
	{
		cs, err := s.catalogSvc.CreateCaseStudy(ctx, CaseStudyInput{Title: "案例", Slug: "free"})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().True(cs.IsActive)
		s.Assert().NotEmpty(cs.ID)
		s.Assert().Equal(cs.CreatedAt, cs.UpdatedAt)
	}
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(catalogServiceTestSuite))
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/repository"
	"github.com/shixiaoya/materials/internal/service"
)

// ProductListDTO is query of the public product listing endpoint
type ProductListDTO struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	Sort     string `query:"sort" validate:"omitempty,oneof=price_asc price_desc created_desc hot"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ProductDTO is payload of product create and update endpoints
type ProductDTO struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"required,max=200"`
	Description string   `json:"description"`
	Price       string   `json:"price" validate:"required"`
	Images      []string `json:"images"`
	IsHot       bool     `json:"isHot"`
	IsActive    bool     `json:"isActive"`
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
}

// CaseStudyListDTO is query of the public case study listing endpoint
type CaseStudyListDTO struct {
	ProjectType string `query:"projectType"`
	Search      string `query:"search"`
	Page        int    `query:"page" validate:"omitempty,min=1"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// CaseStudyDTO is payload of case study create endpoint
type CaseStudyDTO struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"required,max=200"`
	Description string   `json:"description"`
	Location    string   `json:"location" validate:"max=200"`
	ProjectType string   `json:"projectType" validate:"max=100"`
	Area        string   `json:"area" validate:"max=100"`
	ClientName  string   `json:"clientName" validate:"max=100"`
	Images      []string `json:"images"`
	Sort        int      `json:"sort"`
}

type CatalogHandler struct {
	catalogSrv service.CatalogService
}

func NewCatalogHandler(catalogSrv service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSrv: catalogSrv}
}

func (h *CatalogHandler) GetProducts(c echo.Context) error {
	var dto ProductListDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	products, pagination, err := h.catalogSrv.Products(c.Request().Context(), repository.ProductFilter{
		CategorySlug: dto.Category,
		Search:       dto.Search,
		Sort:         dto.Sort,
		Page:         dto.Page,
		Limit:        dto.Limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]any{
		"products":   products,
		"pagination": pagination,
	})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogSrv.ProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product)
}

func (h *CatalogHandler) PostProduct(c echo.Context) error {
	dto, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	product, err := h.catalogSrv.CreateProduct(c.Request().Context(), productInput(dto))
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusCreated, product, "产品创建成功")
}

func (h *CatalogHandler) PutProduct(c echo.Context) error {
	dto, err := h.bindProduct(c)
	if err != nil {
		return err
	}

	product, err := h.catalogSrv.UpdateProduct(c.Request().Context(), c.Param("id"), productInput(dto))
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, product, "产品更新成功")
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalogSrv.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, nil, "产品删除成功")
}

func (h *CatalogHandler) GetCaseStudies(c echo.Context) error {
	var dto CaseStudyListDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	cases, pagination, err := h.catalogSrv.CaseStudies(c.Request().Context(), repository.CaseStudyFilter{
		ProjectType: dto.ProjectType,
		Search:      dto.Search,
		Page:        dto.Page,
		Limit:       dto.Limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]any{
		"cases":      cases,
		"pagination": pagination,
	})
}

func (h *CatalogHandler) GetCaseStudy(c echo.Context) error {
	caseStudy, err := h.catalogSrv.CaseStudyBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, caseStudy)
}

func (h *CatalogHandler) PostCaseStudy(c echo.Context) error {
	var dto CaseStudyDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	caseStudy, err := h.catalogSrv.CreateCaseStudy(c.Request().Context(), service.CaseStudyInput{
		Title:       dto.Title,
		Slug:        dto.Slug,
		Description: dto.Description,
		Location:    dto.Location,
		ProjectType: dto.ProjectType,
		Area:        dto.Area,
		ClientName:  dto.ClientName,
		Images:      dto.Images,
		Sort:        dto.Sort,
	})
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusCreated, caseStudy, "案例创建成功")
}

func (h *CatalogHandler) bindProduct(c echo.Context) (ProductDTO, error) {
	var dto ProductDTO
	if err := c.Bind(&dto); err != nil {
		return dto, apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return dto, err
	}
	return dto, nil
}

func productInput(dto ProductDTO) service.ProductInput {
	return service.ProductInput{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		Price:       dto.Price,
		Images:      dto.Images,
		IsHot:       dto.IsHot,
		IsActive:    dto.IsActive,
		CategoryID:  dto.CategoryID,
	}
}

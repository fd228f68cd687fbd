package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/internal/repository"
	"github.com/shixiaoya/materials/internal/service"
)

// NewInquiryDTO is payload of the public inquiry submission endpoint
type NewInquiryDTO struct {
	CustomerName  string `json:"customerName" validate:"required,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required,max=30"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
	Company       string `json:"company" validate:"max=200"`
	ProductName   string `json:"productName" validate:"required,max=200"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	Requirements  string `json:"requirements" validate:"required"`
	Urgency       string `json:"urgency" validate:"omitempty,oneof=URGENT NORMAL FLEXIBLE"`
}

// InquiryListDTO is query of the admin listing endpoint
type InquiryListDTO struct {
	Status    string `query:"status" validate:"omitempty,oneof=PENDING PROCESSING QUOTED COMPLETED CANCELLED"`
	Urgency   string `query:"urgency" validate:"omitempty,oneof=URGENT NORMAL FLEXIBLE"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=createdAt updatedAt customerName status"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// InquiryStatusDTO is payload of the workflow patch endpoint, optional fields
// are pointers so that an absent field can be told apart from an empty one
type InquiryStatusDTO struct {
	Status      string  `json:"status" validate:"required,oneof=PENDING PROCESSING QUOTED COMPLETED CANCELLED"`
	Notes       *string `json:"notes"`
	QuotedPrice *string `json:"quotedPrice"`
	AdminReply  *string `json:"adminReply"`
}

// InquiryUpdateDTO is payload of the full update endpoint
type InquiryUpdateDTO struct {
	CustomerName  string  `json:"customerName" validate:"required,max=100"`
	CustomerPhone string  `json:"customerPhone" validate:"required,max=30"`
	CustomerEmail string  `json:"customerEmail" validate:"omitempty,email"`
	Company       string  `json:"company" validate:"max=200"`
	ProductName   string  `json:"productName" validate:"required,max=200"`
	Quantity      int     `json:"quantity" validate:"required,min=1"`
	Requirements  string  `json:"requirements" validate:"required"`
	Urgency       *string `json:"urgency" validate:"omitempty,oneof=URGENT NORMAL FLEXIBLE"`
	Status        *string `json:"status" validate:"omitempty,oneof=PENDING PROCESSING QUOTED COMPLETED CANCELLED"`
	QuotedPrice   *string `json:"quotedPrice"`
	Notes         *string `json:"notes"`
}

// InquiryBatchDTO is payload of the batch endpoint
type InquiryBatchDTO struct {
	Action string   `json:"action" validate:"required,oneof=delete updateStatus"`
	IDs    []string `json:"ids" validate:"required,min=1"`
	Status string   `json:"status" validate:"omitempty,oneof=PENDING PROCESSING QUOTED COMPLETED CANCELLED"`
}

// InquiryExportDTO is query of the CSV export endpoint
type InquiryExportDTO struct {
	Status    string `query:"status" validate:"omitempty,oneof=PENDING PROCESSING QUOTED COMPLETED CANCELLED"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type InquiryHandler struct {
	inquirySrv service.InquiryService
}

func NewInquiryHandler(inquirySrv service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquirySrv: inquirySrv}
}

func (h *InquiryHandler) GetAll(c echo.Context) error {
	var dto InquiryListDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	page, err := h.inquirySrv.List(c.Request().Context(), repository.InquiryListQuery{
		InquiryFilter: repository.InquiryFilter{
			Status:  model.Status(dto.Status),
			Urgency: model.Urgency(dto.Urgency),
			Search:  dto.Search,
		},
		SortBy:    dto.SortBy,
		SortOrder: dto.SortOrder,
		Page:      dto.Page,
		Limit:     dto.Limit,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]any{
		"inquiries":  page.Inquiries,
		"pagination": page.Pagination,
		"stats":      page.Stats,
	})
}

func (h *InquiryHandler) Get(c echo.Context) error {
	inquiry, err := h.inquirySrv.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, inquiry)
}

func (h *InquiryHandler) Post(c echo.Context) error {
	var dto NewInquiryDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	inquiry, err := h.inquirySrv.Create(c.Request().Context(), service.NewInquiry{
		CustomerName:  dto.CustomerName,
		CustomerPhone: dto.CustomerPhone,
		CustomerEmail: dto.CustomerEmail,
		Company:       dto.Company,
		ProductName:   dto.ProductName,
		Quantity:      dto.Quantity,
		Requirements:  dto.Requirements,
		Urgency:       model.Urgency(dto.Urgency),
	})
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusCreated, inquiry, "询价提交成功，我们会尽快与您联系")
}

func (h *InquiryHandler) PatchStatus(c echo.Context) error {
	var dto InquiryStatusDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	inquiry, err := h.inquirySrv.UpdateStatus(c.Request().Context(), c.Param("id"), repository.InquiryStatusPatch{
		Status:      model.Status(dto.Status),
		Notes:       dto.Notes,
		QuotedPrice: dto.QuotedPrice,
		AdminReply:  dto.AdminReply,
	})
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, inquiry, "询价状态更新成功")
}

func (h *InquiryHandler) Put(c echo.Context) error {
	var dto InquiryUpdateDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	upd := repository.InquiryUpdate{
		CustomerName:  dto.CustomerName,
		CustomerPhone: dto.CustomerPhone,
		CustomerEmail: dto.CustomerEmail,
		Company:       dto.Company,
		ProductName:   dto.ProductName,
		Quantity:      dto.Quantity,
		Requirements:  dto.Requirements,
		QuotedPrice:   dto.QuotedPrice,
		Notes:         dto.Notes,
	}
	if dto.Urgency != nil {
		urgency := model.Urgency(*dto.Urgency)
		upd.Urgency = &urgency
	}
	if dto.Status != nil {
		status := model.Status(*dto.Status)
		upd.Status = &status
	}

	inquiry, err := h.inquirySrv.Replace(c.Request().Context(), c.Param("id"), upd)
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, inquiry, "询价更新成功")
}

func (h *InquiryHandler) DeleteByID(c echo.Context) error {
	if err := h.inquirySrv.DeleteByID(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, nil, "询价删除成功")
}

func (h *InquiryHandler) Batch(c echo.Context) error {
	var dto InquiryBatchDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	err := h.inquirySrv.Batch(c.Request().Context(), dto.Action, dto.IDs, model.Status(dto.Status))
	if err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, nil, "批量操作成功")
}

func (h *InquiryHandler) ExportCSV(c echo.Context) error {
	var dto InquiryExportDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	filter := repository.InquiryExportFilter{Status: model.Status(dto.Status)}
	if dto.StartDate != "" {
		start, err := time.Parse("2006-01-02", dto.StartDate)
		if err != nil {
			return apperrors.NewInvalidArgumentErr("startDate must be formatted as YYYY-MM-DD")
		}
		filter.StartDate = &start
	}
	if dto.EndDate != "" {
		end, err := time.Parse("2006-01-02", dto.EndDate)
		if err != nil {
			return apperrors.NewInvalidArgumentErr("endDate must be formatted as YYYY-MM-DD")
		}
		// make the bound cover the whole day
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	csv, err := h.inquirySrv.ExportCSV(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("inquiries_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", csv)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
	"github.com/shixiaoya/materials/internal/service"
)

// VisitDTO is payload of the public page-visit endpoint
type VisitDTO struct {
	Path    string `json:"path" validate:"required,max=500"`
	Referer string `json:"referer" validate:"max=500"`
}

type StatsHandler struct {
	statsSrv service.StatsService
}

func NewStatsHandler(statsSrv service.StatsService) *StatsHandler {
	return &StatsHandler{statsSrv: statsSrv}
}

func (h *StatsHandler) Dashboard(c echo.Context) error {
	stats, err := h.statsSrv.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}

func (h *StatsHandler) InquiryTrends(c echo.Context) error {
	days := intQueryParam(c, "days", 30)
	if days < 1 || days > 365 {
		return apperrors.NewInvalidArgumentErr("days must be between 1 and 365")
	}

	points, err := h.statsSrv.InquiryTrends(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, points)
}

func (h *StatsHandler) RecordVisit(c echo.Context) error {
	var dto VisitDTO
	if err := c.Bind(&dto); err != nil {
		return apperrors.NewInvalidArgumentErr(err.Error())
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	h.statsSrv.RecordVisit(c.Request().Context(), model.Visit{
		Path:      dto.Path,
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Referer:   dto.Referer,
		VisitedAt: time.Now().UTC(),
	})

	return respond(c, http.StatusOK, nil)
}

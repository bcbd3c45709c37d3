package handlers

import (
	"strings"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	svc    services.CalendarService
	logger *zap.SugaredLogger
}

func NewCalendarHandler(svc services.CalendarService, logger *zap.SugaredLogger) *CalendarHandler {
	return &CalendarHandler{svc: svc, logger: logger}
}

func (h *CalendarHandler) Update(c *fiber.Ctx) error {
	var req models.CalendarUpdateRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	cal, err := h.svc.Upsert(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Calendar updated successfully", cal)
}

func (h *CalendarHandler) Get(c *fiber.Ctx) error {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		return respondError(c, h.logger, apperr.Validation("userId is required", nil))
	}
	cal, err := h.svc.Get(c.UserContext(), userID, c.Query("catId"), c.Query("subCatId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Calendar retrieved successfully", cal)
}

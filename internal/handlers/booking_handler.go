package handlers

import (
	"strings"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BookingHandler struct {
	svc    services.BookingService
	logger *zap.SugaredLogger
}

func NewBookingHandler(svc services.BookingService, logger *zap.SugaredLogger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req models.CreateBookingRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	b, err := h.svc.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Request created successfully", b)
}

func requestID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Query("reqId"))
	if id == "" {
		return "", apperr.Validation("reqId is required", nil)
	}
	return id, nil
}

func (h *BookingHandler) Accept(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	res, err := h.svc.Accept(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Request accepted successfully", res)
}

func (h *BookingHandler) Reject(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	b, err := h.svc.Reject(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Request rejected successfully", b)
}

func (h *BookingHandler) Query(c *fiber.Ctx) error {
	var req models.BookingQueryRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	out, err := h.svc.Query(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Requests fetched successfully", out)
}

func (h *BookingHandler) ListForBuyer(c *fiber.Ctx) error {
	out, err := h.svc.ListForBuyer(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Requests fetched successfully", out)
}

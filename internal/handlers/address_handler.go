package handlers

import (
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AddressHandler struct {
	svc    services.AddressService
	logger *zap.SugaredLogger
}

func NewAddressHandler(svc services.AddressService, logger *zap.SugaredLogger) *AddressHandler {
	return &AddressHandler{svc: svc, logger: logger}
}

func (h *AddressHandler) Add(c *fiber.Ctx) error {
	var req models.AddAddressRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	a, err := h.svc.Add(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "Address added successfully", a)
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Addresses fetched successfully", out)
}

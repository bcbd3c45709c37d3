package handlers

import (
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SellerHandler struct {
	svc    services.DiscoveryService
	logger *zap.SugaredLogger
}

func NewSellerHandler(svc services.DiscoveryService, logger *zap.SugaredLogger) *SellerHandler {
	return &SellerHandler{svc: svc, logger: logger}
}

func (h *SellerHandler) ListSellers(c *fiber.Ctx) error {
	var req models.SellerSearchRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	sellers, err := h.svc.Discover(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Sellers fetched successfully", sellers)
}

package handlers

import (
	"strings"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    services.AuthService
	logger *zap.SugaredLogger
}

func NewAuthHandler(svc services.AuthService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

func (h *AuthHandler) GenerateOTP(c *fiber.Ctx) error {
	var req models.OTPRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	issued, err := h.svc.GenerateOTP(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "OTP sent successfully", issued)
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req models.OTPVerification
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	user, err := h.svc.VerifyOTP(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "OTP verified successfully", user)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	user, err := h.svc.Signup(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) ProfileSetup(c *fiber.Ctx) error {
	var req models.ProfileSetupRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	user, err := h.svc.SetupProfile(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Profile updated successfully", user)
}

func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("userId"))
	if id == "" {
		return respondError(c, h.logger, apperr.Validation("userId is required", nil))
	}
	user, err := h.svc.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "User fetched successfully", user)
}

package handlers

import (
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	svc    services.ChatService
	logger *zap.SugaredLogger
}

func NewChatHandler(svc services.ChatService, logger *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{svc: svc, logger: logger}
}

func (h *ChatHandler) CreateMessage(c *fiber.Ctx) error {
	var req models.CreateMessageRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	m, err := h.svc.Append(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "Message created successfully", m)
}

func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), c.Params("requestId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Messages fetched successfully", out)
}

func (h *ChatHandler) UpdateMessage(c *fiber.Ctx) error {
	var req models.UpdateMessageRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	m, err := h.svc.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Message updated successfully", m)
}

func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Message deleted successfully", nil)
}

func (h *ChatHandler) CreateChatList(c *fiber.Ctx) error {
	var req models.CreateChatListRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	cl, err := h.svc.CreateChatList(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, "Chat list created successfully", cl)
}

func (h *ChatHandler) ChatLists(c *fiber.Ctx) error {
	out, err := h.svc.ChatLists(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return ok(c, "Chat list fetched successfully", out)
}

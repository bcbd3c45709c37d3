package handlers

import (
	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Envelope is the body of every API response. ResponseCode mirrors the
// HTTP status.
type Envelope struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Data         any    `json:"data"`
	ResponseCode int    `json:"responseCode"`
}

func statusWord(code int) string {
	switch {
	case code >= 500:
		return "error"
	case code >= 400:
		return "fail"
	default:
		return "success"
	}
}

func respond(c *fiber.Ctx, code int, message string, data any) error {
	return c.Status(code).JSON(Envelope{
		Status:       statusWord(code),
		Message:      message,
		Data:         data,
		ResponseCode: code,
	})
}

func ok(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusOK, message, data)
}

// respondError writes err as an envelope. Internal causes are logged and
// never returned to the caller.
func respondError(c *fiber.Ctx, logger *zap.SugaredLogger, err error) error {
	ae := apperr.From(err)
	code := ae.HTTPStatus()
	if code >= 500 {
		logger.Errorw("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"requestId", c.Locals("requestid"),
			"error", err,
		)
	}
	return respond(c, code, ae.Message, ae.Details)
}

// bind parses the JSON body into dst and validates it. The message names
// the first offending field; every violation is returned in data.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("invalid request body", nil)
	}
	return validate(dst)
}

func validate(v any) error {
	if errs := utils.ValidateStruct(v); len(errs) > 0 {
		return apperr.Validation(errs[0].Message, errs)
	}
	return nil
}

package server

import (
	"errors"
	"time"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Options struct {
	AppName        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	Development    bool
}

// New builds the fiber app with the shared middleware chain. Routes are
// mounted by the caller.
func New(opts Options, logger *zap.SugaredLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		IdleTimeout:           opts.IdleTimeout,
		DisableStartupMessage: !opts.Development,
		ErrorHandler:          ErrorHandler(logger),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: opts.Development}))
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(middleware.RequestLogger(logger, "/cms/health", "/metrics"))
	app.Use(middleware.Timeout(opts.RequestTimeout))
	return app
}

// ErrorHandler renders errors that escape handlers, including fiber's own
// 404 and 405, in the response envelope.
func ErrorHandler(logger *zap.SugaredLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fe *fiber.Error
		var ae *apperr.Error
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.As(err, &ae):
			code = ae.HTTPStatus()
			message = ae.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Errorw("unhandled error", "path", c.Path(), "error", err)
		}

		status := "fail"
		if code >= fiber.StatusInternalServerError {
			status = "error"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":       status,
			"message":      message,
			"data":         nil,
			"responseCode": code,
		})
	}
}

package server

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseCode int    `json:"responseCode"`
}

func decode(t *testing.T, app *fiber.App, path string) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestErrorHandlerEnvelopes(t *testing.T) {
	app := New(Options{AppName: "test"}, zap.NewNop().Sugar())
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db down") })
	app.Get("/conflict", func(c *fiber.Ctx) error { return apperr.Conflict("taken") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("oops") })

	code, env := decode(t, app, "/missing")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, fiber.StatusNotFound, env.ResponseCode)

	code, env = decode(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "internal server error", env.Message)

	code, env = decode(t, app, "/conflict")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "taken", env.Message)

	code, env = decode(t, app, "/panic")
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "error", env.Status)
}

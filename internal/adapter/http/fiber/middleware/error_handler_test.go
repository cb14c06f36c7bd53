package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func TestErrorHandler_FiberErrorKeepsStatus(t *testing.T) {
	// Arrange
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "no such face")
	})
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)

	// Act
	resp, err := app.Test(req)

	// Assert
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "no such face" {
		t.Errorf("expected error message, got %q", body["error"])
	}
}

func TestErrorHandler_PlainErrorBecomes500(t *testing.T) {
	// Arrange
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return errors.New("database unreachable")
	})
	req := httptest.NewRequest(http.MethodGet, "/broken", nil)

	// Act
	resp, err := app.Test(req)

	// Assert
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "database unreachable" {
		t.Errorf("expected error message, got %q", body["error"])
	}
}

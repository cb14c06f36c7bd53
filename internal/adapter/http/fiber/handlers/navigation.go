package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

type NavigationHandler struct {
	service ports.NavigationService
	log     *zap.Logger
}

func NewNavigationHandler(service ports.NavigationService, log *zap.Logger) *NavigationHandler {
	return &NavigationHandler{
		service: service,
		log:     log,
	}
}

func (h *NavigationHandler) CurrentLocation(c *fiber.Ctx) error {
	location, err := h.service.CurrentLocation(c.Context())
	if err != nil {
		h.log.Warn("Failed to resolve location", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not resolve location"})
	}
	return c.JSON(location)
}

type DirectionsRequest struct {
	Destination string  `json:"destination"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

// Directions returns a walking route. When the client supplies device
// GPS coordinates they take priority over IP geolocation.
func (h *NavigationHandler) Directions(c *fiber.Ctx) error {
	var req DirectionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Destination == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Destination is required"})
	}

	var origin *domain.Location
	if req.Latitude != 0 || req.Longitude != 0 {
		origin = &domain.Location{Latitude: req.Latitude, Longitude: req.Longitude}
	} else {
		var err error
		origin, err = h.service.CurrentLocation(c.Context())
		if err != nil {
			h.log.Warn("Failed to resolve location", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not resolve location"})
		}
	}

	route, err := h.service.Directions(c.Context(), origin, req.Destination)
	if err != nil {
		h.log.Warn("Failed to compute route",
			zap.String("destination", req.Destination), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No route found"})
	}

	return c.JSON(route)
}

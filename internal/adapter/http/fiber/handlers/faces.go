package handlers

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/ports"
)

type FaceHandler struct {
	service ports.VisionService
	log     *zap.Logger
}

func NewFaceHandler(service ports.VisionService, log *zap.Logger) *FaceHandler {
	return &FaceHandler{
		service: service,
		log:     log,
	}
}

func (h *FaceHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	faces, err := h.service.ListFaces(c.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list faces", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list faces"})
	}

	return c.JSON(fiber.Map{"faces": faces})
}

type EnrollFaceRequest struct {
	PersonName string `json:"person_name"`
	Frame      string `json:"frame"` // Base64 JPEG
}

func (h *FaceHandler) Enroll(c *fiber.Ctx) error {
	var req EnrollFaceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PersonName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Person name is required"})
	}

	frame, err := base64.StdEncoding.DecodeString(req.Frame)
	if err != nil || len(frame) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid base64 frame"})
	}

	userID := c.Locals("user_id").(string)
	if err := h.service.EnrollFace(c.Context(), userID, frame, req.PersonName); err != nil {
		h.log.Error("Failed to enroll face", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll face"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"person_name": req.PersonName})
}

func (h *FaceHandler) Forget(c *fiber.Ctx) error {
	personName := c.Params("name")
	if personName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Person name is required"})
	}

	userID := c.Locals("user_id").(string)
	if err := h.service.ForgetFace(c.Context(), userID, personName); err != nil {
		h.log.Error("Failed to forget face", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to forget face"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

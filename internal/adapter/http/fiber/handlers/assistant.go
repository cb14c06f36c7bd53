package handlers

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

type AssistantHandler struct {
	service ports.AssistantService
	log     *zap.Logger
}

func NewAssistantHandler(service ports.AssistantService, log *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		service: service,
		log:     log,
	}
}

type CommandRequest struct {
	Utterance string `json:"utterance"`
	Frame     string `json:"frame,omitempty"` // Base64 JPEG
	Audio     string `json:"audio,omitempty"` // Base64 PCM
}

func (h *AssistantHandler) HandleCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Utterance == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Utterance is required"})
	}

	userID := c.Locals("user_id").(string)

	input := domain.CommandInput{Utterance: req.Utterance}
	if req.Frame != "" {
		frame, err := base64.StdEncoding.DecodeString(req.Frame)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid base64 frame"})
		}
		input.Frame = frame
	}
	if req.Audio != "" {
		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid base64 audio"})
		}
		input.Audio = audio
	}

	reply, err := h.service.HandleCommand(c.Context(), userID, input)
	if err != nil {
		h.log.Error("Failed to handle command", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to handle command"})
	}

	return c.JSON(reply)
}

func (h *AssistantHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	limit := c.QueryInt("limit", 20)

	turns, err := h.service.History(c.Context(), userID, limit)
	if err != nil {
		h.log.Error("Failed to load history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
	}

	return c.JSON(fiber.Map{"history": turns})
}

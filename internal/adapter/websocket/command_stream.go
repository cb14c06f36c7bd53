package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

// TranscriberFactory opens a fresh live transcription session per
// connection. Nil when realtime speech recognition is disabled.
type TranscriberFactory func() ports.Transcriber

// CommandStreamHandler is the realtime command channel for the
// wearable client. Text frames carry a complete command turn; binary
// frames carry raw audio that is streamed to the transcriber, and each
// final transcript is dispatched as a command.
type CommandStreamHandler struct {
	assistant      ports.AssistantService
	newTranscriber TranscriberFactory
	log            *zap.Logger
}

func NewCommandStreamHandler(assistant ports.AssistantService, newTranscriber TranscriberFactory, log *zap.Logger) *CommandStreamHandler {
	return &CommandStreamHandler{
		assistant:      assistant,
		newTranscriber: newTranscriber,
		log:            log,
	}
}

type commandFrame struct {
	Utterance string `json:"utterance"`
	Frame     string `json:"frame,omitempty"` // Base64 JPEG
	Audio     string `json:"audio,omitempty"` // Base64 PCM
}

// messageWriter is the write half of the websocket connection.
type messageWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// streamConn serializes outbound frames. The underlying connection
// allows only one writer at a time, and replies originate from both
// the read loop and the transcript goroutine.
type streamConn struct {
	mu   sync.Mutex
	conn messageWriter
}

func (s *streamConn) writeText(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *CommandStreamHandler) HandleCommandStream(c *websocket.Conn) {
	userID := c.Locals("user_id").(string)
	out := &streamConn{conn: c}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var transcriber ports.Transcriber
	if h.newTranscriber != nil {
		transcriber = h.newTranscriber()
		if err := transcriber.Connect(ctx); err != nil {
			h.log.Warn("Live transcription unavailable", zap.Error(err))
			transcriber = nil
		} else {
			defer transcriber.Close()
			go h.transcriptLoop(ctx, out, transcriber, userID)
		}
	}

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			break
		}

		switch messageType {
		case websocket.TextMessage:
			h.handleTextFrame(ctx, out, userID, data)
		case websocket.BinaryMessage:
			if transcriber == nil {
				continue
			}
			if err := transcriber.SendAudioChunk(ctx, data); err != nil {
				h.log.Warn("Failed to forward audio chunk", zap.Error(err))
			}
		}
	}
}

func (h *CommandStreamHandler) handleTextFrame(ctx context.Context, out *streamConn, userID string, data []byte) {
	var frame commandFrame
	if err := json.Unmarshal(data, &frame); err != nil || frame.Utterance == "" {
		h.writeError(out, "Invalid command frame")
		return
	}

	input := domain.CommandInput{Utterance: frame.Utterance}
	if frame.Frame != "" {
		if decoded, err := base64.StdEncoding.DecodeString(frame.Frame); err == nil {
			input.Frame = decoded
		}
	}
	if frame.Audio != "" {
		if decoded, err := base64.StdEncoding.DecodeString(frame.Audio); err == nil {
			input.Audio = decoded
		}
	}

	h.dispatch(ctx, out, userID, input)
}

// transcriptLoop turns every final transcript from the live session
// into a command turn.
func (h *CommandStreamHandler) transcriptLoop(ctx context.Context, out *streamConn, transcriber ports.Transcriber, userID string) {
	for {
		transcript, err := transcriber.ReceiveFinalTranscript(ctx)
		if err != nil {
			return
		}
		if transcript == "" {
			continue
		}
		h.dispatch(ctx, out, userID, domain.CommandInput{Utterance: transcript})
	}
}

func (h *CommandStreamHandler) dispatch(ctx context.Context, out *streamConn, userID string, input domain.CommandInput) {
	reply, err := h.assistant.HandleCommand(ctx, userID, input)
	if err != nil {
		h.log.Error("Failed to handle streamed command", zap.Error(err))
		h.writeError(out, "Failed to handle command")
		return
	}

	payload, _ := json.Marshal(reply)
	if err := out.writeText(payload); err != nil {
		h.log.Warn("Failed to send reply", zap.Error(err))
	}
}

func (h *CommandStreamHandler) writeError(out *streamConn, message string) {
	payload, _ := json.Marshal(map[string]string{"error": message})
	out.writeText(payload)
}

// SetupCommandRoutes wires the websocket endpoints. The auth
// middleware must run before the upgrade so user_id is in Locals.
func SetupCommandRoutes(app *fiber.App, handler *CommandStreamHandler, hub *Hub, authRequired fiber.Handler) {
	upgrade := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	app.Use("/ws/commands", authRequired, upgrade)
	app.Get("/ws/commands", websocket.New(handler.HandleCommandStream))

	app.Use("/ws/events", authRequired, upgrade)
	app.Get("/ws/events", websocket.New(func(c *websocket.Conn) {
		userID := c.Locals("user_id").(string)
		hub.AddClient(c, userID)
	}))
}

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
)

// Client provides access to OpenAI chat completions for intent
// classification and spoken-response generation.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(apiKey, model string, log *zap.Logger) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://api.openai.com/v1",
		httpClient: &http.Client{},
		log:        log,
	}
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// classifierInstruction is the fixed instruction describing the closed
// intent set and the expected structured-output shape.
const classifierInstruction = `You classify commands for a voice assistant used by visually impaired people.
Choose exactly one intent from this closed set:
describe_scene, read_text, detect_objects, recognize_faces, enroll_face, list_faces, detect_sound, navigate, emergency, change_language, general_question, exit.
Extract parameters when present: person_name (enroll_face), destination (navigate), language as an ISO 639-1 code (change_language), detailed as a boolean (describe_scene), query (general_question).
Reply with a single JSON object and nothing else:
{"intent": "...", "parameters": {...}, "confidence": 0.0}`

type classificationPayload struct {
	Intent     string                 `json:"intent"`
	Parameters map[string]interface{} `json:"parameters"`
	Confidence float64                `json:"confidence"`
}

// ClassifyIntent asks the model to map the utterance onto the closed
// intent set. Any deviation from the contract is returned as an error;
// the interpreter treats every error as a silent fallthrough.
func (c *Client) ClassifyIntent(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}

	user := fmt.Sprintf("Utterance: %q", utterance)
	if turn.Language != "" {
		user += fmt.Sprintf("\nUser language: %s", turn.Language)
	}
	if turn.LastIntent != "" {
		user += fmt.Sprintf("\nPrevious intent: %s", turn.LastIntent)
	}

	content, err := c.chat(ctx, []Message{
		{Role: "system", Content: classifierInstruction},
		{Role: "user", Content: user},
	}, 0.1, 150)
	if err != nil {
		return nil, err
	}

	var payload classificationPayload
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, fmt.Errorf("openai: malformed classification payload: %w", err)
	}

	intent, ok := domain.ParseIntent(payload.Intent)
	if !ok {
		return nil, fmt.Errorf("openai: intent %q outside closed set", payload.Intent)
	}

	params := payload.Parameters
	if params == nil {
		params = make(map[string]interface{})
	}

	return &domain.ClassificationResult{
		Intent:     intent,
		Parameters: params,
		Confidence: payload.Confidence,
		Source:     domain.SourceHostedModel,
	}, nil
}

// GenerateResponse turns a general question into a short spoken answer.
func (c *Client) GenerateResponse(ctx context.Context, query string, turn domain.TurnContext) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai: API key not configured")
	}

	system := "You are a helpful voice assistant for visually impaired people. Answer briefly, in plain spoken sentences."
	if turn.Language != "" && turn.Language != "en" {
		system += " Answer in the language with ISO code " + turn.Language + "."
	}

	return c.chat(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: query},
	}, 0.7, 200)
}

func (c *Client) chat(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: API error status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	return result.Choices[0].Message.Content, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add
// despite the instruction.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

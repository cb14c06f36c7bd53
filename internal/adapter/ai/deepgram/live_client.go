package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

// LiveClient streams microphone audio to Deepgram's realtime STT API
// and yields final transcripts. One client serves one websocket
// session; the command stream handler owns its lifecycle.
type LiveClient struct {
	apiKey   string
	model    string
	language string
	log      *zap.Logger
	conn     *websocket.Conn
}

func NewLiveClient(apiKey, model, language string, log *zap.Logger) *LiveClient {
	if model == "" {
		model = "nova-2"
	}
	if language == "" {
		language = "en"
	}
	return &LiveClient{
		apiKey:   apiKey,
		model:    model,
		language: language,
		log:      log,
	}
}

// Connect opens the bidirectional transcription stream.
func (c *LiveClient) Connect(ctx context.Context) error {
	params := url.Values{}
	params.Set("model", c.model)
	params.Set("language", c.language)
	params.Set("punctuate", "true")
	params.Set("encoding", "linear16")
	params.Set("sample_rate", "16000")

	endpoint := "wss://api.deepgram.com/v1/listen?" + params.Encode()

	headers := http.Header{}
	headers.Set("Authorization", "Token "+c.apiKey)

	conn, _, err := websocket.Dial(ctx, endpoint, &websocket.DialOptions{
		HTTPHeader: headers,
	})
	if err != nil {
		return fmt.Errorf("deepgram: dial: %w", err)
	}

	c.conn = conn
	return nil
}

// SendAudioChunk forwards one PCM16 audio frame.
func (c *LiveClient) SendAudioChunk(ctx context.Context, audio []byte) error {
	if c.conn == nil {
		return fmt.Errorf("deepgram: not connected")
	}
	return c.conn.Write(ctx, websocket.MessageBinary, audio)
}

type transcriptResponse struct {
	Type    string `json:"type"`
	IsFinal bool   `json:"is_final"`
	Channel struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"channel"`
}

// ReceiveFinalTranscript blocks until the next final transcript, or
// returns ctx.Err when the session is torn down.
func (c *LiveClient) ReceiveFinalTranscript(ctx context.Context) (string, error) {
	if c.conn == nil {
		return "", fmt.Errorf("deepgram: not connected")
	}

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return "", fmt.Errorf("deepgram: read: %w", err)
		}

		var resp transcriptResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			c.log.Debug("Skipping unparseable deepgram frame", zap.Error(err))
			continue
		}
		if !resp.IsFinal || len(resp.Channel.Alternatives) == 0 {
			continue
		}

		transcript := strings.TrimSpace(resp.Channel.Alternatives[0].Transcript)
		if transcript == "" {
			continue
		}
		return transcript, nil
	}
}

func (c *LiveClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close(websocket.StatusNormalClosure, "session ended")
}

package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/observability/telemetry"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

// Client talks to the vision inference sidecar, which hosts the object
// detection, OCR and face recognition models. The models are opaque:
// this adapter only knows the HTTP contract. All calls run behind a
// circuit breaker so a wedged sidecar does not pile up requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) ports.VisionGateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "vision-sidecar",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Vision sidecar circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    cb,
		log:        log,
	}
}

type describeRequest struct {
	Image    []byte `json:"image"` // base64 via encoding/json
	Detailed bool   `json:"detailed"`
}

type enrollRequest struct {
	Image      []byte `json:"image"`
	PersonName string `json:"person_name"`
}

type imageRequest struct {
	Image []byte `json:"image"`
}

type audioRequest struct {
	Audio []byte `json:"audio"`
}

func (c *Client) DescribeScene(ctx context.Context, image []byte, detailed bool) (*domain.SceneDescription, error) {
	var out domain.SceneDescription
	err := c.post(ctx, "describe", "/v1/describe", describeRequest{Image: image, Detailed: detailed}, &out)
	if err != nil {
		return nil, err
	}
	out.Detailed = detailed
	return &out, nil
}

func (c *Client) DetectObjects(ctx context.Context, image []byte) ([]domain.Detection, error) {
	var out struct {
		Detections []domain.Detection `json:"detections"`
	}
	if err := c.post(ctx, "detect", "/v1/detect", imageRequest{Image: image}, &out); err != nil {
		return nil, err
	}
	return out.Detections, nil
}

func (c *Client) ExtractText(ctx context.Context, image []byte) ([]domain.TextRegion, error) {
	var out struct {
		Regions []domain.TextRegion `json:"regions"`
	}
	if err := c.post(ctx, "ocr", "/v1/ocr", imageRequest{Image: image}, &out); err != nil {
		return nil, err
	}
	return out.Regions, nil
}

func (c *Client) RecognizeFaces(ctx context.Context, image []byte) ([]domain.RecognizedFace, error) {
	var out struct {
		Faces []domain.RecognizedFace `json:"faces"`
	}
	if err := c.post(ctx, "faces", "/v1/faces/recognize", imageRequest{Image: image}, &out); err != nil {
		return nil, err
	}
	return out.Faces, nil
}

func (c *Client) EnrollFace(ctx context.Context, image []byte, personName string) error {
	var out struct {
		Enrolled bool `json:"enrolled"`
	}
	if err := c.post(ctx, "enroll", "/v1/faces/enroll", enrollRequest{Image: image, PersonName: personName}, &out); err != nil {
		return err
	}
	if !out.Enrolled {
		return fmt.Errorf("vision: sidecar declined enrollment for %q", personName)
	}
	return nil
}

func (c *Client) DetectSounds(ctx context.Context, audio []byte) ([]string, error) {
	var out struct {
		Sounds []string `json:"sounds"`
	}
	if err := c.post(ctx, "sounds", "/v1/sounds", audioRequest{Audio: audio}, &out); err != nil {
		return nil, err
	}
	return out.Sounds, nil
}

func (c *Client) post(ctx context.Context, operation, path string, body, out interface{}) error {
	start := time.Now()
	defer func() {
		telemetry.VisionLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("vision: marshal request: %w", err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("vision: sidecar returned status %d", resp.StatusCode)
		}

		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			return nil, fmt.Errorf("vision: read response: %w", err)
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return fmt.Errorf("vision: %s: %w", operation, err)
	}

	if err := json.Unmarshal(result.([]byte), out); err != nil {
		return fmt.Errorf("vision: decode %s response: %w", operation, err)
	}
	return nil
}

package ports

import (
	"context"
	"time"

	"github.com/Khaf-dev/aiforus/internal/domain"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, error)
	Register(ctx context.Context, user *domain.User) error
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

// Interpreter resolves a recognized utterance to an intent. Classify
// never returns an error: model-path failures are absorbed by the
// local keyword fallback and inconclusive input resolves to
// IntentUnknown.
type Interpreter interface {
	Classify(ctx context.Context, utterance string, turn domain.TurnContext) domain.ClassificationResult
}

// IntentModel is the hosted classification service consumed by the
// interpreter's first path.
type IntentModel interface {
	ClassifyIntent(ctx context.Context, utterance string, turn domain.TurnContext) (*domain.ClassificationResult, error)
	GenerateResponse(ctx context.Context, query string, turn domain.TurnContext) (string, error)
}

// VisionGateway wraps the vision inference sidecar (object detection,
// OCR, face recognition). The ML internals are opaque; these are the
// only contracts the backend depends on.
type VisionGateway interface {
	DescribeScene(ctx context.Context, image []byte, detailed bool) (*domain.SceneDescription, error)
	DetectObjects(ctx context.Context, image []byte) ([]domain.Detection, error)
	ExtractText(ctx context.Context, image []byte) ([]domain.TextRegion, error)
	RecognizeFaces(ctx context.Context, image []byte) ([]domain.RecognizedFace, error)
	EnrollFace(ctx context.Context, image []byte, personName string) error
	DetectSounds(ctx context.Context, audio []byte) ([]string, error)
}

// VisionService layers persistence and caching over the raw gateway:
// detections and OCR results are logged, scene memories stored, and
// enrolled faces tracked in the face database.
type VisionService interface {
	DescribeScene(ctx context.Context, userID string, image []byte, detailed bool) (string, error)
	IdentifyObjects(ctx context.Context, userID string, image []byte) ([]domain.Detection, error)
	ReadText(ctx context.Context, userID string, image []byte) ([]domain.TextRegion, error)
	RecognizeFaces(ctx context.Context, userID string, image []byte) ([]domain.RecognizedFace, error)
	EnrollFace(ctx context.Context, userID string, image []byte, personName string) error
	ListFaces(ctx context.Context, userID string) ([]domain.KnownFace, error)
	ForgetFace(ctx context.Context, userID, personName string) error
	DetectSounds(ctx context.Context, userID string, audio []byte) ([]string, error)
}

// Transcriber is one live speech-to-text session: dialed with
// Connect, fed raw audio chunks, and read until the stream ends.
type Transcriber interface {
	Connect(ctx context.Context) error
	SendAudioChunk(ctx context.Context, audio []byte) error
	ReceiveFinalTranscript(ctx context.Context) (string, error)
	Close() error
}

type NavigationService interface {
	CurrentLocation(ctx context.Context) (*domain.Location, error)
	Directions(ctx context.Context, from *domain.Location, destination string) (*domain.Route, error)
}

type EmergencyService interface {
	Trigger(ctx context.Context, userID string) (string, error)
}

type AssistantService interface {
	HandleCommand(ctx context.Context, userID string, input domain.CommandInput) (*domain.AssistantReply, error)
	History(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error)
}

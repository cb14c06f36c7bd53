package ports

import (
	"context"

	"github.com/Khaf-dev/aiforus/internal/domain"
)

type UserRepository interface {
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ConversationRepository interface {
	Save(ctx context.Context, turn *domain.ConversationTurn) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error)
	FindLastByUserID(ctx context.Context, userID string) (*domain.ConversationTurn, error)
}

type SceneMemoryRepository interface {
	Save(ctx context.Context, memory *domain.SceneMemory) error
	FindByUserID(ctx context.Context, userID string, limit int) ([]domain.SceneMemory, error)
}

// DetectionLogRepository persists OCR and object detection results.
type DetectionLogRepository interface {
	SaveTextExtraction(ctx context.Context, te *domain.TextExtraction) error
	SaveObjectDetection(ctx context.Context, od *domain.ObjectDetectionLog) error
	FindObjectDetections(ctx context.Context, userID string, limit int) ([]domain.ObjectDetectionLog, error)
}

type FaceRepository interface {
	Save(ctx context.Context, face *domain.KnownFace) error
	FindByUserID(ctx context.Context, userID string) ([]domain.KnownFace, error)
	FindByName(ctx context.Context, userID, personName string) (*domain.KnownFace, error)
	DeleteByName(ctx context.Context, userID, personName string) error
}

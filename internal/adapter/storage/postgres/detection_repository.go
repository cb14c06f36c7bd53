package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

type DetectionLogRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDetectionLogRepository(db *gorm.DB, log *zap.Logger) ports.DetectionLogRepository {
	return &DetectionLogRepository{
		db:  db,
		log: log,
	}
}

func (r *DetectionLogRepository) SaveTextExtraction(ctx context.Context, te *domain.TextExtraction) error {
	return r.db.WithContext(ctx).Create(te).Error
}

func (r *DetectionLogRepository) SaveObjectDetection(ctx context.Context, od *domain.ObjectDetectionLog) error {
	return r.db.WithContext(ctx).Create(od).Error
}

func (r *DetectionLogRepository) FindObjectDetections(ctx context.Context, userID string, limit int) ([]domain.ObjectDetectionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var detections []domain.ObjectDetectionLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&detections).Error
	return detections, err
}

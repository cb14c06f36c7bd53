package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/observability/telemetry"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

type ConversationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewConversationRepository(db *gorm.DB, log *zap.Logger) ports.ConversationRepository {
	return &ConversationRepository{
		db:  db,
		log: log,
	}
}

func (r *ConversationRepository) Save(ctx context.Context, turn *domain.ConversationTurn) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(turn).Error
	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	return err
}

func (r *ConversationRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]domain.ConversationTurn, error) {
	if limit <= 0 {
		limit = 50
	}
	var turns []domain.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&turns).Error
	return turns, err
}

func (r *ConversationRepository) FindLastByUserID(ctx context.Context, userID string) (*domain.ConversationTurn, error) {
	var turn domain.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&turn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &turn, nil
}

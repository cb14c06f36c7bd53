package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

type SceneMemoryRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSceneMemoryRepository(db *gorm.DB, log *zap.Logger) ports.SceneMemoryRepository {
	return &SceneMemoryRepository{
		db:  db,
		log: log,
	}
}

func (r *SceneMemoryRepository) Save(ctx context.Context, memory *domain.SceneMemory) error {
	// The same frame may be analyzed twice; keep the latest description.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "image_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "objects", "created_at"}),
		}).
		Create(memory).Error
}

func (r *SceneMemoryRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]domain.SceneMemory, error) {
	if limit <= 0 {
		limit = 20
	}
	var memories []domain.SceneMemory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&memories).Error
	return memories, err
}

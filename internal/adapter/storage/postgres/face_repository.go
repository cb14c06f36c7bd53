package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Khaf-dev/aiforus/internal/domain"
	"github.com/Khaf-dev/aiforus/internal/ports"
)

type FaceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewFaceRepository(db *gorm.DB, log *zap.Logger) ports.FaceRepository {
	return &FaceRepository{
		db:  db,
		log: log,
	}
}

func (r *FaceRepository) Save(ctx context.Context, face *domain.KnownFace) error {
	return r.db.WithContext(ctx).Save(face).Error
}

func (r *FaceRepository) FindByUserID(ctx context.Context, userID string) ([]domain.KnownFace, error) {
	var faces []domain.KnownFace
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("person_name ASC").
		Find(&faces).Error
	return faces, err
}

func (r *FaceRepository) FindByName(ctx context.Context, userID, personName string) (*domain.KnownFace, error) {
	var face domain.KnownFace
	err := r.db.WithContext(ctx).
		First(&face, "user_id = ? AND person_name = ?", userID, personName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &face, nil
}

func (r *FaceRepository) DeleteByName(ctx context.Context, userID, personName string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND person_name = ?", userID, personName).
		Delete(&domain.KnownFace{}).Error
}

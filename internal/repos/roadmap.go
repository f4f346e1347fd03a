package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/types"
)

type RoadmapRepo interface {
	Create(ctx context.Context, tx *gorm.DB, roadmap *types.Roadmap) (*types.Roadmap, error)
	GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) (*types.Roadmap, error)
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	repoLog := baseLog.With("repo", "RoadmapRepo")
	return &roadmapRepo{db: db, log: repoLog}
}

func (rr *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, roadmap *types.Roadmap) (*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if roadmap == nil {
		return nil, fmt.Errorf("no roadmap given")
	}
	if err := transaction.WithContext(ctx).Create(roadmap).Error; err != nil {
		return nil, err
	}
	return roadmap, nil
}

func (rr *roadmapRepo) GetBySkillID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) (*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.Roadmap
	if err := transaction.WithContext(ctx).
		Where("skill_id = ?", skillID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("roadmap for skill %s: %w", skillID, ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}

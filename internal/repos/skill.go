package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/types"
)

type SkillRepo interface {
	ListNames(ctx context.Context, tx *gorm.DB) ([]string, error)
	ListDetailed(ctx context.Context, tx *gorm.DB) ([]*types.Skill, error)
	// CreateIfAbsent inserts atomically with ON CONFLICT DO NOTHING on the
	// skill name. The bool reports whether this call won the insert; when it
	// lost, the returned record is the winner's.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, question, skillName string) (*types.Skill, bool, error)
	GetByName(ctx context.Context, tx *gorm.DB, skillName string) (*types.Skill, error)
}

type skillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillRepo(db *gorm.DB, baseLog *logger.Logger) SkillRepo {
	repoLog := baseLog.With("repo", "SkillRepo")
	return &skillRepo{db: db, log: repoLog}
}

func (sr *skillRepo) ListNames(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var names []string
	if err := transaction.WithContext(ctx).
		Model(&types.Skill{}).
		Pluck("skill", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (sr *skillRepo) ListDetailed(ctx context.Context, tx *gorm.DB) ([]*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Skill
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *skillRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, question, skillName string) (*types.Skill, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	skill := &types.Skill{
		Question: question,
		Skill:    skillName,
	}
	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "skill"}},
			DoNothing: true,
		}).
		Create(skill)
	if res.Error != nil {
		if isDuplicateKeyErr(res.Error) {
			sr.log.Debug("Insert conflicted on skill name, adopting winner", "skill", skillName)
			winner, err := sr.GetByName(ctx, transaction, skillName)
			if err != nil {
				return nil, false, err
			}
			return winner, false, nil
		}
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		winner, err := sr.GetByName(ctx, transaction, skillName)
		if err != nil {
			return nil, false, err
		}
		return winner, false, nil
	}
	return skill, true, nil
}

func (sr *skillRepo) GetByName(ctx context.Context, tx *gorm.DB, skillName string) (*types.Skill, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.Skill
	if err := transaction.WithContext(ctx).
		Where("skill = ?", skillName).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("skill %q: %w", skillName, ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}

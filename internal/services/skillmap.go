package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/repos"
	"github.com/yungbote/pathly-backend/internal/types"
)

// ErrRoadmapNotFound marks a lookup for a skill that has no stored roadmap.
// The read path maps it to a 404.
var ErrRoadmapNotFound = errors.New("roadmap not found for the given skill")

// SkillMapService is the generate/read workflow: decide whether a question
// maps to an existing skill, create skill+roadmap when it doesn't, and serve
// stored roadmaps back.
type SkillMapService interface {
	GenerateMap(ctx context.Context, question string) (*SkillMapResult, error)
	ListSkills(ctx context.Context) ([]*types.Skill, error)
	GetRoadmapBySkillID(ctx context.Context, skillID uuid.UUID) (*SkillMapResult, error)
}

type SkillMapResult struct {
	Skill   string
	Roadmap datatypes.JSON
}

type skillMapService struct {
	db          *gorm.DB
	log         *logger.Logger
	skillRepo   repos.SkillRepo
	roadmapRepo repos.RoadmapRepo
	gemini      GeminiService
	group       singleflight.Group
}

func NewSkillMapService(db *gorm.DB, log *logger.Logger, skillRepo repos.SkillRepo, roadmapRepo repos.RoadmapRepo, gemini GeminiService) SkillMapService {
	return &skillMapService{
		db:          db,
		log:         log.With("service", "SkillMapService"),
		skillRepo:   skillRepo,
		roadmapRepo: roadmapRepo,
		gemini:      gemini,
	}
}

func (s *skillMapService) GenerateMap(ctx context.Context, question string) (*SkillMapResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	// Identical concurrent questions share one generation instead of racing.
	key := strings.ToLower(question)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.generateMap(ctx, question)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.Debug("Generation shared with a concurrent identical question", "question", question)
	}
	return v.(*SkillMapResult), nil
}

func (s *skillMapService) generateMap(ctx context.Context, question string) (*SkillMapResult, error) {
	names, err := s.skillRepo.ListNames(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing skills: %w", err)
	}

	match, err := s.gemini.MatchSkill(ctx, question, names)
	if err != nil {
		return nil, err
	}

	if !match.IsNewSkill {
		return s.loadStoredRoadmap(ctx, match.SkillName)
	}

	skill, won, err := s.skillRepo.CreateIfAbsent(ctx, nil, question, match.SkillName)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill %q: %w", match.SkillName, err)
	}
	if !won {
		// A concurrent request created this skill first; serve its roadmap.
		s.log.Info("Skill already created by a concurrent request", "skill", skill.Skill)
		return s.loadStoredRoadmap(ctx, skill.Skill)
	}

	result, err := s.gemini.GenerateRoadmap(ctx, skill.Skill)
	if err != nil {
		// The skill record stays behind; a later identical question will
		// find it and report the missing roadmap.
		return nil, err
	}

	doc, err := json.Marshal(result.Roadmap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roadmap document: %w", err)
	}
	if _, err := s.roadmapRepo.Create(ctx, nil, &types.Roadmap{
		SkillID: skill.ID,
		Skill:   skill.Skill,
		Roadmap: datatypes.JSON(doc),
	}); err != nil {
		return nil, fmt.Errorf("failed to store roadmap for skill %q: %w", skill.Skill, err)
	}

	s.log.Info("Created skill and roadmap", "skill", skill.Skill, "skill_id", skill.ID)
	return &SkillMapResult{Skill: skill.Skill, Roadmap: datatypes.JSON(doc)}, nil
}

func (s *skillMapService) loadStoredRoadmap(ctx context.Context, skillName string) (*SkillMapResult, error) {
	skill, err := s.skillRepo.GetByName(ctx, nil, skillName)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, fmt.Errorf("matched existing skill %q but no record was found: %w", skillName, err)
		}
		return nil, err
	}
	roadmap, err := s.roadmapRepo.GetBySkillID(ctx, nil, skill.ID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, fmt.Errorf("skill %q has no stored roadmap: %w", skillName, err)
		}
		return nil, err
	}
	return &SkillMapResult{Skill: roadmap.Skill, Roadmap: roadmap.Roadmap}, nil
}

func (s *skillMapService) ListSkills(ctx context.Context) ([]*types.Skill, error) {
	return s.skillRepo.ListDetailed(ctx, nil)
}

func (s *skillMapService) GetRoadmapBySkillID(ctx context.Context, skillID uuid.UUID) (*SkillMapResult, error) {
	if skillID == uuid.Nil {
		return nil, fmt.Errorf("skill id cannot be empty")
	}
	roadmap, err := s.roadmapRepo.GetBySkillID(ctx, nil, skillID)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, ErrRoadmapNotFound
		}
		return nil, err
	}
	return &SkillMapResult{Skill: roadmap.Skill, Roadmap: roadmap.Roadmap}, nil
}

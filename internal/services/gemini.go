package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/types"
)

const skillMatchThinkingBudget = 1024

// GeminiService turns free text into structured decisions: matching a
// question against known skill names and authoring a roadmap document.
type GeminiService interface {
	MatchSkill(ctx context.Context, question string, existingSkills []string) (*SkillMatch, error)
	GenerateRoadmap(ctx context.Context, skillName string) (*RoadmapResult, error)
}

type SkillMatch struct {
	IsNewSkill bool   `json:"isNewSkill"`
	SkillName  string `json:"skillName"`
}

type RoadmapResult struct {
	Skill   string           `json:"skill"`
	Roadmap types.RoadmapDoc `json:"roadmap"`
}

type geminiService struct {
	log    *logger.Logger
	client GeminiClient
}

func NewGeminiService(log *logger.Logger, client GeminiClient) GeminiService {
	return &geminiService{
		log:    log.With("service", "GeminiService"),
		client: client,
	}
}

func (s *geminiService) MatchSkill(ctx context.Context, question string, existingSkills []string) (*SkillMatch, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	raw, err := s.client.GenerateText(ctx, skillMatchInstruction(existingSkills), question, skillMatchThinkingBudget)
	if err != nil {
		return nil, err
	}

	var match SkillMatch
	if err := json.Unmarshal([]byte(stripJSONFence(raw)), &match); err != nil {
		s.log.Error("Skill match response is not valid JSON", "error", err, "raw", raw)
		return nil, fmt.Errorf("failed to parse skill match response: %w", err)
	}
	if strings.TrimSpace(match.SkillName) == "" {
		return nil, fmt.Errorf("skill match response has no skillName")
	}
	s.log.Debug("Skill match decided", "is_new_skill", match.IsNewSkill, "skill", match.SkillName)
	return &match, nil
}

func (s *geminiService) GenerateRoadmap(ctx context.Context, skillName string) (*RoadmapResult, error) {
	if strings.TrimSpace(skillName) == "" {
		return nil, fmt.Errorf("skill name cannot be empty")
	}

	raw, err := s.client.GenerateText(ctx, roadmapInstruction, skillName, 0)
	if err != nil {
		return nil, err
	}

	var result RoadmapResult
	if err := json.Unmarshal([]byte(stripJSONFence(raw)), &result); err != nil {
		s.log.Error("Roadmap response is not valid JSON", "error", err, "raw", raw)
		return nil, fmt.Errorf("failed to parse roadmap response: %w", err)
	}
	if err := result.Roadmap.Validate(); err != nil {
		return nil, fmt.Errorf("roadmap response failed validation: %w", err)
	}
	if result.Skill == "" {
		result.Skill = skillName
	}
	s.log.Debug("Roadmap authored", "skill", result.Skill, "phases", len(result.Roadmap))
	return &result, nil
}

// stripJSONFence removes a Markdown code-fence wrapper the model sometimes
// puts around its JSON output.
func stripJSONFence(raw string) string {
	out := strings.TrimSpace(raw)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```json")
		out = strings.TrimPrefix(out, "```")
		out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	}
	return strings.TrimSpace(out)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/services"
)

type SkillHandler struct {
	log             *logger.Logger
	skillMapService services.SkillMapService
}

func NewSkillHandler(log *logger.Logger, skillMapService services.SkillMapService) *SkillHandler {
	return &SkillHandler{
		log:             log.With("handler", "SkillHandler"),
		skillMapService: skillMapService,
	}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skillMapService.ListSkills(c.Request.Context())
	if err != nil {
		h.log.Error("ListSkills failed", "error", err)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	RespondOK(c, gin.H{
		"count": len(skills),
		"data":  skills,
	})
}

func (h *SkillHandler) GetRoadmapBySkill(c *gin.Context) {
	raw := c.Param("skillId")
	if raw == "" {
		RespondError(c, http.StatusBadRequest, errors.New("Skill ID is required"))
		return
	}
	skillID, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("Skill ID is not a valid id"))
		return
	}

	result, err := h.skillMapService.GetRoadmapBySkillID(c.Request.Context(), skillID)
	if err != nil {
		if errors.Is(err, services.ErrRoadmapNotFound) {
			RespondError(c, http.StatusNotFound, errors.New("Roadmap not found for the given skill"))
			return
		}
		h.log.Error("GetRoadmapBySkill failed", "error", err, "skill_id", skillID)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, gin.H{
		"skill":   result.Skill,
		"roadmap": json.RawMessage(result.Roadmap),
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/services"
)

type GenerateHandler struct {
	log             *logger.Logger
	skillMapService services.SkillMapService
}

func NewGenerateHandler(log *logger.Logger, skillMapService services.SkillMapService) *GenerateHandler {
	return &GenerateHandler{
		log:             log.With("handler", "GenerateHandler"),
		skillMapService: skillMapService,
	}
}

func (h *GenerateHandler) GenerateMap(c *gin.Context) {
	var body struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Question) == "" {
		RespondError(c, http.StatusBadRequest, errors.New("Question is required in the request body"))
		return
	}

	result, err := h.skillMapService.GenerateMap(c.Request.Context(), body.Question)
	if err != nil {
		h.log.Error("GenerateMap failed", "error", err, "question", body.Question)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, gin.H{
		"skill":   result.Skill,
		"roadmap": json.RawMessage(result.Roadmap),
	})
}

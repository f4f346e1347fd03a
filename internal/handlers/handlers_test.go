package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/services"
	"github.com/yungbote/pathly-backend/internal/types"
)

type stubSkillMapService struct {
	generateCalls int
	result        *services.SkillMapResult
	skills        []*types.Skill
	err           error
}

func (s *stubSkillMapService) GenerateMap(ctx context.Context, question string) (*services.SkillMapResult, error) {
	s.generateCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubSkillMapService) ListSkills(ctx context.Context) ([]*types.Skill, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.skills, nil
}

func (s *stubSkillMapService) GetRoadmapBySkillID(ctx context.Context, skillID uuid.UUID) (*services.SkillMapResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.result == nil {
		return nil, services.ErrRoadmapNotFound
	}
	return s.result, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func performJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
	}
	return body
}

func newGenerateRouter(stub *stubSkillMapService, t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewGenerateHandler(testLogger(t), stub)
	router.POST("/api/gemini/generate-map", h.GenerateMap)
	return router
}

func newSkillRouter(stub *stubSkillMapService, t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSkillHandler(testLogger(t), stub)
	router.GET("/api/skills", h.ListSkills)
	router.GET("/api/skills/roadmap/:skillId", h.GetRoadmapBySkill)
	return router
}

func TestGenerateMapSuccess(t *testing.T) {
	stub := &stubSkillMapService{result: &services.SkillMapResult{
		Skill:   "Gardening",
		Roadmap: datatypes.JSON(`[{"MajorNode":"Basics","Topics":[{"SubNode":"Soil","Description":"d","Resources":["r"]}]}]`),
	}}
	router := newGenerateRouter(stub, t)

	w := performJSON(t, router, http.MethodPost, "/api/gemini/generate-map", `{"question":"I want to learn gardening"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["skill"] != "Gardening" {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["roadmap"].([]any); !ok {
		t.Fatalf("roadmap is not a JSON array: %v", body["roadmap"])
	}
}

func TestGenerateMapMissingQuestion(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "no_body", body: ""},
		{name: "empty_object", body: `{}`},
		{name: "blank_question", body: `{"question":"   "}`},
		{name: "not_json", body: `question=gardening`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubSkillMapService{}
			router := newGenerateRouter(stub, t)

			w := performJSON(t, router, http.MethodPost, "/api/gemini/generate-map", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", w.Code)
			}
			body := decodeBody(t, w)
			if body["success"] != false {
				t.Fatalf("unexpected body: %v", body)
			}
			if stub.generateCalls != 0 {
				t.Fatalf("service was called %d times for an invalid request", stub.generateCalls)
			}
		})
	}
}

func TestGenerateMapServiceFailure(t *testing.T) {
	stub := &stubSkillMapService{err: context.DeadlineExceeded}
	router := newGenerateRouter(stub, t)

	w := performJSON(t, router, http.MethodPost, "/api/gemini/generate-map", `{"question":"gardening"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestListSkills(t *testing.T) {
	stub := &stubSkillMapService{skills: []*types.Skill{
		{ID: uuid.New(), Question: "q2", Skill: "Cybersecurity", CreatedAt: time.Now()},
		{ID: uuid.New(), Question: "q1", Skill: "Gardening", CreatedAt: time.Now().Add(-time.Hour)},
	}}
	router := newSkillRouter(stub, t)

	w := performJSON(t, router, http.MethodGet, "/api/skills", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["count"] != float64(2) {
		t.Fatalf("unexpected body: %v", body)
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("unexpected data: %v", body["data"])
	}
}

func TestGetRoadmapBySkillNotFound(t *testing.T) {
	stub := &stubSkillMapService{}
	router := newSkillRouter(stub, t)

	w := performJSON(t, router, http.MethodGet, "/api/skills/roadmap/"+uuid.NewString(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Roadmap not found for the given skill" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestGetRoadmapBySkillInvalidID(t *testing.T) {
	stub := &stubSkillMapService{}
	router := newSkillRouter(stub, t)

	w := performJSON(t, router, http.MethodGet, "/api/skills/roadmap/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestGetRoadmapBySkillSuccess(t *testing.T) {
	stub := &stubSkillMapService{result: &services.SkillMapResult{
		Skill:   "Gardening",
		Roadmap: datatypes.JSON(`[{"MajorNode":"Basics","Topics":[{"SubNode":"Soil","Description":"d","Resources":["r"]}]}]`),
	}}
	router := newSkillRouter(stub, t)

	w := performJSON(t, router, http.MethodGet, "/api/skills/roadmap/"+uuid.NewString(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["skill"] != "Gardening" {
		t.Fatalf("unexpected body: %v", body)
	}
}

package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/utils"
)

// GeminiClient is the raw text-generation capability. It carries no retry or
// backoff policy; transport failures propagate unchanged to the caller.
type GeminiClient interface {
	GenerateText(ctx context.Context, system, contents string, thinkingBudget int32) (string, error)
}

type geminiClient struct {
	log    *logger.Logger
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, log *logger.Logger) (GeminiClient, error) {
	serviceLog := log.With("service", "GeminiClient")

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := utils.GetEnv("GEMINI_MODEL", "gemini-2.5-flash-lite", log)
	timeoutSec := utils.GetEnvAsInt("GEMINI_TIMEOUT_SECONDS", 120, log)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to init Gemini client: %w", err)
	}

	return &geminiClient{
		log:    serviceLog,
		client: client,
		model:  model,
	}, nil
}

func (g *geminiClient) GenerateText(ctx context.Context, system, contents string, thinkingBudget int32) (string, error) {
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if thinkingBudget > 0 {
		config.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(thinkingBudget),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(contents), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

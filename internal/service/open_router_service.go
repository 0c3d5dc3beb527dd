package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/job-portal/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type OpenRouterServiceInterface interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) *OpenRouterService {
	return &OpenRouterService{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		client: resty.New().SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
	}
}

const resumeSystemPrompt = "You extract structured data from resumes and answer with a single JSON object."

// Generate sends one chat completion and returns the assistant message.
func (s *OpenRouterService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model":       s.Model,
			"temperature": 0.1,
			"response_format": map[string]string{
				"type": "json_object",
			},
			"messages": []map[string]string{
				{"role": "system", "content": resumeSystemPrompt},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		log.Printf("OpenRouter returned %d: %s", resp.StatusCode(), gjson.Get(body, "error.message").String())
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode())
	}

	text := gjson.Get(body, "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}

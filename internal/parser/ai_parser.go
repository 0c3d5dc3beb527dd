package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var (
	ErrAIProviderUnavailable = errors.New("ai provider unavailable")
	ErrAIParseFailed         = errors.New("ai reply could not be parsed")
)

const DefaultAITimeout = 30 * time.Second

// Generator is a hosted language model that answers a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AIParserConfig struct {
	APIKey  string
	Timeout time.Duration
}

// AIResult is either a success with Data and Score, or a failure with Err
// and a zero score.
type AIResult struct {
	Success bool
	Data    *AIResume
	Score   int
	Err     error
}

type AIParser struct {
	gen Generator
	cfg AIParserConfig
}

func NewAIParser(gen Generator, cfg AIParserConfig) *AIParser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAITimeout
	}
	return &AIParser{gen: gen, cfg: cfg}
}

// Available reports whether a credential and a generator were configured.
func (p *AIParser) Available() bool {
	return p != nil && p.gen != nil && strings.TrimSpace(p.cfg.APIKey) != ""
}

// Parse calls the model once. It never returns an error directly; every
// provider problem becomes a failed AIResult.
func (p *AIParser) Parse(ctx context.Context, resumeText string) AIResult {
	if !p.Available() {
		return failure(ErrAIProviderUnavailable)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	raw, err := p.gen.Generate(callCtx, BuildResumePrompt(resumeText))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return failure(fmt.Errorf("%w: timed out after %s", ErrAIProviderUnavailable, p.cfg.Timeout))
		}
		return failure(fmt.Errorf("%w: %v", ErrAIProviderUnavailable, err))
	}

	data, err := DecodeAIResume(raw)
	if err != nil {
		return failure(err)
	}
	return AIResult{Success: true, Data: data, Score: AIScore(data)}
}

func failure(err error) AIResult {
	return AIResult{Success: false, Score: 0, Err: err}
}

// DecodeAIResume strips markdown fences and surrounding prose from a model
// reply and decodes the JSON object it contains.
func DecodeAIResume(raw string) (*AIResume, error) {
	body := extractJSONObject(stripFences(raw))
	if body == "" || !gjson.Valid(body) {
		return nil, fmt.Errorf("%w: reply is not a JSON object", ErrAIParseFailed)
	}

	var out AIResume
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIParseFailed, err)
	}
	return &out, nil
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func extractJSONObject(s string) string {
	i := strings.Index(s, "{")
	j := strings.LastIndex(s, "}")
	if i < 0 || j <= i {
		return ""
	}
	return s[i : j+1]
}

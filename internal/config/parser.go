package config

import (
	"strings"
	"sync"
	"time"
)

const (
	AIProviderGemini     = "gemini"
	AIProviderOpenRouter = "openrouter"
)

type ParserConfig struct {
	AIProvider    string
	AITimeout     time.Duration
	MinTextLength int
	OCREnabled    bool
	OCRLanguage   string
}

var (
	parserConfig *ParserConfig
	parserOnce   sync.Once
)

func LoadParserConfig() *ParserConfig {
	parserOnce.Do(func() {
		parserConfig = &ParserConfig{
			AIProvider:    strings.ToLower(getEnv("AI_PROVIDER", AIProviderGemini)),
			AITimeout:     getEnvDuration("AI_TIMEOUT", 30*time.Second),
			MinTextLength: getEnvInt("RESUME_MIN_TEXT_LENGTH", 50),
			OCREnabled:    getEnvBool("OCR_ENABLED", true),
			OCRLanguage:   getEnv("OCR_LANGUAGE", "eng"),
		}
	})
	return parserConfig
}

package parser

import (
	"regexp"
	"strings"
)

const (
	CategoryGame        = "Game Development"
	CategoryMobile      = "Mobile Development"
	CategoryAIML        = "AI/ML"
	CategoryDataScience = "Data Science"
	CategoryIoT         = "IoT"
	CategoryUIUX        = "UI/UX Design"
	CategoryECommerce   = "E-commerce"
	CategoryEducation   = "Education"
	CategoryWeb         = "Web Development"
)

type categoryRule struct {
	category string
	pattern  *regexp.Regexp
}

// categoryRules is checked in order and the first match wins. Keyword sets
// overlap ("AI learning platform"), so the order is part of the contract.
var categoryRules = []categoryRule{
	{CategoryGame, keywords("game", "games", "gaming", "unity", "unreal", "godot", "pygame", "multiplayer", "puzzle")},
	{CategoryMobile, keywords("android", "ios", "mobile", "flutter", "react native", "kotlin", "swift", "apk", "mobile app")},
	{CategoryAIML, keywords("ai", "artificial intelligence", "machine learning", "ml", "deep learning", "neural network",
		"chatbot", "chat bot", "nlp", "natural language", "computer vision", "tensorflow", "pytorch", "keras",
		"llm", "gpt", "openai", "gemini", "prediction", "classification", "recognition", "detection")},
	{CategoryDataScience, keywords("data science", "data analysis", "data analytics", "analytics", "pandas", "numpy",
		"visualization", "visualisation", "tableau", "power bi", "dashboard", "statistics", "etl", "data pipeline")},
	{CategoryIoT, keywords("iot", "internet of things", "arduino", "raspberry pi", "esp32", "esp8266", "sensor", "sensors",
		"embedded", "microcontroller", "home automation", "smart home")},
	{CategoryUIUX, keywords("ui/ux", "ui", "ux", "figma", "wireframe", "wireframes", "prototype", "prototyping",
		"user interface", "user experience", "adobe xd", "design system")},
	{CategoryECommerce, keywords("e-commerce", "ecommerce", "shopping", "shopping cart", "cart", "online store", "store",
		"payment", "checkout", "marketplace", "product catalog")},
	{CategoryEducation, keywords("education", "educational", "learning", "e-learning", "school", "student", "students",
		"course", "courses", "quiz", "lms", "platform", "tutor", "classroom")},
}

// keywords builds a case-insensitive alternation matching whole words only,
// so "ai" does not fire inside "email".
func keywords(words ...string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(^|[^a-z0-9])(` + strings.Join(quoted, "|") + `)($|[^a-z0-9])`)
}

// Categorize returns exactly one category for a project, defaulting to web
// development when no keyword group matches.
func Categorize(name, description string) string {
	text := strings.ToLower(name + " " + description)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return CategoryWeb
}

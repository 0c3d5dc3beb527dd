package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name        string
		project     string
		description string
		want        string
	}{
		{"ai before education", "Study Buddy", "An AI chatbot for a learning platform", CategoryAIML},
		{"game", "Space Shooter", "2D game built in Unity", CategoryGame},
		{"mobile", "Expense Tracker", "Android app written in Kotlin", CategoryMobile},
		{"data science", "Sales Dashboard", "Data analysis with pandas", CategoryDataScience},
		{"iot", "Smart Plant", "Arduino with a soil moisture sensor", CategoryIoT},
		{"ui ux", "Banking Redesign", "Wireframes and prototype in Figma", CategoryUIUX},
		{"e-commerce", "ShopEasy", "Online store with checkout", CategoryECommerce},
		{"education", "Quiz Master", "Quiz app for students", CategoryEducation},
		{"default web", "Portfolio Site", "Personal site with React", CategoryWeb},
		{"empty", "", "", CategoryWeb},
		{"whole words only", "Mail Client", "Reads email and sends replies", CategoryWeb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.project, tt.description))
		})
	}
}

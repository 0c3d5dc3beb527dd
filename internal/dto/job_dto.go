package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Content  string `json:"content"`
}

type JobDTO struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Content      string    `json:"content"`
	HasEmbedding bool      `json:"has_embedding"`
	Distance     float64   `json:"distance,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

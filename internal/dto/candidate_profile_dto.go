package dto

import (
	"time"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/google/uuid"
)

type CreateCandidateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReparseRequest struct {
	URL string `json:"url"`
}

type CandidateProfileDTO struct {
	ID                uuid.UUID              `json:"id"`
	Name              string                 `json:"name"`
	Email             string                 `json:"email"`
	ResumeDocumentURL string                 `json:"resume_document_url"`
	ExtractedProfile  model.ExtractedProfile `json:"extracted_profile"`
	ParseScore        int                    `json:"parse_score"`
	ParsedAt          *time.Time             `json:"parsed_at"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func NewCandidateProfileDTO(p *model.CandidateProfile) CandidateProfileDTO {
	return CandidateProfileDTO{
		ID:                p.ID,
		Name:              p.Name,
		Email:             p.Email,
		ResumeDocumentURL: p.ResumeDocumentURL,
		ExtractedProfile:  p.ExtractedProfile.Data(),
		ParseScore:        p.ParseScore,
		ParsedAt:          p.ParsedAt,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// IngestResultDTO is returned by the upload and re-parse endpoints.
type IngestResultDTO struct {
	CandidateID      uuid.UUID              `json:"candidate_id"`
	Success          bool                   `json:"success"`
	ExtractedProfile model.ExtractedProfile `json:"extracted_profile"`
	ParseScore       int                    `json:"parse_score"`
	Parser           string                 `json:"parser"`
	UsedOCR          bool                   `json:"used_ocr"`
	ParsedAt         time.Time              `json:"parsed_at"`
}

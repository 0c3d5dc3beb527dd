package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CandidateProfile struct {
	ID                uuid.UUID                           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name              string                              `gorm:"type:varchar(255);not null" json:"name"`
	Email             string                              `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	ResumeDocumentURL string                              `gorm:"type:text" json:"resume_document_url"`
	ExtractedProfile  datatypes.JSONType[ExtractedProfile] `gorm:"type:jsonb" json:"extracted_profile"`
	ParseScore        int                                 `gorm:"type:int;default:0;check:parse_score >= 0 AND parse_score <= 100" json:"parse_score"`
	ParsedAt          *time.Time                          `json:"parsed_at"`
	CreatedAt         time.Time                           `json:"created_at"`
	UpdatedAt         time.Time                           `json:"updated_at"`
}

func (p *CandidateProfile) TableName() string {
	return "candidate_profiles"
}

// NewCandidateProfile builds the empty profile created at registration.
func NewCandidateProfile(name, email string) CandidateProfile {
	return CandidateProfile{
		ID:               uuid.New(),
		Name:             name,
		Email:            email,
		ExtractedProfile: datatypes.NewJSONType(EmptyExtractedProfile()),
		ParseScore:       0,
	}
}

// ExtractionUpdate is everything a successful ingestion writes back to a
// profile. ResumeDocumentURL is only written when non-empty.
type ExtractionUpdate struct {
	ExtractedProfile  ExtractedProfile
	ParseScore        int
	ParsedAt          time.Time
	ResumeDocumentURL string
}

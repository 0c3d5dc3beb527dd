package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type CandidateProfileRepository struct {
	db *gorm.DB
}

func NewCandidateProfileRepository(db *gorm.DB) *CandidateProfileRepository {
	return &CandidateProfileRepository{db}
}

func (r *CandidateProfileRepository) Create(ctx context.Context, profile *model.CandidateProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *CandidateProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CandidateProfile, error) {
	var p model.CandidateProfile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveExtraction replaces the extracted document and score in one UPDATE.
// The registered name is never part of the column set.
func (r *CandidateProfileRepository) SaveExtraction(ctx context.Context, id uuid.UUID, u model.ExtractionUpdate) error {
	columns := map[string]any{
		"extracted_profile": datatypes.NewJSONType(u.ExtractedProfile),
		"parse_score":       u.ParseScore,
		"parsed_at":         u.ParsedAt,
	}
	if u.ResumeDocumentURL != "" {
		columns["resume_document_url"] = u.ResumeDocumentURL
	}

	res := r.db.WithContext(ctx).
		Model(&model.CandidateProfile{}).
		Where("id = ?", id).
		Updates(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return nil
}

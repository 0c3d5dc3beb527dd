package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/repository"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

var (
	ErrEmbedderUnavailable = errors.New("embedding provider not configured")
	ErrResumeNotParsed     = errors.New("candidate has no parsed resume")
)

const (
	DefaultMatchLimit = 5
	MaxMatchLimit     = 50
)

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobs(ctx context.Context, page, pageSize int) ([]model.Job, int64, error)
	SearchJobs(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Job, error)
}

type JobUsecase struct {
	jobs     JobStore
	profiles ProfileStore
	embedder Embedder
}

// NewJobUsecase accepts a nil embedder; jobs are then stored without
// embeddings and matching is unavailable.
func NewJobUsecase(jobs JobStore, profiles ProfileStore, embedder Embedder) *JobUsecase {
	return &JobUsecase{jobs: jobs, profiles: profiles, embedder: embedder}
}

func (uc *JobUsecase) CreateJob(ctx context.Context, job *model.Job) error {
	if uc.embedder != nil {
		emb, err := uc.embedder.GenerateEmbedding(ctx, job.Title+"\n"+job.Content)
		if err != nil {
			log.Printf("Embedding failed for job %q, storing without embedding: %v", job.Title, err)
		} else {
			v := pgvector.NewVector(emb)
			job.Embedding = &v
		}
	}
	if err := uc.jobs.CreateJob(ctx, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (uc *JobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]model.Job, int64, error) {
	return uc.jobs.GetJobs(ctx, page, pageSize)
}

// MatchJobs embeds the candidate's extracted profile and returns the
// nearest jobs.
func (uc *JobUsecase) MatchJobs(ctx context.Context, candidateID uuid.UUID, limit int) ([]model.Job, error) {
	if uc.embedder == nil {
		return nil, ErrEmbedderUnavailable
	}
	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	if limit > MaxMatchLimit {
		limit = MaxMatchLimit
	}

	candidate, err := uc.profiles.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newIngestError(ProfileNotFound, err)
		}
		return nil, err
	}
	if candidate.ParsedAt == nil {
		return nil, ErrResumeNotParsed
	}

	query := ProfileSearchText(candidate.ExtractedProfile.Data())
	if query == "" {
		return nil, ErrResumeNotParsed
	}
	emb, err := uc.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed profile: %w", err)
	}
	return uc.jobs.SearchJobs(ctx, pgvector.NewVector(emb), limit)
}

// ProfileSearchText flattens the parts of a profile that describe what the
// candidate can do.
func ProfileSearchText(p model.ExtractedProfile) string {
	var parts []string
	if p.CareerObjective != "" {
		parts = append(parts, p.CareerObjective)
	}
	if len(p.TechnicalSkills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(p.TechnicalSkills, ", "))
	}
	if len(p.Tools) > 0 {
		parts = append(parts, "Tools: "+strings.Join(p.Tools, ", "))
	}
	for _, pos := range p.Experience.Positions {
		parts = append(parts, strings.TrimSpace(pos.Title+" "+pos.Company))
	}
	for _, pr := range p.Projects {
		parts = append(parts, strings.TrimSpace(pr.Name+" ("+pr.Category+") "+strings.Join(pr.Tools, ", ")))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

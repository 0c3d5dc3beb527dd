package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeJobStore struct {
	jobs      []model.Job
	lastQuery pgvector.Vector
	lastTopK  int
}

func (s *fakeJobStore) CreateJob(_ context.Context, job *model.Job) error {
	job.ID = uuid.New()
	s.jobs = append(s.jobs, *job)
	return nil
}

func (s *fakeJobStore) GetJobs(_ context.Context, page, pageSize int) ([]model.Job, int64, error) {
	return s.jobs, int64(len(s.jobs)), nil
}

func (s *fakeJobStore) SearchJobs(_ context.Context, embedding pgvector.Vector, topK int) ([]model.Job, error) {
	s.lastQuery = embedding
	s.lastTopK = topK
	return s.jobs, nil
}

type fakeEmbedder struct {
	err   error
	texts []string
}

func (e *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	e.texts = append(e.texts, text)
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func TestJobUsecase_CreateJob(t *testing.T) {
	t.Run("with embedding", func(t *testing.T) {
		store := &fakeJobStore{}
		uc := NewJobUsecase(store, newFakeProfileStore(), &fakeEmbedder{})
		job := model.Job{Title: "Backend Engineer", Content: "Go, PostgreSQL"}
		require.NoError(t, uc.CreateJob(context.Background(), &job))
		require.NotNil(t, job.Embedding)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, job.Embedding.Slice())
	})

	t.Run("embedding failure still stores the job", func(t *testing.T) {
		store := &fakeJobStore{}
		uc := NewJobUsecase(store, newFakeProfileStore(), &fakeEmbedder{err: errors.New("quota")})
		job := model.Job{Title: "Backend Engineer", Content: "Go"}
		require.NoError(t, uc.CreateJob(context.Background(), &job))
		assert.Nil(t, job.Embedding)
		assert.Len(t, store.jobs, 1)
	})
}

func TestJobUsecase_MatchJobs(t *testing.T) {
	parsed := model.NewCandidateProfile("Alice", "alice@example.com")
	profile := model.EmptyExtractedProfile()
	profile.TechnicalSkills = []string{"Go", "SQL"}
	profile.Projects = []model.Project{{Name: "Tracker", Category: "Web Development"}}
	parsed.ExtractedProfile = datatypes.NewJSONType(profile)
	now := time.Now()
	parsed.ParsedAt = &now

	unparsed := model.NewCandidateProfile("Bob", "bob@example.com")

	store := &fakeJobStore{jobs: []model.Job{{Title: "Go Developer"}}}
	embedder := &fakeEmbedder{}
	uc := NewJobUsecase(store, newFakeProfileStore(parsed, unparsed), embedder)

	jobs, err := uc.MatchJobs(context.Background(), parsed.ID, 0)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	assert.Equal(t, DefaultMatchLimit, store.lastTopK)
	require.Len(t, embedder.texts, 1)
	assert.Contains(t, embedder.texts[0], "Skills: Go, SQL")
	assert.Contains(t, embedder.texts[0], "Tracker")

	_, err = uc.MatchJobs(context.Background(), parsed.ID, 10000)
	require.NoError(t, err)
	assert.Equal(t, MaxMatchLimit, store.lastTopK)

	_, err = uc.MatchJobs(context.Background(), unparsed.ID, 3)
	assert.ErrorIs(t, err, ErrResumeNotParsed)

	_, err = uc.MatchJobs(context.Background(), uuid.New(), 3)
	requireKind(t, err, ProfileNotFound)

	_, err = NewJobUsecase(store, newFakeProfileStore(parsed), nil).MatchJobs(context.Background(), parsed.ID, 3)
	assert.ErrorIs(t, err, ErrEmbedderUnavailable)
}

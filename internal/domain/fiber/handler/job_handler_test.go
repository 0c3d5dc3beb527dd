package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/datatypes"
)

type memoryJobs struct {
	jobs     []model.Job
	lastTopK int
}

func (m *memoryJobs) CreateJob(_ context.Context, job *model.Job) error {
	job.ID = uuid.New()
	m.jobs = append(m.jobs, *job)
	return nil
}

func (m *memoryJobs) GetJobs(_ context.Context, _, _ int) ([]model.Job, int64, error) {
	return m.jobs, int64(len(m.jobs)), nil
}

func (m *memoryJobs) SearchJobs(_ context.Context, _ pgvector.Vector, topK int) ([]model.Job, error) {
	m.lastTopK = topK
	return m.jobs, nil
}

type staticEmbedder struct{}

func (staticEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func TestMatchJobs_Limit(t *testing.T) {
	candidate := model.NewCandidateProfile("Sanjay", "sanjay@gmail.com")
	profile := model.EmptyExtractedProfile()
	profile.TechnicalSkills = []string{"Go", "PostgreSQL"}
	candidate.ExtractedProfile = datatypes.NewJSONType(profile)
	now := time.Now()
	candidate.ParsedAt = &now

	tests := []struct {
		name     string
		query    string
		wantTopK int
	}{
		{name: "default", query: "", wantTopK: usecase.DefaultMatchLimit},
		{name: "within range", query: "?limit=20", wantTopK: 20},
		{name: "upper bound", query: "?limit=50", wantTopK: usecase.MaxMatchLimit},
		{name: "too large", query: "?limit=1000000", wantTopK: usecase.DefaultMatchLimit},
		{name: "negative", query: "?limit=-3", wantTopK: usecase.DefaultMatchLimit},
		{name: "not a number", query: "?limit=all", wantTopK: usecase.DefaultMatchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := &memoryJobs{jobs: []model.Job{{ID: uuid.New(), Title: "Go Developer"}}}
			profiles := &memoryProfiles{profiles: map[uuid.UUID]model.CandidateProfile{candidate.ID: candidate}}

			app := fiber.New()
			NewJobHandler(usecase.NewJobUsecase(jobs, profiles, staticEmbedder{})).RegisterRoutes(app)

			req := httptest.NewRequest(http.MethodGet, "/candidates/"+candidate.ID.String()+"/job-matches"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			body := readBody(t, resp)

			assert.Equal(t, fiber.StatusOK, resp.StatusCode, body)
			assert.Equal(t, tt.wantTopK, jobs.lastTopK)
			assert.Equal(t, "Go Developer", gjson.Get(body, "data.0.title").String())
		})
	}
}

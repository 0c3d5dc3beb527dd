package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/parser"
	"github.com/fadilmartias/job-portal/internal/repository"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.CandidateProfile
	saveErr  error
	saves    int
}

func newFakeProfileStore(profiles ...model.CandidateProfile) *fakeProfileStore {
	s := &fakeProfileStore{profiles: map[uuid.UUID]*model.CandidateProfile{}}
	for i := range profiles {
		p := profiles[i]
		s.profiles[p.ID] = &p
	}
	return s
}

func (s *fakeProfileStore) Create(_ context.Context, p *model.CandidateProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *fakeProfileStore) FindByID(_ context.Context, id uuid.UUID) (*model.CandidateProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) SaveExtraction(_ context.Context, id uuid.UUID, u model.ExtractionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	p, ok := s.profiles[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.saves++
	p.ExtractedProfile = datatypes.NewJSONType(u.ExtractedProfile)
	p.ParseScore = u.ParseScore
	parsedAt := u.ParsedAt
	p.ParsedAt = &parsedAt
	if u.ResumeDocumentURL != "" {
		p.ResumeDocumentURL = u.ResumeDocumentURL
	}
	return nil
}

type fakeStorage struct {
	files     map[string][]byte
	uploadErr error
	uploads   int
}

func (s *fakeStorage) Upload(_ context.Context, filename string, data []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads++
	url := "https://files.example.com/" + filename
	if s.files == nil {
		s.files = map[string][]byte{}
	}
	s.files[url] = data
	return url, nil
}

func (s *fakeStorage) Download(_ context.Context, url string) ([]byte, error) {
	data, ok := s.files[url]
	if !ok {
		return nil, errors.New("404 not found")
	}
	return data, nil
}

type fakeExtractor struct {
	result util.ExtractResult
	err    error
	calls  int
}

func (e *fakeExtractor) Extract(_ context.Context, _ []byte) (util.ExtractResult, error) {
	e.calls++
	return e.result, e.err
}

type fakeAIParser struct {
	result parser.AIResult
	calls  int
}

func (p *fakeAIParser) Parse(_ context.Context, _ string) parser.AIResult {
	p.calls++
	return p.result
}

const sanjayText = "SANJAY S\nEmail: sanjay@gmail.com\nPhone: +91 98765 43210\n\nTECHNICAL SKILLS\nHTML, CSS, JavaScript\n\nPROJECTS\nPortfolio Site\n- Personal website.\nportfolio site \n- Duplicate entry.\n"

type fixture struct {
	store     *fakeProfileStore
	storage   *fakeStorage
	extractor *fakeExtractor
	ai        *fakeAIParser
	uc        *ResumeUsecase
	candidate model.CandidateProfile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	candidate := model.NewCandidateProfile("Sanjay Registered", "sanjay@gmail.com")
	existing := model.EmptyExtractedProfile()
	existing.ContactInfo.GitHub = "github.com/sanjay"
	candidate.ExtractedProfile = datatypes.NewJSONType(existing)

	f := &fixture{
		store:     newFakeProfileStore(candidate),
		storage:   &fakeStorage{},
		extractor: &fakeExtractor{result: util.ExtractResult{Text: sanjayText}},
		ai:        &fakeAIParser{result: parser.AIResult{Err: parser.ErrAIProviderUnavailable}},
		candidate: candidate,
	}
	f.uc = NewResumeUsecase(f.store, f.storage, f.extractor, f.ai, parser.NewHeuristicParser())
	f.uc.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) stored(t *testing.T) *model.CandidateProfile {
	t.Helper()
	p, err := f.store.FindByID(context.Background(), f.candidate.ID)
	require.NoError(t, err)
	return p
}

func requireKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok, "expected an IngestError, got %v", err)
	assert.Equal(t, want, kind)
}

func TestIngestResume_HeuristicFallback(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{Data: []byte("%PDF-1.4"), Filename: "cv.pdf"})
	require.NoError(t, err)

	assert.Equal(t, ParserHeuristic, res.Parser)
	assert.Subset(t, res.Profile.TechnicalSkills, []string{"HTML", "CSS", "JavaScript"})
	assert.Greater(t, res.ParseScore, 0)
	assert.LessOrEqual(t, res.ParseScore, 60)

	stored := f.stored(t)
	assert.Equal(t, "Sanjay Registered", stored.Name)
	assert.Equal(t, res.ParseScore, stored.ParseScore)
	assert.Equal(t, "https://files.example.com/cv.pdf", stored.ResumeDocumentURL)
	require.NotNil(t, stored.ParsedAt)
	assert.Equal(t, res.ParsedAt, *stored.ParsedAt)

	profile := stored.ExtractedProfile.Data()
	require.Len(t, profile.Projects, 1)
	assert.Equal(t, "Portfolio Site", profile.Projects[0].Name)
	assert.Equal(t, parser.CategoryWeb, profile.Projects[0].Category)
	assert.Equal(t, "github.com/sanjay", profile.ContactInfo.GitHub)
	assert.Equal(t, 1, f.store.saves)
}

func TestIngestResume_AISuccess(t *testing.T) {
	f := newFixture(t)
	data, err := parser.DecodeAIResume(`{"name": "Someone Else", "contact": {"email": "s@example.com"}, "technicalSkills": ["Go"], "softSkills": ["Teamwork"], "projects": [{"name": "Quiz App", "description": "quiz for students"}]}`)
	require.NoError(t, err)
	f.ai.result = parser.AIResult{Success: true, Data: data, Score: 77}

	res, err := f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{Data: []byte("%PDF"), Filename: "cv.pdf"})
	require.NoError(t, err)

	assert.Equal(t, ParserAI, res.Parser)
	assert.Equal(t, 77, res.ParseScore)
	stored := f.stored(t)
	assert.Equal(t, "Sanjay Registered", stored.Name)
	assert.Equal(t, 77, stored.ParseScore)
	profile := stored.ExtractedProfile.Data()
	assert.Equal(t, []string{"Go"}, profile.TechnicalSkills)
	assert.Equal(t, []string{"Teamwork"}, profile.PersonalSkills)
	assert.Equal(t, parser.CategoryEducation, profile.Projects[0].Category)
	assert.Equal(t, "github.com/sanjay", profile.ContactInfo.GitHub)
}

func TestIngestResume_UnreadableLeavesProfileUnchanged(t *testing.T) {
	f := newFixture(t)
	f.extractor.err = util.ErrDocumentUnreadable
	f.extractor.result = util.ExtractResult{UsedFallback: true}

	_, err := f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{Data: []byte("%PDF"), Filename: "scan.pdf"})
	requireKind(t, err, DocumentUnreadable)
	assert.ErrorIs(t, err, util.ErrDocumentUnreadable)

	stored := f.stored(t)
	assert.Equal(t, 0, stored.ParseScore)
	assert.Nil(t, stored.ParsedAt)
	assert.Empty(t, stored.ResumeDocumentURL)
	assert.Equal(t, 0, f.ai.calls)
	assert.Equal(t, 0, f.storage.uploads)
	assert.Equal(t, 0, f.store.saves)
}

func TestIngestResume_FetchFailed(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{URL: "https://files.example.com/missing.pdf"})
	requireKind(t, err, DocumentFetchFailed)
	assert.Equal(t, 0, f.extractor.calls)

	// no bytes, no url and nothing stored yet
	_, err = f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{})
	requireKind(t, err, DocumentFetchFailed)
	assert.Equal(t, 0, f.store.saves)
}

func TestIngestResume_ReparseStoredDocument(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{Data: []byte("%PDF"), Filename: "cv.pdf"})
	require.NoError(t, err)

	_, err = f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.storage.uploads)
	assert.Equal(t, 2, f.store.saves)
	assert.Equal(t, "https://files.example.com/cv.pdf", f.stored(t).ResumeDocumentURL)
}

func TestIngestResume_WriteFailed(t *testing.T) {
	t.Run("database", func(t *testing.T) {
		f := newFixture(t)
		f.store.saveErr = errors.New("connection reset")
		_, err := f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{Data: []byte("%PDF"), Filename: "cv.pdf"})
		requireKind(t, err, ProfileWriteFailed)
		assert.Nil(t, f.stored(t).ParsedAt)
	})

	t.Run("object storage", func(t *testing.T) {
		f := newFixture(t)
		f.storage.uploadErr = errors.New("bucket unavailable")
		_, err := f.uc.IngestResume(context.Background(), f.candidate.ID, ResumeSource{Data: []byte("%PDF"), Filename: "cv.pdf"})
		requireKind(t, err, ProfileWriteFailed)
		assert.Equal(t, 0, f.store.saves)
	})
}

func TestIngestResume_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.IngestResume(context.Background(), uuid.New(), ResumeSource{Data: []byte("%PDF")})
	requireKind(t, err, ProfileNotFound)
	assert.Equal(t, 0, f.extractor.calls)
}

func TestCreateAndGetCandidate(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.CreateCandidate(context.Background(), " Alice ", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, 0, created.ParseScore)
	assert.True(t, created.ExtractedProfile.Data().IsEmpty())

	got, err := f.uc.GetCandidate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.uc.GetCandidate(context.Background(), uuid.New())
	requireKind(t, err, ProfileNotFound)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/parser"
	"github.com/fadilmartias/job-portal/internal/repository"
	"github.com/fadilmartias/job-portal/internal/service"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/google/uuid"
)

const (
	ParserAI        = "ai"
	ParserHeuristic = "heuristic"
)

type ProfileStore interface {
	Create(ctx context.Context, profile *model.CandidateProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CandidateProfile, error)
	SaveExtraction(ctx context.Context, id uuid.UUID, u model.ExtractionUpdate) error
}

type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (util.ExtractResult, error)
}

type AIResumeParser interface {
	Parse(ctx context.Context, text string) parser.AIResult
}

type HeuristicResumeParser interface {
	Parse(text string) *parser.HeuristicResume
}

// ResumeSource is either freshly uploaded bytes or a URL to fetch. With
// neither set the candidate's stored document is parsed again.
type ResumeSource struct {
	Data     []byte
	Filename string
	URL      string
}

type IngestResult struct {
	CandidateID uuid.UUID
	Profile     model.ExtractedProfile
	ParseScore  int
	Parser      string
	UsedOCR     bool
	ParsedAt    time.Time
}

type ResumeUsecase struct {
	profiles  ProfileStore
	storage   service.StorageServiceInterface
	extractor TextExtractor
	ai        AIResumeParser
	heuristic HeuristicResumeParser
	now       func() time.Time
}

func NewResumeUsecase(
	profiles ProfileStore,
	storage service.StorageServiceInterface,
	extractor TextExtractor,
	ai AIResumeParser,
	heuristic HeuristicResumeParser,
) *ResumeUsecase {
	return &ResumeUsecase{
		profiles:  profiles,
		storage:   storage,
		extractor: extractor,
		ai:        ai,
		heuristic: heuristic,
		now:       time.Now,
	}
}

func (uc *ResumeUsecase) CreateCandidate(ctx context.Context, name, email string) (*model.CandidateProfile, error) {
	profile := model.NewCandidateProfile(strings.TrimSpace(name), strings.TrimSpace(email))
	if err := uc.profiles.Create(ctx, &profile); err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}
	return &profile, nil
}

func (uc *ResumeUsecase) GetCandidate(ctx context.Context, id uuid.UUID) (*model.CandidateProfile, error) {
	profile, err := uc.profiles.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newIngestError(ProfileNotFound, err)
	}
	return profile, err
}

// IngestResume runs fetch, extract, parse, normalize and commit for one
// resume. Either the whole extraction is written in a single update or the
// stored profile is left untouched.
func (uc *ResumeUsecase) IngestResume(ctx context.Context, candidateID uuid.UUID, src ResumeSource) (*IngestResult, error) {
	candidate, err := uc.profiles.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newIngestError(ProfileNotFound, err)
		}
		return nil, newIngestError(ProfileWriteFailed, fmt.Errorf("load candidate: %w", err))
	}

	data, err := uc.fetch(ctx, candidate, src)
	if err != nil {
		return nil, newIngestError(DocumentFetchFailed, err)
	}

	extracted, err := uc.extractor.Extract(ctx, data)
	if err != nil {
		log.Printf("Resume of candidate %s is unreadable (ocr=%t): %v", candidateID, extracted.UsedFallback, err)
		return nil, newIngestError(DocumentUnreadable, err)
	}

	result := &IngestResult{CandidateID: candidateID, UsedOCR: extracted.UsedFallback}
	existing := candidate.ExtractedProfile.Data()

	ai := uc.ai.Parse(ctx, extracted.Text)
	if ai.Success {
		result.Profile = parser.NormalizeAI(ai.Data, existing)
		result.ParseScore = ai.Score
		result.Parser = ParserAI
	} else {
		log.Printf("AI parse failed for candidate %s, using heuristic parser: %v", candidateID, ai.Err)
		h := uc.heuristic.Parse(extracted.Text)
		result.Profile = parser.NormalizeHeuristic(h, existing)
		result.ParseScore = parser.HeuristicScore(h)
		result.Parser = ParserHeuristic
	}

	documentURL := strings.TrimSpace(src.URL)
	if len(src.Data) > 0 {
		documentURL, err = uc.storage.Upload(ctx, src.Filename, src.Data)
		if err != nil {
			return nil, newIngestError(ProfileWriteFailed, fmt.Errorf("store resume: %w", err))
		}
	}

	result.ParsedAt = uc.now().UTC()
	err = uc.profiles.SaveExtraction(ctx, candidateID, model.ExtractionUpdate{
		ExtractedProfile:  result.Profile,
		ParseScore:        result.ParseScore,
		ParsedAt:          result.ParsedAt,
		ResumeDocumentURL: documentURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newIngestError(ProfileNotFound, err)
		}
		return nil, newIngestError(ProfileWriteFailed, err)
	}

	log.Printf("Ingested resume for candidate %s via %s parser (score %d, ocr=%t)",
		candidateID, result.Parser, result.ParseScore, result.UsedOCR)
	return result, nil
}

func (uc *ResumeUsecase) fetch(ctx context.Context, candidate *model.CandidateProfile, src ResumeSource) ([]byte, error) {
	if len(src.Data) > 0 {
		return src.Data, nil
	}
	url := strings.TrimSpace(src.URL)
	if url == "" {
		url = candidate.ResumeDocumentURL
	}
	if url == "" {
		return nil, errors.New("no resume document to fetch")
	}
	data, err := uc.storage.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	return data, nil
}

package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/middleware"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxResumeSize = 5 * 1024 * 1024

var pdfMagic = []byte("%PDF")

type ResumeHandler struct {
	uc *usecase.ResumeUsecase
}

func NewResumeHandler(uc *usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(app fiber.Router) {
	app.Post("/candidates", h.CreateCandidate)
	app.Get("/candidates/:id", h.GetCandidate)
	app.Post("/candidates/:id/resume", middleware.RateLimiter(1, 4*time.Second), h.UploadResume)
	app.Post("/admin/candidates/:id/reparse", h.Reparse)
}

func (h *ResumeHandler) CreateCandidate(c *fiber.Ctx) error {
	var req dto.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "name is required"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "email is invalid"
	}
	if len(errs) > 0 {
		formErr := util.NewFormError("validation failed", errs)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, formErr)
	}

	profile, err := h.uc.CreateCandidate(c.UserContext(), req.Name, req.Email)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create candidate",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create candidate",
		Data:    dto.NewCandidateProfileDTO(profile),
	})
}

func (h *ResumeHandler) GetCandidate(c *fiber.Ctx) error {
	id, err := parseCandidateID(c)
	if err != nil {
		return requestErrorResponse(c, err)
	}
	profile, err := h.uc.GetCandidate(c.UserContext(), id)
	if err != nil {
		return usecaseErrorResponse(c, "failed to get candidate", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get candidate",
		Data:    dto.NewCandidateProfileDTO(profile),
	})
}

func (h *ResumeHandler) UploadResume(c *fiber.Ctx) error {
	id, err := parseCandidateID(c)
	if err != nil {
		return requestErrorResponse(c, err)
	}

	data, filename, err := h.readResume(c, "resume")
	if err != nil {
		return requestErrorResponse(c, err)
	}

	result, err := h.uc.IngestResume(c.UserContext(), id, usecase.ResumeSource{Data: data, Filename: filename})
	if err != nil {
		return usecaseErrorResponse(c, "failed to ingest resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success parse resume",
		Data:    ingestResultDTO(result),
	})
}

func (h *ResumeHandler) Reparse(c *fiber.Ctx) error {
	id, err := parseCandidateID(c)
	if err != nil {
		return requestErrorResponse(c, err)
	}

	var req dto.ReparseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "invalid request body",
			}, err)
		}
	}

	result, err := h.uc.IngestResume(c.UserContext(), id, usecase.ResumeSource{URL: req.URL})
	if err != nil {
		return usecaseErrorResponse(c, "failed to re-parse resume", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success re-parse resume",
		Data:    ingestResultDTO(result),
	})
}

// readResume validates the uploaded resume. Validation failures are returned
// as *fiber.Error so the caller can render them.
func (h *ResumeHandler) readResume(c *fiber.Ctx, fieldName string) ([]byte, string, error) {
	file, err := c.FormFile(fieldName)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s file is required", fieldName))
	}

	if file.Size > maxResumeSize {
		return nil, "", fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("%s file size is too large (max 5MB)", fieldName))
	}

	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return nil, "", fiber.NewError(fiber.StatusUnsupportedMediaType, fmt.Sprintf("unsupported %s file type", fieldName))
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open %s file: %w", fieldName, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxResumeSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s file: %w", fieldName, err)
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, "", fiber.NewError(fiber.StatusUnsupportedMediaType, fmt.Sprintf("%s file is not a PDF", fieldName))
	}
	return data, file.Filename, nil
}

func requestErrorResponse(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fe.Code,
			Message: fe.Message,
		}, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "cannot read uploaded file",
	}, err)
}

func parseCandidateID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid candidate id")
	}
	return id, nil
}

func ingestResultDTO(r *usecase.IngestResult) dto.IngestResultDTO {
	return dto.IngestResultDTO{
		CandidateID:      r.CandidateID,
		Success:          true,
		ExtractedProfile: r.Profile,
		ParseScore:       r.ParseScore,
		Parser:           r.Parser,
		UsedOCR:          r.UsedOCR,
		ParsedAt:         r.ParsedAt,
	}
}

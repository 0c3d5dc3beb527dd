package handler

import (
	"strings"

	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/response"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type JobHandler struct {
	uc *usecase.JobUsecase
}

func NewJobHandler(uc *usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(app fiber.Router) {
	app.Post("/jobs", h.CreateJob)
	app.Get("/jobs", h.ListJobs)
	app.Get("/candidates/:id/job-matches", h.MatchJobs)
}

func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		errs["content"] = "content is required"
	}
	if len(errs) > 0 {
		formErr := util.NewFormError("validation failed", errs)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, formErr)
	}

	job := model.Job{
		Title:    strings.TrimSpace(req.Title),
		Company:  strings.TrimSpace(req.Company),
		Location: strings.TrimSpace(req.Location),
		Content:  req.Content,
	}
	if err := h.uc.CreateJob(c.UserContext(), &job); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create job",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create job",
		Data:    newJobDTO(job),
	})
}

func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	jobs, total, err := h.uc.ListJobs(c.UserContext(), page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list jobs",
		}, err)
	}

	data := make([]dto.JobDTO, 0, len(jobs))
	for _, j := range jobs {
		data = append(data, newJobDTO(j))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get jobs",
		Data:       data,
		Pagination: newPagination(page, pageSize, total, len(jobs)),
	})
}

func (h *JobHandler) MatchJobs(c *fiber.Ctx) error {
	id, err := parseCandidateID(c)
	if err != nil {
		return requestErrorResponse(c, err)
	}

	limit := c.QueryInt("limit", usecase.DefaultMatchLimit)
	if limit < 1 || limit > usecase.MaxMatchLimit {
		limit = usecase.DefaultMatchLimit
	}

	jobs, err := h.uc.MatchJobs(c.UserContext(), id, limit)
	if err != nil {
		return usecaseErrorResponse(c, "failed to match jobs", err)
	}

	data := make([]dto.JobDTO, 0, len(jobs))
	for _, j := range jobs {
		data = append(data, newJobDTO(j))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success match jobs",
		Data:    data,
	})
}

func newJobDTO(j model.Job) dto.JobDTO {
	return dto.JobDTO{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Content:      j.Content,
		HasEmbedding: j.Embedding != nil,
		Distance:     j.Distance,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func newPagination(page, pageSize int, total int64, count int) *response.Pagination {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	from := (page-1)*pageSize + 1
	to := from + count - 1
	if count == 0 {
		from, to = 0, 0
	}
	return &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       from,
		To:         to,
	}
}

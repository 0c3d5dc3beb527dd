package handler

import (
	"errors"

	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/fadilmartias/job-portal/internal/util"
	"github.com/gofiber/fiber/v2"
)

var ingestErrorStatus = map[usecase.ErrorKind]int{
	usecase.DocumentUnreadable:  fiber.StatusUnprocessableEntity,
	usecase.DocumentFetchFailed: fiber.StatusBadGateway,
	usecase.ProfileNotFound:     fiber.StatusNotFound,
	usecase.ProfileWriteFailed:  fiber.StatusInternalServerError,
}

var ingestErrorMessage = map[usecase.ErrorKind]string{
	usecase.DocumentUnreadable:  "resume could not be read, please upload a text-based PDF",
	usecase.DocumentFetchFailed: "resume document could not be fetched",
	usecase.ProfileNotFound:     "candidate not found",
	usecase.ProfileWriteFailed:  "failed to save candidate profile",
}

func usecaseErrorResponse(c *fiber.Ctx, fallback string, err error) error {
	if kind, ok := usecase.KindOf(err); ok {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:      ingestErrorStatus[kind],
			Message:   ingestErrorMessage[kind],
			ErrorKind: string(kind),
		}, err)
	}

	switch {
	case errors.Is(err, usecase.ErrEmbedderUnavailable):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusServiceUnavailable,
			Message: "job matching is not configured",
		}, err)
	case errors.Is(err, usecase.ErrResumeNotParsed):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "candidate has no parsed resume yet",
		}, err)
	}

	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: fallback,
	}, err)
}

package handler

import (
	"errors"
	"fmt"
	"io"

	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const defaultResumeMaxBytes = 10 << 20

type ResumeHandler struct {
	uc       usecase.ResumeUsecase
	maxBytes int64
}

func NewResumeHandler(uc usecase.ResumeUsecase, maxBytes int) *ResumeHandler {
	if maxBytes <= 0 {
		maxBytes = defaultResumeMaxBytes
	}
	return &ResumeHandler{uc: uc, maxBytes: int64(maxBytes)}
}

// RegisterRoutes mounts the upload route; limit, when set, runs before it.
func (h *ResumeHandler) RegisterRoutes(r fiber.Router, limit fiber.Handler) {
	if r == nil {
		return
	}
	postLimited(r, "/parse-resume", limit, h.Parse)
}

func (h *ResumeHandler) Parse(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No file provided", nil, err)
	}
	if fh.Size > h.maxBytes {
		return middleware.NewAppError(fiber.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size is %d MB.", h.maxBytes>>20), nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No file provided", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to process resume", nil, err)
	}
	if int64(len(data)) > h.maxBytes {
		return middleware.NewAppError(fiber.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size is %d MB.", h.maxBytes>>20), nil, nil)
	}

	out, err := h.uc.Parse(c.Context(), userID, usecase.ResumeUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return mapResumeUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func mapResumeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnsupportedFileType):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported file type. Please upload PDF or DOCX.", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "No file provided", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrResumeParse):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to parse resume", nil, err)
	case errors.Is(err, usecase.ErrResumeStorage):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to upload resume file", nil, err)
	case errors.Is(err, usecase.ErrEmptyCompletion):
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to generate analysis", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to process resume", nil, err)
	}
}

package handler

import (
	"errors"

	"careerpath/internal/delivery/http/dto"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	profiles    usecase.ProfileUsecase
	assessments usecase.AssessmentUsecase
}

func NewProfileHandler(profiles usecase.ProfileUsecase, assessments usecase.AssessmentUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, assessments: assessments}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/assessment", h.SubmitAssessment)
	r.Get("/me/profile", h.GetProfile)
	r.Get("/me/courses", h.ListCourses)
}

func (h *ProfileHandler) SubmitAssessment(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.AssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.assessments.Submit(c.Context(), userID, req.Input())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to save assessment", nil, err)
	}

	return response.JSON(c, fiber.StatusOK, dto.AssessmentResponse{
		Profile: dto.NewProfileResponse(res.Profile),
		Skills:  res.Skills,
	})
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) ListCourses(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.profiles.ListCourses(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserCourseResponses(items))
}

package handler

import (
	"errors"

	"careerpath/internal/delivery/http/dto"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/domain/chat"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// AdvisorHandler serves the LLM-backed endpoints: course recommendations
// and the career chat.
type AdvisorHandler struct {
	recommendations usecase.RecommendationUsecase
	chat            usecase.ChatUsecase
}

func NewAdvisorHandler(recommendations usecase.RecommendationUsecase, chat usecase.ChatUsecase) *AdvisorHandler {
	return &AdvisorHandler{recommendations: recommendations, chat: chat}
}

func (h *AdvisorHandler) RegisterRoutes(r fiber.Router, limit fiber.Handler) {
	if r == nil {
		return
	}
	postLimited(r, "/recommendations", limit, h.Recommend)
	postLimited(r, "/chat", limit, h.Chat)
}

func postLimited(r fiber.Router, path string, limit, h fiber.Handler) {
	if limit == nil {
		r.Post(path, h)
		return
	}
	r.Post(path, limit, h)
}

func (h *AdvisorHandler) Recommend(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing currentPosition or desiredCareerPath", nil, err)
	}

	res, err := h.recommendations.Generate(c.Context(), userID, usecase.GapInput{
		CurrentPosition:   req.CurrentPosition,
		DesiredCareerPath: req.DesiredCareerPath,
		Skills:            req.Skills,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Missing currentPosition or desiredCareerPath", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.JSON(c, fiber.StatusOK, dto.RecommendationResponse{
		Query:           res.Query,
		Recommendations: dto.NewCourseResponses(res.Courses),
	})
}

func (h *AdvisorHandler) Chat(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.ChatRequest
	if err := c.Bind().Body(&req); err != nil || len(req.Messages) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Messages array is required", nil, err)
	}

	msgs := make([]chat.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, chat.Message{Role: chat.Role(m.Role), Content: m.Content})
	}

	res, err := h.chat.Reply(c.Context(), userID, msgs)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid message role", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := dto.ChatResponse{Message: res.Message, Role: string(chat.RoleAssistant)}
	if len(res.Courses) > 0 {
		out.Courses = dto.NewCourseResponses(res.Courses)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

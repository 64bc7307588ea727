package handler

import (
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/skills", h.SearchSkills)
	r.Get("/job-titles", h.SearchJobTitles)
}

func (h *CatalogHandler) SearchSkills(c fiber.Ctx) error {
	out, err := h.uc.SearchSkills(c.Context(), c.Query("q"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

func (h *CatalogHandler) SearchJobTitles(c fiber.Ctx) error {
	out, err := h.uc.SearchJobTitles(c.Context(), c.Query("q"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, out)
}

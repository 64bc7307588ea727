package routes

import (
	"careerpath/internal/delivery/http/handler"
	"careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP handler plus the middleware that guards them.
// Nil handlers are skipped.
type Registry struct {
	Health     *handler.HealthHandler
	Resume     *handler.ResumeHandler
	Advisor    *handler.AdvisorHandler
	Profile    *handler.ProfileHandler
	UserSkills *handler.UserSkillHandler
	Catalog    *handler.CatalogHandler
	WS         *ws.Handler

	Auth      fiber.Handler
	LLMLimits fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if r == nil || app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	if r.Auth != nil {
		api = app.Group("/api", r.Auth)
	}

	if r.Resume != nil {
		r.Resume.RegisterRoutes(api, r.LLMLimits)
	}
	if r.Advisor != nil {
		r.Advisor.RegisterRoutes(api, r.LLMLimits)
	}
	if r.Profile != nil {
		r.Profile.RegisterRoutes(api)
	}
	if r.UserSkills != nil {
		r.UserSkills.RegisterRoutes(api)
	}
	if r.Catalog != nil {
		r.Catalog.RegisterRoutes(api)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS != nil {
		r.WS.RegisterRoutes(app, r.Auth)
	}
}

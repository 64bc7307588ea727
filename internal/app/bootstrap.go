package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/delivery/http/handler"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/delivery/http/routes"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// multipart framing on top of the file itself
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container

	cancelHub context.CancelFunc
}

// New builds the fiber app around an already constructed container.
func New(c *Container) *App {
	cfg := c.Config

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: cfg.App.UploadMaxBytes + bodyLimitSlack,
	})

	registerGlobalMiddleware(f, c.Log)
	registry(c).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every dependency, applies migrations and seeders, and
// starts the websocket hub. The returned cleanup stops the hub and releases
// the container.
func Bootstrap(cfg config.Config, log *logger.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := c.Migrate(migCtx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	a := New(c)

	hubCtx, cancel := context.WithCancel(context.Background())
	a.cancelHub = cancel
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		a.cancelHub()
		return c.Close()
	}
	return a, cleanup, nil
}

func registry(c *Container) *routes.Registry {
	uc := c.Usecases
	auth := middleware.NewAuthMiddleware(c.JWT)
	limits := middleware.NewRateLimitMiddleware(c.Config.RateLimit.LLMPerMinute)

	return &routes.Registry{
		Health:     handler.NewHealthHandler(c.DB),
		Resume:     handler.NewResumeHandler(uc.Resume, c.Config.App.UploadMaxBytes),
		Advisor:    handler.NewAdvisorHandler(uc.Recommendations, uc.Chat),
		Profile:    handler.NewProfileHandler(uc.Profile, uc.Assessment),
		UserSkills: handler.NewUserSkillHandler(uc.UserSkills),
		Catalog:    handler.NewCatalogHandler(uc.Catalog),
		WS:         ws.NewHandler(c.Hub, c.Log),

		Auth:      auth.Middleware(),
		LLMLimits: limits.Middleware(),
	}
}

func registerGlobalMiddleware(app *fiber.App, log *logger.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

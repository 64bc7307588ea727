package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/database"
	"careerpath/internal/database/migration"
	dbpostgres "careerpath/internal/database/postgres"
	"careerpath/internal/database/seeder"
	"careerpath/internal/infrastructure/cache"
	"careerpath/internal/infrastructure/embedding"
	"careerpath/internal/infrastructure/llm"
	"careerpath/internal/infrastructure/storage"
	"careerpath/internal/pkg/jwt"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"
	"careerpath/internal/usecase"
	"careerpath/internal/ws"
)

type Repositories struct {
	Skills      *repository.PostgresSkillRepository
	UserSkills  *repository.PostgresUserSkillRepository
	Profiles    *repository.PostgresProfileRepository
	Assessments *repository.PostgresAssessmentRepository
	Courses     *repository.PostgresCourseRepository
	UserCourses *repository.PostgresUserCourseRepository
	JobTitles   *repository.PostgresJobTitleRepository
}

type Usecases struct {
	Recommendations *usecase.Recommendation
	Chat            *usecase.Chat
	Resume          *usecase.Resume
	Assessment      *usecase.Assessment
	UserSkills      *usecase.UserSkill
	Profile         *usecase.Profile
	Catalog         *usecase.Catalog
}

// Container owns every long-lived dependency of the API process.
type Container struct {
	Config config.Config
	Log    *logger.Logger

	DB       database.DB
	Cache    *cache.Redis
	LLM      *llm.Client
	Embedder *embedding.Service
	Storage  *storage.ResumeBucket
	JWT      *jwt.HMACService
	Hub      *ws.Hub

	Repos    Repositories
	Usecases Usecases
}

// NewContainer connects to Postgres and builds the infrastructure clients.
// Redis is optional; every other dependency failing is fatal.
func NewContainer(cfg config.Config, log *logger.Logger) (*Container, error) {
	log = logger.OrNop(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := &Container{Config: cfg, Log: log, DB: db}

	c.Cache = cache.NewRedis(cfg.Redis, log)

	c.LLM, err = llm.New(cfg.LLM, log)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("init llm: %w", err)
	}

	c.Embedder = embedding.New(cfg.Embedding, c.Cache, log)

	c.Storage, err = storage.NewResumeBucket(ctx, cfg.Storage, log)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	c.JWT = jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.Audience)
	c.Hub = ws.NewHub(log)

	c.Repos = newRepositories(db)
	c.Usecases = newUsecases(c)

	return c, nil
}

func newRepositories(db database.DB) Repositories {
	return Repositories{
		Skills:      repository.NewPostgresSkillRepository(db),
		UserSkills:  repository.NewPostgresUserSkillRepository(db),
		Profiles:    repository.NewPostgresProfileRepository(db),
		Assessments: repository.NewPostgresAssessmentRepository(db),
		Courses:     repository.NewPostgresCourseRepository(db),
		UserCourses: repository.NewPostgresUserCourseRepository(db),
		JobTitles:   repository.NewPostgresJobTitleRepository(db),
	}
}

func newUsecases(c *Container) Usecases {
	r := c.Repos
	log := c.Log

	matcher := usecase.NewCourseMatcher(c.LLM, c.Embedder, r.Courses, log)
	recommendations := usecase.NewRecommendationUsecase(matcher, r.UserCourses, c.Hub, log)
	reconciler := usecase.NewSkillReconciler(r.Skills, r.UserSkills, log)

	return Usecases{
		Recommendations: recommendations,
		Chat:            usecase.NewChatUsecase(c.LLM, matcher, r.UserSkills, r.Profiles, log),
		Resume:          usecase.NewResumeUsecase(c.Storage, r.Profiles, c.LLM, log),
		Assessment:      usecase.NewAssessmentUsecase(r.Profiles, r.Assessments, reconciler, recommendations, log),
		UserSkills:      usecase.NewUserSkillUsecase(r.Skills, r.UserSkills, log),
		Profile:         usecase.NewProfileUsecase(r.Profiles, r.UserCourses, log),
		Catalog:         usecase.NewCatalogUsecase(r.Skills, r.JobTitles, c.Cache, c.Config.Redis.TTL, log),
	}
}

// Migrate applies pending schema migrations and then the idempotent
// reference-data seeders.
func (c *Container) Migrate(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return errors.New("container not initialised")
	}
	mr := migration.Runner{Dir: c.Config.App.MigrationsDir, Logger: c.Log}
	if err := mr.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	sr := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Log}
	if err := sr.Run(ctx, c.DB); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Storage != nil {
		errs = append(errs, c.Storage.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

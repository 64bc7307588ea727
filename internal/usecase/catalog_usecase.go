package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"
)

const (
	catalogSearchLimit  = 10
	jobTitleMinQueryLen = 2
	catalogCacheTTL     = 10 * time.Minute
)

type CatalogUsecase interface {
	SearchSkills(ctx context.Context, q string) ([]string, error)
	SearchJobTitles(ctx context.Context, q string) ([]string, error)
}

// Catalog serves the autocomplete lookups of the assessment form.
type Catalog struct {
	skills    repository.SkillRepository
	jobTitles repository.JobTitleRepository
	cache     SearchCache
	ttl       time.Duration
	log       *logger.Logger
}

func NewCatalogUsecase(skills repository.SkillRepository, jobTitles repository.JobTitleRepository, cache SearchCache, ttl time.Duration, log *logger.Logger) *Catalog {
	if ttl <= 0 {
		ttl = catalogCacheTTL
	}
	return &Catalog{
		skills:    skills,
		jobTitles: jobTitles,
		cache:     cache,
		ttl:       ttl,
		log:       logger.OrNop(log).With("component", "catalog"),
	}
}

// SearchSkills returns up to ten skill names starting with q.
func (u *Catalog) SearchSkills(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []string{}, nil
	}
	return u.cached(ctx, "skills", q, func() ([]string, error) {
		rows, err := u.skills.SearchByPrefix(ctx, q, catalogSearchLimit)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(rows))
		for _, s := range rows {
			out = append(out, s.Name)
		}
		return out, nil
	})
}

// SearchJobTitles returns up to ten titles containing q. Queries shorter
// than two characters match nothing.
func (u *Catalog) SearchJobTitles(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < jobTitleMinQueryLen {
		return []string{}, nil
	}
	return u.cached(ctx, "job_titles", q, func() ([]string, error) {
		return u.jobTitles.Search(ctx, q, catalogSearchLimit)
	})
}

func (u *Catalog) cached(ctx context.Context, kind, q string, load func() ([]string, error)) ([]string, error) {
	key := SearchCacheKey(kind, q, catalogSearchLimit)
	if u.cache != nil {
		var hit []string
		ok, err := u.cache.GetJSON(ctx, key, &hit)
		if err != nil {
			u.log.Warn("search cache read failed", "kind", kind, "error", err)
		}
		if ok && err == nil {
			return hit, nil
		}
	}

	out, err := load()
	if err != nil {
		u.log.Error("catalog search failed", "kind", kind, "error", err)
		return nil, ErrInternal
	}
	if out == nil {
		out = []string{}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, u.ttl); err != nil {
			u.log.Warn("search cache write failed", "kind", kind, "error", err)
		}
	}
	return out, nil
}

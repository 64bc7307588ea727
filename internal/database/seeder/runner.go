package seeder

import (
	"context"
	"fmt"
	"time"

	"careerpath/internal/database"
	"careerpath/internal/pkg/logger"
)

type Runner struct {
	Seeders []Seeder
	Logger  *logger.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	log := logger.OrNop(r.Logger).With("component", "seeder")
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Debug("seeder done", "name", s.Name(), "took", time.Since(start))
	}
	return nil
}

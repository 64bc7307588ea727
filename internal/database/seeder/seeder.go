package seeder

import (
	"context"

	"careerpath/internal/database"
)

// Seeder inserts reference rows. Implementations must be idempotent: the
// runner executes every seeder on each server start.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

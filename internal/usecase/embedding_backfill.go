package usecase

import (
	"context"
	"fmt"
	"strings"

	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"
	"careerpath/internal/worker"
)

const defaultBackfillBatch = 50

// EmbeddingBackfill fills courses.embedding for every course that has none.
type EmbeddingBackfill struct {
	courses   repository.CourseRepository
	embedder  Embedder
	batchSize int
	workers   int
	rps       int
	log       *logger.Logger
}

func NewEmbeddingBackfill(courses repository.CourseRepository, embedder Embedder, workers, rps int, log *logger.Logger) *EmbeddingBackfill {
	if workers <= 0 {
		workers = 4
	}
	return &EmbeddingBackfill{
		courses:   courses,
		embedder:  embedder,
		batchSize: defaultBackfillBatch,
		workers:   workers,
		rps:       rps,
		log:       logger.OrNop(log).With("component", "embedding_backfill"),
	}
}

// Run processes batches until no course is left without an embedding and
// returns how many were written. The first batch with a failed course stops
// the run.
func (b *EmbeddingBackfill) Run(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		batch, err := b.courses.ListWithoutEmbedding(ctx, b.batchSize)
		if err != nil {
			return total, fmt.Errorf("list courses: %w", err)
		}
		if len(batch) == 0 {
			b.log.Info("embedding backfill complete", "updated", total)
			return total, nil
		}

		n, err := b.runBatch(ctx, batch)
		total += n
		if err != nil {
			return total, err
		}
		b.log.Info("embedding batch done", "size", len(batch), "updated", total)
	}
}

func (b *EmbeddingBackfill) runBatch(ctx context.Context, batch []repository.CourseForEmbedding) (int, error) {
	pool := worker.NewPool(b.workers, len(batch))
	pool.SetRateLimit(b.rps)
	out := pool.Run(ctx)

	for i, c := range batch {
		c := c
		pool.Submit(i, func(ctx context.Context) error {
			vec, err := b.embedder.Embed(ctx, courseEmbeddingText(c))
			if err != nil {
				return fmt.Errorf("embed: %w", err)
			}
			if err := b.courses.UpdateEmbedding(ctx, c.ID, vec); err != nil {
				return fmt.Errorf("update: %w", err)
			}
			return nil
		})
	}
	pool.Close()

	done := 0
	var firstErr error
	for res := range out {
		if res.Err != nil {
			b.log.Warn("course embedding failed", "course_id", batch[res.ID].ID, "error", res.Err)
			if firstErr == nil {
				firstErr = fmt.Errorf("course %s: %w", batch[res.ID].ID, res.Err)
			}
			continue
		}
		done++
	}
	if firstErr == nil && done < len(batch) {
		if err := ctx.Err(); err != nil {
			firstErr = err
		}
	}
	return done, firstErr
}

func courseEmbeddingText(c repository.CourseForEmbedding) string {
	return strings.TrimSpace(c.Title + " " + c.Description)
}

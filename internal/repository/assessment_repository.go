package repository

import (
	"context"
	"encoding/json"

	"careerpath/internal/database"

	"github.com/google/uuid"
)

type AssessmentRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, responses map[string]any, summary string) error
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

// Upsert replaces the user's single assessment snapshot.
func (r *PostgresAssessmentRepository) Upsert(ctx context.Context, userID uuid.UUID, responses map[string]any, summary string) error {
	b, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO career_assessments (user_id, responses, ai_summary, updated_at)
		 VALUES ($1, $2::jsonb, $3, now())
		 ON CONFLICT (user_id) DO UPDATE SET
			responses = EXCLUDED.responses,
			ai_summary = EXCLUDED.ai_summary,
			updated_at = now()`,
		userID, string(b), summary,
	)
	return err
}

package repository

import (
	"context"

	"careerpath/internal/database"
)

type JobTitleRepository interface {
	Search(ctx context.Context, q string, limit int) ([]string, error)
}

type PostgresJobTitleRepository struct {
	db database.DB
}

func NewPostgresJobTitleRepository(db database.DB) *PostgresJobTitleRepository {
	return &PostgresJobTitleRepository{db: db}
}

func (r *PostgresJobTitleRepository) Search(ctx context.Context, q string, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT title FROM job_titles WHERE title ILIKE '%' || $1 || '%' ORDER BY title ASC LIMIT $2`,
		escapeLike(q), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, limit)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

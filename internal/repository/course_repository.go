package repository

import (
	"context"

	"careerpath/internal/database"
	"careerpath/internal/domain/course"
	"careerpath/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type CourseForEmbedding struct {
	ID          uuid.UUID
	Title       string
	Description string
}

type CourseRepository interface {
	MatchCourses(ctx context.Context, embedding []float32, threshold float64, count int) ([]matching.Hit, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]course.Course, error)
	ListWithoutEmbedding(ctx context.Context, limit int) ([]CourseForEmbedding, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

func (r *PostgresCourseRepository) MatchCourses(ctx context.Context, embedding []float32, threshold float64, count int) ([]matching.Hit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, similarity FROM match_courses($1::vector, $2, $3)`,
		pgvector.NewVector(embedding), threshold, count,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.Hit, 0, count)
	for rows.Next() {
		var h matching.Hit
		if err := rows.Scan(&h.CourseID, &h.Similarity); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByIDs hydrates courses with their skill names. Row order is
// unspecified.
func (r *PostgresCourseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]course.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.title, COALESCE(c.description, ''), COALESCE(c.provider, ''), COALESCE(c.url, ''),
			c.duration_hours::float8, c.rating::float8, c.user_count, COALESCE(c.difficulty_level, ''),
			COALESCE(array_agg(s.name ORDER BY s.name) FILTER (WHERE s.name IS NOT NULL), '{}')
		 FROM courses c
		 LEFT JOIN course_skills cs ON cs.course_id = c.id
		 LEFT JOIN skills s ON s.id = cs.skill_id
		 WHERE c.id = ANY($1::uuid[])
		 GROUP BY c.id`,
		uuidStrings(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0, len(ids))
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Provider, &c.URL,
			&c.DurationHours, &c.Rating, &c.UserCount, &c.DifficultyLevel, &c.Skills); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) ListWithoutEmbedding(ctx context.Context, limit int) ([]CourseForEmbedding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, COALESCE(description, '') FROM courses
		 WHERE embedding IS NULL
		 ORDER BY created_at ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CourseForEmbedding, 0, limit)
	for rows.Next() {
		var c CourseForEmbedding
		if err := rows.Scan(&c.ID, &c.Title, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	_, err := r.db.Exec(ctx,
		`UPDATE courses SET embedding = $1::vector WHERE id = $2`,
		pgvector.NewVector(embedding), id,
	)
	return err
}

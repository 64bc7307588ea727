package repository

import (
	"context"

	"careerpath/internal/database"
	"careerpath/internal/domain/course"

	"github.com/google/uuid"
)

type UserCourseRepository interface {
	UpsertRecommended(ctx context.Context, userID uuid.UUID, courseIDs []uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]course.UserCourse, error)
}

type PostgresUserCourseRepository struct {
	db database.DB
}

func NewPostgresUserCourseRepository(db database.DB) *PostgresUserCourseRepository {
	return &PostgresUserCourseRepository{db: db}
}

func (r *PostgresUserCourseRepository) UpsertRecommended(ctx context.Context, userID uuid.UUID, courseIDs []uuid.UUID) error {
	if len(courseIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_courses (user_id, course_id, status, progress_percent, started_at, updated_at)
		 SELECT $1, c::uuid, $3, 0, now(), now()
		 FROM unnest($2::text[]) AS c
		 ON CONFLICT (course_id, user_id) DO UPDATE SET
			status = EXCLUDED.status,
			progress_percent = EXCLUDED.progress_percent,
			started_at = EXCLUDED.started_at,
			updated_at = now()`,
		userID, uuidStrings(courseIDs), course.StatusRecommended,
	)
	return err
}

func (r *PostgresUserCourseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]course.UserCourse, error) {
	rows, err := r.db.Query(ctx,
		`SELECT uc.user_id, uc.course_id, uc.status, uc.progress_percent, uc.started_at, uc.updated_at,
			c.title, COALESCE(c.provider, ''), COALESCE(c.url, ''), c.duration_hours::float8,
			c.rating::float8, c.user_count, COALESCE(c.difficulty_level, '')
		 FROM user_courses uc
		 JOIN courses c ON c.id = uc.course_id
		 WHERE uc.user_id = $1
		 ORDER BY uc.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.UserCourse, 0)
	for rows.Next() {
		var uc course.UserCourse
		if err := rows.Scan(&uc.UserID, &uc.CourseID, &uc.Status, &uc.ProgressPercent, &uc.StartedAt, &uc.UpdatedAt,
			&uc.Course.Title, &uc.Course.Provider, &uc.Course.URL, &uc.Course.DurationHours,
			&uc.Course.Rating, &uc.Course.UserCount, &uc.Course.DifficultyLevel); err != nil {
			return nil, err
		}
		uc.Course.ID = uc.CourseID
		out = append(out, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package repository

import (
	"context"
	"errors"

	"careerpath/internal/database"
	"careerpath/internal/domain/profile"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("career profile not found")

type CareerInfo struct {
	CurrentPosition    string
	ExpectedCareerPath string
	EducationLevel     string
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (profile.CareerProfile, error)
	UpsertCareerInfo(ctx context.Context, userID uuid.UUID, info CareerInfo) (profile.CareerProfile, error)
	UpsertResumeURL(ctx context.Context, userID uuid.UUID, url string) error
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, COALESCE(current_position, ''), COALESCE(expected_careerpath, ''),
	COALESCE(education_level, ''), COALESCE(resume_url, ''), created_at, updated_at`

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (profile.CareerProfile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM career_profiles WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		if database.IsNoRows(err) {
			return profile.CareerProfile{}, ErrProfileNotFound
		}
		return profile.CareerProfile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) UpsertCareerInfo(ctx context.Context, userID uuid.UUID, info CareerInfo) (profile.CareerProfile, error) {
	return scanProfile(r.db.QueryRow(ctx,
		`INSERT INTO career_profiles (user_id, current_position, expected_careerpath, education_level, updated_at)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), now())
		 ON CONFLICT (user_id) DO UPDATE SET
			current_position = EXCLUDED.current_position,
			expected_careerpath = EXCLUDED.expected_careerpath,
			education_level = EXCLUDED.education_level,
			updated_at = now()
		 RETURNING `+profileColumns,
		userID, info.CurrentPosition, info.ExpectedCareerPath, info.EducationLevel,
	))
}

func (r *PostgresProfileRepository) UpsertResumeURL(ctx context.Context, userID uuid.UUID, url string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO career_profiles (user_id, resume_url, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET resume_url = EXCLUDED.resume_url, updated_at = now()`,
		userID, url,
	)
	return err
}

func scanProfile(row database.Row) (profile.CareerProfile, error) {
	var p profile.CareerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CurrentPosition, &p.ExpectedCareerPath,
		&p.EducationLevel, &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

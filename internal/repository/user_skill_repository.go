package repository

import (
	"context"
	"errors"

	"careerpath/internal/database"
	"careerpath/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkillUpsert struct {
	SkillID uuid.UUID
	Level   skill.Proficiency
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	FindByUserAndSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error)
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
	UpsertMany(ctx context.Context, userID uuid.UUID, items []UserSkillUpsert) error
	UpdateLevel(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level skill.Proficiency) (skill.UserSkill, error)
	Delete(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, s.name, us.proficiency_level, us.last_updated
	 FROM user_skills us
	 JOIN skills s ON s.id = us.skill_id`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx,
		userSkillSelect+` WHERE us.user_id = $1 ORDER BY us.last_updated DESC, s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		us, err := scanUserSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserAndSkill(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) (skill.UserSkill, error) {
	us, err := scanUserSkill(r.db.QueryRow(ctx,
		userSkillSelect+` WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	))
	if err != nil {
		if database.IsNoRows(err) {
			return skill.UserSkill{}, ErrUserSkillNotFound
		}
		return skill.UserSkill{}, err
	}
	return us, nil
}

func (r *PostgresUserSkillRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID)
	return err
}

func (r *PostgresUserSkillRepository) UpsertMany(ctx context.Context, userID uuid.UUID, items []UserSkillUpsert) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, 0, len(items))
	levels := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.SkillID.String())
		levels = append(levels, it.Level.String())
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (user_id, skill_id, proficiency_level, last_updated)
		 SELECT $1, u.skill_id::uuid, u.level, now()
		 FROM unnest($2::text[], $3::text[]) AS u(skill_id, level)
		 ON CONFLICT (user_id, skill_id)
		 DO UPDATE SET proficiency_level = EXCLUDED.proficiency_level, last_updated = now()`,
		userID, ids, levels,
	)
	return err
}

func (r *PostgresUserSkillRepository) UpdateLevel(ctx context.Context, userID uuid.UUID, skillID uuid.UUID, level skill.Proficiency) (skill.UserSkill, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE user_skills SET proficiency_level = $1, last_updated = now()
		 WHERE user_id = $2 AND skill_id = $3`,
		level.String(), userID, skillID,
	)
	if err != nil {
		return skill.UserSkill{}, err
	}
	if affected == 0 {
		return skill.UserSkill{}, ErrUserSkillNotFound
	}
	return r.FindByUserAndSkill(ctx, userID, skillID)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID uuid.UUID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func scanUserSkill(row database.Row) (skill.UserSkill, error) {
	var us skill.UserSkill
	var level string
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &level, &us.LastUpdated); err != nil {
		return skill.UserSkill{}, err
	}
	us.ProficiencyLevel = skill.NormalizeProficiency(level, skill.Intermediate)
	return us, nil
}

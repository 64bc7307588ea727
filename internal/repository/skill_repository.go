package repository

import (
	"context"
	"errors"

	"careerpath/internal/database"
	"careerpath/internal/domain/skill"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	FindByName(ctx context.Context, name string) (skill.Skill, error)
	CreateSkill(ctx context.Context, name string) (skill.Skill, error)
	// CreateSkills inserts names missing from the catalog and returns the
	// catalog rows for every name, including rows created concurrently.
	CreateSkills(ctx context.Context, names []string) ([]skill.Skill, error)
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func (r *PostgresSkillRepository) FindByName(ctx context.Context, name string) (skill.Skill, error) {
	var s skill.Skill
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM skills WHERE lower(name) = $1 LIMIT 1`,
		skill.Key(name),
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string) (skill.Skill, error) {
	var s skill.Skill
	err := r.db.QueryRow(ctx,
		`INSERT INTO skills (name) VALUES ($1) RETURNING id, name, created_at`,
		name,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) CreateSkills(ctx context.Context, names []string) ([]skill.Skill, error) {
	if len(names) == 0 {
		return nil, nil
	}

	if _, err := r.db.Exec(ctx,
		`INSERT INTO skills (name)
		 SELECT n FROM unnest($1::text[]) AS n
		 ON CONFLICT ((lower(name))) DO NOTHING`,
		names,
	); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(names))
	for _, n := range names {
		keys = append(keys, skill.Key(n))
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM skills WHERE lower(name) = ANY($1::text[])`,
		keys,
	)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func (r *PostgresSkillRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM skills
		 WHERE name ILIKE $1 || '%'
		 ORDER BY name ASC
		 LIMIT $2`,
		escapeLike(prefix), limit,
	)
	if err != nil {
		return nil, err
	}
	return scanSkills(rows)
}

func scanSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package seeder

import (
	"context"

	"careerpath/internal/database"
)

var defaultSkills = []string{
	"Python", "JavaScript", "TypeScript", "Go", "Java", "SQL",
	"React", "Node.js", "Docker", "Kubernetes", "AWS", "GCP",
	"Machine Learning", "Data Analysis", "TensorFlow", "PyTorch",
	"Statistics", "Git", "Linux", "Figma", "Project Management",
	"Communication", "Leadership",
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "created_at"); err != nil {
		return err
	}

	_, err := db.Exec(ctx,
		`INSERT INTO skills (name)
		 SELECT n FROM unnest($1::text[]) AS n
		 ON CONFLICT ((lower(name))) DO NOTHING`,
		defaultSkills,
	)
	return err
}

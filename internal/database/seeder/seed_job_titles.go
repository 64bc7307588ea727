package seeder

import (
	"context"

	"careerpath/internal/database"
)

var defaultJobTitles = []string{
	"Software Engineer", "Backend Engineer", "Frontend Engineer", "Full Stack Developer",
	"Data Analyst", "Data Scientist", "Data Engineer", "Machine Learning Engineer",
	"DevOps Engineer", "Cloud Architect", "Site Reliability Engineer", "Mobile Developer",
	"QA Engineer", "Product Manager", "Project Manager", "UX Designer", "UI Designer",
	"Business Analyst", "Security Engineer", "Technical Writer", "Student",
}

type JobTitlesSeeder struct{}

func (JobTitlesSeeder) Name() string { return "job_titles" }

func (JobTitlesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_titles", "title"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, title := range defaultJobTitles {
		if _, err := tx.Exec(ctx, `INSERT INTO job_titles (title) VALUES ($1) ON CONFLICT (title) DO NOTHING`, title); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

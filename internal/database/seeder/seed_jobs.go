package seeder

import (
	"context"

	"hireflow/internal/database"
	"hireflow/internal/domain/job"
)

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

var seedJobs = []struct {
	Key          string
	Title        string
	Description  string
	Requirements []string
	Level        job.Level
	Department   string
}{
	{
		Key:          "backend-go",
		Title:        "Backend Engineer (Go)",
		Description:  "Own the candidate pipeline services end to end.",
		Requirements: []string{"Go", "PostgreSQL", "Redis", "REST APIs"},
		Level:        job.LevelMid,
		Department:   "Engineering",
	},
	{
		Key:          "senior-platform",
		Title:        "Senior Platform Engineer",
		Description:  "Build and run the shared infrastructure layer.",
		Requirements: []string{"Kubernetes", "Terraform", "Go", "AWS"},
		Level:        job.LevelSenior,
		Department:   "Platform",
	},
	{
		Key:          "junior-data",
		Title:        "Junior Data Analyst",
		Description:  "Support hiring analytics and reporting.",
		Requirements: []string{"SQL", "Python"},
		Level:        job.LevelJunior,
		Department:   "Data",
	},
}

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "title", "requirements", "level", "department", "is_active"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range seedJobs {
		_, err = tx.Exec(ctx,
			`INSERT INTO jobs (id, title, description, requirements, level, department, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			 ON CONFLICT (id) DO NOTHING`,
			stableID("job:"+it.Key), it.Title, it.Description, it.Requirements, string(it.Level), it.Department,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

package seeder

import (
	"context"

	"hireflow/internal/database"
)

type CandidatesSeeder struct{}

func (CandidatesSeeder) Name() string { return "candidates" }

var seedCandidates = []struct {
	Key      string
	JobKey   string
	FullName string
	Email    string
	Resume   string
}{
	{
		Key:      "amara",
		JobKey:   "backend-go",
		FullName: "Amara Osei",
		Email:    "amara.osei@example.com",
		Resume: "Amara Osei. Backend engineer with 5 years of experience. " +
			"Skills: Go, PostgreSQL, Redis, Docker, REST APIs. " +
			"Previously: Software Engineer at Finch Payments (3 years), Backend Developer at Kestrel Labs (2 years). " +
			"BSc Computer Science, University of Ghana.",
	},
	{
		Key:      "jonas",
		JobKey:   "backend-go",
		FullName: "Jonas Weber",
		Email:    "jonas.weber@example.com",
		Resume: "Jonas Weber. Software developer, 3 years of experience building web services. " +
			"Skills: Go, MySQL, gRPC. " +
			"Previously: Developer at Nordlicht Software (3 years). " +
			"MSc Informatics, TU Munich.",
	},
	{
		Key:      "priya",
		JobKey:   "backend-go",
		FullName: "Priya Nair",
		Email:    "priya.nair@example.com",
		Resume: "Priya Nair. Recent graduate, internship experience in web development. " +
			"Skills: Python, JavaScript, SQL. " +
			"Previously: Intern at Chennai Digital (6 months). " +
			"BTech Information Technology, Anna University.",
	},
	{
		Key:      "tobias",
		JobKey:   "senior-platform",
		FullName: "Tobias Lindqvist",
		Email:    "tobias.lindqvist@example.com",
		Resume: "Tobias Lindqvist. Platform engineer, 9 years across infrastructure and SRE. " +
			"Skills: Kubernetes, Terraform, Go, AWS, Prometheus. " +
			"Previously: Staff SRE at Polar Systems (5 years), Infrastructure Engineer at Baltica (4 years). " +
			"MSc Computer Engineering, KTH.",
	},
}

func (CandidatesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "candidates", "id", "job_id", "user_id", "full_name", "email", "resume_text", "status"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range seedCandidates {
		_, err = tx.Exec(ctx,
			`INSERT INTO candidates (id, job_id, user_id, full_name, email, resume_text, status)
			 VALUES ($1, $2, $3, $4, $5, $6, 'applied')
			 ON CONFLICT (job_id, user_id) DO NOTHING`,
			stableID("candidate:"+it.Key),
			stableID("job:"+it.JobKey),
			stableID("user:"+it.Key),
			it.FullName, it.Email, it.Resume,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

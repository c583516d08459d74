// Package seeder loads development fixtures: a recruiter account, a few
// open jobs and a bench of candidates with raw resumes ready for the
// extraction and scoring steps.
package seeder

import (
	"context"

	"hireflow/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

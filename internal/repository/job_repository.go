package repository

import (
	"context"

	"github.com/google/uuid"

	"hireflow/internal/database"
	"hireflow/internal/domain/job"
)

type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ListActive(ctx context.Context, limit, offset int) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	var j job.Job
	var level string
	err := r.db.QueryRow(ctx,
		`SELECT id, title, description, requirements, level, department, is_active, created_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &level, &j.Department, &j.IsActive, &j.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, err
	}
	j.Level = job.Level(level)
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	return j, nil
}

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, requirements, level, department, is_active, created_at
		 FROM jobs WHERE is_active = TRUE
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		var level string
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &level, &j.Department, &j.IsActive, &j.CreatedAt); err != nil {
			return nil, err
		}
		j.Level = job.Level(level)
		if j.Requirements == nil {
			j.Requirements = []string{}
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ JobRepository = (*PostgresJobRepository)(nil)

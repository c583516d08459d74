package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"hireflow/internal/database"
)

type Recruiter struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type RecruiterRepository interface {
	FindByEmail(ctx context.Context, email string) (Recruiter, error)
}

type PostgresRecruiterRepository struct {
	db database.DB
}

func NewPostgresRecruiterRepository(db database.DB) *PostgresRecruiterRepository {
	return &PostgresRecruiterRepository{db: db}
}

func (r *PostgresRecruiterRepository) FindByEmail(ctx context.Context, email string) (Recruiter, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var rec Recruiter
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM recruiters WHERE email = $1`,
		email,
	).Scan(&rec.ID, &rec.Email, &rec.PasswordHash, &rec.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return Recruiter{}, ErrNotFound
		}
		return Recruiter{}, err
	}
	return rec, nil
}

var _ RecruiterRepository = (*PostgresRecruiterRepository)(nil)

package seeder

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hireflow/internal/database"
)

type RecruitersSeeder struct{}

func (RecruitersSeeder) Name() string { return "recruiters" }

func (RecruitersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "recruiters", "id", "email", "password_hash"); err != nil {
		return err
	}

	items := []struct {
		Email    string
		Password string
	}{
		{Email: "recruiter@hireflow.dev", Password: "hireflow-dev"},
		{Email: "lead@hireflow.dev", Password: "hireflow-dev"},
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range items {
		hash, err := bcrypt.GenerateFromPassword([]byte(it.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO recruiters (id, email, password_hash)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (email) DO NOTHING`,
			stableID("recruiter:"+it.Email), it.Email, string(hash),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// stableID derives a deterministic UUID so reseeding never duplicates rows.
func stableID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("hireflow:"+key))
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hireflow/internal/database"
	"hireflow/internal/domain/interview"
)

type EvaluationRepository interface {
	// Upsert writes the scorecard for an interview, replacing any prior one.
	// Evaluation is rerunnable, so last write wins.
	Upsert(ctx context.Context, sc interview.Scorecard) error
	FindByInterview(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error)
}

type PostgresEvaluationRepository struct {
	db database.DB
}

func NewPostgresEvaluationRepository(db database.DB) *PostgresEvaluationRepository {
	return &PostgresEvaluationRepository{db: db}
}

func (r *PostgresEvaluationRepository) Upsert(ctx context.Context, sc interview.Scorecard) error {
	criteria, err := json.Marshal(sc.Criteria)
	if err != nil {
		return err
	}
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO evaluations (id, interview_id, criteria, overall_score, verdict, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (interview_id) DO UPDATE SET
			criteria = EXCLUDED.criteria,
			overall_score = EXCLUDED.overall_score,
			verdict = EXCLUDED.verdict,
			created_at = EXCLUDED.created_at`,
		sc.ID, sc.InterviewID, criteria, sc.OverallScore, sc.Verdict, sc.CreatedAt,
	)
	return err
}

func (r *PostgresEvaluationRepository) FindByInterview(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error) {
	var sc interview.Scorecard
	var criteriaRaw []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, interview_id, criteria, overall_score, verdict, created_at
		 FROM evaluations WHERE interview_id = $1`,
		interviewID,
	).Scan(&sc.ID, &sc.InterviewID, &criteriaRaw, &sc.OverallScore, &sc.Verdict, &sc.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return interview.Scorecard{}, ErrNotFound
		}
		return interview.Scorecard{}, err
	}
	if len(criteriaRaw) > 0 {
		if err := json.Unmarshal(criteriaRaw, &sc.Criteria); err != nil {
			return interview.Scorecard{}, err
		}
	}
	return sc, nil
}

var _ EvaluationRepository = (*PostgresEvaluationRepository)(nil)

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hireflow/internal/database"
	"hireflow/internal/domain/interview"
)

type InterviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (interview.Interview, error)

	// CreateWithQuestions persists the interview, its ordered question set
	// and the assessment token in one transaction.
	CreateWithQuestions(ctx context.Context, iv interview.Interview, prompts []string, token interview.AssessmentToken) error

	// ConsumeToken atomically consumes an unconsumed, unexpired token and
	// returns the interview it authorizes. Failure is classified as
	// ErrTokenNotFound, ErrTokenConsumed or ErrTokenExpired.
	ConsumeToken(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error)

	// TransitionStatus performs a conditional state change, stamping
	// started_at / completed_at for the corresponding targets.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to interview.Status, at time.Time) (bool, error)

	ListQuestions(ctx context.Context, interviewID uuid.UUID) ([]interview.Question, error)
}

type PostgresInterviewRepository struct {
	db database.DB
}

func NewPostgresInterviewRepository(db database.DB) *PostgresInterviewRepository {
	return &PostgresInterviewRepository{db: db}
}

func (r *PostgresInterviewRepository) FindByID(ctx context.Context, id uuid.UUID) (interview.Interview, error) {
	var iv interview.Interview
	var status string
	err := r.db.QueryRow(ctx,
		`SELECT id, candidate_id, status, started_at, completed_at, expires_at, created_at
		 FROM interviews WHERE id = $1`,
		id,
	).Scan(&iv.ID, &iv.CandidateID, &status, &iv.StartedAt, &iv.CompletedAt, &iv.ExpiresAt, &iv.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return interview.Interview{}, ErrNotFound
		}
		return interview.Interview{}, err
	}
	iv.Status = interview.Status(status)
	return iv, nil
}

func (r *PostgresInterviewRepository) CreateWithQuestions(ctx context.Context, iv interview.Interview, prompts []string, token interview.AssessmentToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO interviews (id, candidate_id, status, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		iv.ID, iv.CandidateID, string(iv.Status), iv.ExpiresAt, iv.CreatedAt,
	)
	if err != nil {
		return err
	}

	for i, prompt := range prompts {
		_, err = tx.Exec(ctx,
			`INSERT INTO interview_questions (id, interview_id, ordinal, prompt)
			 VALUES ($1, $2, $3, $4)`,
			uuid.New(), iv.ID, i, prompt,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO assessment_tokens (id, interview_id, token_hash, expires_at, consumed)
		 VALUES ($1, $2, $3, $4, FALSE)`,
		token.ID, token.InterviewID, token.TokenHash, token.ExpiresAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresInterviewRepository) ConsumeToken(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error) {
	now = now.UTC()

	var interviewID uuid.UUID
	err := r.db.QueryRow(ctx,
		`UPDATE assessment_tokens SET consumed = TRUE, consumed_at = $2
		 WHERE token_hash = $1 AND consumed = FALSE AND expires_at > $2
		 RETURNING interview_id`,
		tokenHash, now,
	).Scan(&interviewID)
	if err == nil {
		return interviewID, nil
	}
	if !isNoRows(err) {
		return uuid.Nil, err
	}

	// Conditional update matched nothing; read back only to classify why.
	// For expired tokens the interview id is still returned so the caller
	// can flip the interview to expired.
	var consumed bool
	var expiresAt time.Time
	var ivID uuid.UUID
	err = r.db.QueryRow(ctx,
		`SELECT consumed, expires_at, interview_id FROM assessment_tokens WHERE token_hash = $1`,
		tokenHash,
	).Scan(&consumed, &expiresAt, &ivID)
	if err != nil {
		if isNoRows(err) {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, err
	}
	if consumed {
		return uuid.Nil, ErrTokenConsumed
	}
	return ivID, ErrTokenExpired
}

func (r *PostgresInterviewRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to interview.Status, at time.Time) (bool, error) {
	if !from.CanTransition(to) {
		return false, nil
	}
	at = at.UTC()

	var n int64
	var err error
	switch to {
	case interview.StatusActive:
		n, err = r.db.Exec(ctx,
			`UPDATE interviews SET status = $2, started_at = $3 WHERE id = $1 AND status = $4`,
			id, string(to), at, string(from),
		)
	case interview.StatusCompleted:
		n, err = r.db.Exec(ctx,
			`UPDATE interviews SET status = $2, completed_at = $3 WHERE id = $1 AND status = $4`,
			id, string(to), at, string(from),
		)
	default:
		n, err = r.db.Exec(ctx,
			`UPDATE interviews SET status = $2 WHERE id = $1 AND status = $3`,
			id, string(to), string(from),
		)
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresInterviewRepository) ListQuestions(ctx context.Context, interviewID uuid.UUID) ([]interview.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, interview_id, ordinal, prompt
		 FROM interview_questions
		 WHERE interview_id = $1
		 ORDER BY ordinal ASC`,
		interviewID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.Question, 0)
	for rows.Next() {
		var q interview.Question
		if err := rows.Scan(&q.ID, &q.InterviewID, &q.Ordinal, &q.Prompt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ InterviewRepository = (*PostgresInterviewRepository)(nil)

package repository

import (
	"context"

	"github.com/google/uuid"

	"hireflow/internal/database"
	"hireflow/internal/domain/interview"
)

type ResponseRepository interface {
	// Insert persists a response and reports whether it landed. A false
	// return means the (interview, question index) slot was already filled;
	// the unique constraint decides, so concurrent duplicates resolve to
	// exactly one winner.
	Insert(ctx context.Context, resp interview.Response) (bool, error)

	ListByInterview(ctx context.Context, interviewID uuid.UUID) ([]interview.Response, error)
	CountByInterview(ctx context.Context, interviewID uuid.UUID) (int, error)
}

type PostgresResponseRepository struct {
	db database.DB
}

func NewPostgresResponseRepository(db database.DB) *PostgresResponseRepository {
	return &PostgresResponseRepository{db: db}
}

func (r *PostgresResponseRepository) Insert(ctx context.Context, resp interview.Response) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO candidate_responses (id, interview_id, question_index, answer, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (interview_id, question_index) DO NOTHING`,
		resp.ID, resp.InterviewID, resp.QuestionIndex, resp.Answer, resp.SubmittedAt.UTC(),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresResponseRepository) ListByInterview(ctx context.Context, interviewID uuid.UUID) ([]interview.Response, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, interview_id, question_index, answer, submitted_at
		 FROM candidate_responses
		 WHERE interview_id = $1
		 ORDER BY question_index ASC`,
		interviewID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interview.Response, 0)
	for rows.Next() {
		var resp interview.Response
		if err := rows.Scan(&resp.ID, &resp.InterviewID, &resp.QuestionIndex, &resp.Answer, &resp.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResponseRepository) CountByInterview(ctx context.Context, interviewID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM candidate_responses WHERE interview_id = $1`,
		interviewID,
	).Scan(&n)
	return n, err
}

var _ ResponseRepository = (*PostgresResponseRepository)(nil)

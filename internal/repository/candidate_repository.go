package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hireflow/internal/database"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/profile"
)

type CandidateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]candidate.Candidate, error)

	// ListEligible returns candidates in status applied with a non-null match
	// score, ordered score desc then created_at asc, at most limit rows.
	ListEligible(ctx context.Context, jobID uuid.UUID, limit int) ([]candidate.Candidate, error)

	SaveProfile(ctx context.Context, id uuid.UUID, p profile.Profile) error

	// SetMatchScore is set-once: it only writes when match_score is still
	// null and reports whether the write landed.
	SetMatchScore(ctx context.Context, id uuid.UUID, score int, rationale string) (bool, error)

	// MarkInvited flips applied -> invited, recording the interview id and
	// invitation time. The status predicate makes concurrent invites race
	// safely: exactly one caller wins.
	MarkInvited(ctx context.Context, id, interviewID uuid.UUID, invitedAt time.Time) (bool, error)

	// TransitionStatus performs a conditional status update and reports
	// whether the row moved.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to candidate.Status) (bool, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `id, job_id, user_id, full_name, email, resume_text, profile, status,
	match_score, match_rationale, interview_id, invited_at, created_at`

func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if isNoRows(err) {
			return candidate.Candidate{}, ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]candidate.Candidate, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE job_id = $1
		 ORDER BY created_at ASC
		 LIMIT $2 OFFSET $3`,
		jobID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func (r *PostgresCandidateRepository) ListEligible(ctx context.Context, jobID uuid.UUID, limit int) ([]candidate.Candidate, error) {
	if limit <= 0 {
		return []candidate.Candidate{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates
		 WHERE job_id = $1 AND status = $2 AND match_score IS NOT NULL
		 ORDER BY match_score DESC, created_at ASC
		 LIMIT $3`,
		jobID, string(candidate.StatusApplied), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func (r *PostgresCandidateRepository) SaveProfile(ctx context.Context, id uuid.UUID, p profile.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx, `UPDATE candidates SET profile = $2 WHERE id = $1`, id, b)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) SetMatchScore(ctx context.Context, id uuid.UUID, score int, rationale string) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE candidates SET match_score = $2, match_rationale = $3
		 WHERE id = $1 AND match_score IS NULL`,
		id, score, rationale,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresCandidateRepository) MarkInvited(ctx context.Context, id, interviewID uuid.UUID, invitedAt time.Time) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE candidates SET status = $2, interview_id = $3, invited_at = $4
		 WHERE id = $1 AND status = $5`,
		id, string(candidate.StatusInvited), interviewID, invitedAt.UTC(), string(candidate.StatusApplied),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresCandidateRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to candidate.Status) (bool, error) {
	if !from.CanTransition(to) {
		return false, nil
	}
	n, err := r.db.Exec(ctx,
		`UPDATE candidates SET status = $2 WHERE id = $1 AND status = $3`,
		id, string(to), string(from),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type candidateScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(s candidateScanner) (candidate.Candidate, error) {
	var c candidate.Candidate
	var status string
	var profileRaw []byte
	err := s.Scan(
		&c.ID, &c.JobID, &c.UserID, &c.FullName, &c.Email, &c.ResumeText,
		&profileRaw, &status, &c.MatchScore, &c.MatchRationale,
		&c.InterviewID, &c.InvitedAt, &c.CreatedAt,
	)
	if err != nil {
		return candidate.Candidate{}, err
	}
	c.Status = candidate.Status(status)
	if len(profileRaw) > 0 {
		var p profile.Profile
		if err := json.Unmarshal(profileRaw, &p); err != nil {
			return candidate.Candidate{}, err
		}
		c.Profile = &p
	}
	return c, nil
}

func collectCandidates(rows database.Rows) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ CandidateRepository = (*PostgresCandidateRepository)(nil)

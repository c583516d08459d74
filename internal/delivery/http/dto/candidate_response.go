package dto

import (
	"time"

	"github.com/google/uuid"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/profile"
)

type CandidateResponse struct {
	ID          uuid.UUID        `json:"id"`
	JobID       uuid.UUID        `json:"job_id"`
	FullName    string           `json:"full_name"`
	Email       string           `json:"email"`
	Status      string           `json:"status"`
	MatchScore  *int             `json:"match_score"`
	InterviewID *uuid.UUID       `json:"interview_id,omitempty"`
	InvitedAt   *time.Time       `json:"invited_at,omitempty"`
	Profile     *profile.Profile `json:"profile,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func FromCandidate(c candidate.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		JobID:       c.JobID,
		FullName:    c.FullName,
		Email:       c.Email,
		Status:      string(c.Status),
		MatchScore:  c.MatchScore,
		InterviewID: c.InterviewID,
		InvitedAt:   c.InvitedAt,
		Profile:     c.Profile,
		CreatedAt:   c.CreatedAt,
	}
}

func FromCandidates(cs []candidate.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCandidate(c))
	}
	return out
}

package interview

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// transitions: pending -> active -> completed, with expiry reachable from
// both pending (token never consumed) and active (session timeout).
var transitions = map[Status][]Status{
	StatusPending:   {StatusActive, StatusExpired},
	StatusActive:    {StatusCompleted, StatusExpired},
	StatusCompleted: {},
	StatusExpired:   {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Interview is 1:1 with the candidate that owns it, created at invitation
// time.
type Interview struct {
	ID          uuid.UUID
	CandidateID uuid.UUID
	Status      Status
	StartedAt   *time.Time
	CompletedAt *time.Time
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// AssessmentToken authorizes exactly one session start. Only the sha-256 hash
// of the raw value is stored.
type AssessmentToken struct {
	ID          uuid.UUID
	InterviewID uuid.UUID
	TokenHash   string
	ExpiresAt   time.Time
	Consumed    bool
	ConsumedAt  *time.Time
}

func (t AssessmentToken) ExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Question ordinals start at 0 and define presentation order.
type Question struct {
	ID          uuid.UUID
	InterviewID uuid.UUID
	Ordinal     int
	Prompt      string
}

// Response is write-once per (interview, question index).
type Response struct {
	ID            uuid.UUID
	InterviewID   uuid.UUID
	QuestionIndex int
	Answer        string
	SubmittedAt   time.Time
}

// Scorecard is the derived evaluation artifact for a completed interview.
type Scorecard struct {
	ID           uuid.UUID
	InterviewID  uuid.UUID
	Criteria     []CriterionScore
	OverallScore int
	Verdict      string
	CreatedAt    time.Time
}

type CriterionScore struct {
	QuestionIndex int    `json:"question_index"`
	Score         int    `json:"score"`
	Feedback      string `json:"feedback"`
}

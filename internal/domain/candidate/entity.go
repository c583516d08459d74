package candidate

import (
	"time"

	"github.com/google/uuid"

	"hireflow/internal/domain/profile"
)

type Status string

const (
	StatusApplied      Status = "applied"
	StatusInvited      Status = "invited"
	StatusInterviewing Status = "interviewing"
	StatusCompleted    Status = "completed"
	StatusHired        Status = "hired"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// transitions is the forward path applied -> invited -> interviewing ->
// completed -> hired/rejected. Rejection and withdrawal are absorbing and
// reachable only early in the funnel.
var transitions = map[Status][]Status{
	StatusApplied:      {StatusInvited, StatusRejected, StatusWithdrawn},
	StatusInvited:      {StatusInterviewing, StatusRejected, StatusWithdrawn},
	StatusInterviewing: {StatusCompleted},
	StatusCompleted:    {StatusHired, StatusRejected},
	StatusHired:        {},
	StatusRejected:     {},
	StatusWithdrawn:    {},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Candidate is one application of a user to one job. A user may hold
// candidate records across several jobs.
type Candidate struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	UserID         uuid.UUID
	FullName       string
	Email          string
	ResumeText     string
	Profile        *profile.Profile
	Status         Status
	MatchScore     *int
	MatchRationale *string
	InterviewID    *uuid.UUID
	InvitedAt      *time.Time
	CreatedAt      time.Time
}

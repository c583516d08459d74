package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type InviteBatchEvent struct {
	Type      string    `json:"type"`
	JobID     uuid.UUID `json:"job_id"`
	Invited   int       `json:"invited"`
	Failed    int       `json:"failed"`
	Timestamp string    `json:"timestamp"`
}

type InterviewCompletedEvent struct {
	Type        string    `json:"type"`
	InterviewID uuid.UUID `json:"interview_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Timestamp   string    `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyInviteBatch(jobID uuid.UUID, invited, failed int) {
	h := defaultHub.Load()
	if h == nil || jobID == uuid.Nil {
		return
	}

	b, err := json.Marshal(InviteBatchEvent{
		Type:      "invite_batch_finished",
		JobID:     jobID,
		Invited:   invited,
		Failed:    failed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyInterviewCompleted(interviewID, candidateID uuid.UUID) {
	h := defaultHub.Load()
	if h == nil || interviewID == uuid.Nil {
		return
	}

	b, err := json.Marshal(InterviewCompletedEvent{
		Type:        "interview_completed",
		InterviewID: interviewID,
		CandidateID: candidateID,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}

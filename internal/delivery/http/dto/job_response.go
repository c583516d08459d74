package dto

import (
	"time"

	"github.com/google/uuid"

	"hireflow/internal/domain/job"
)

type JobResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Level        string    `json:"level"`
	Department   string    `json:"department"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromJob(j job.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		Level:        string(j.Level),
		Department:   j.Department,
		IsActive:     j.IsActive,
		CreatedAt:    j.CreatedAt,
	}
}

func FromJobs(js []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(js))
	for _, j := range js {
		out = append(out, FromJob(j))
	}
	return out
}

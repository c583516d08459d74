package dto

import (
	"time"

	"github.com/google/uuid"

	"hireflow/internal/domain/interview"
)

type ScorecardResponse struct {
	InterviewID  uuid.UUID                `json:"interview_id"`
	Criteria     []CriterionScoreResponse `json:"criteria"`
	OverallScore int                      `json:"overall_score"`
	Verdict      string                   `json:"verdict"`
	CreatedAt    time.Time                `json:"created_at"`
}

type CriterionScoreResponse struct {
	QuestionIndex int    `json:"question_index"`
	Score         int    `json:"score"`
	Feedback      string `json:"feedback"`
}

func FromScorecard(sc interview.Scorecard) ScorecardResponse {
	out := ScorecardResponse{
		InterviewID:  sc.InterviewID,
		Criteria:     make([]CriterionScoreResponse, 0, len(sc.Criteria)),
		OverallScore: sc.OverallScore,
		Verdict:      sc.Verdict,
		CreatedAt:    sc.CreatedAt,
	}
	for _, cr := range sc.Criteria {
		out.Criteria = append(out.Criteria, CriterionScoreResponse{
			QuestionIndex: cr.QuestionIndex,
			Score:         cr.Score,
			Feedback:      cr.Feedback,
		})
	}
	return out
}

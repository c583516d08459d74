// Package ai defines the capability interfaces the pipeline uses to talk to
// a generative model, plus the error taxonomy callers branch on. The Gemini
// implementation lives in ai/gemini; tests substitute fakes.
package ai

import (
	"context"

	"hireflow/internal/domain/interview"
	"hireflow/internal/domain/job"
	"hireflow/internal/domain/profile"
)

// ProfileExtractor turns raw resume text into a structured profile.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, resumeText string) (profile.Profile, error)
}

// ScoreAdjuster proposes a bounded correction to a deterministic base score.
// Implementations return the signed delta before clamping; the caller owns
// the bound.
type ScoreAdjuster interface {
	AdjustScore(ctx context.Context, p profile.Profile, j job.Job, baseScore int) (delta int, rationale string, err error)
}

// QuestionGenerator produces an ordered interview question set for a job.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, j job.Job, count int) ([]string, error)
}

// ResponseGrader scores collected interview responses into a scorecard.
type ResponseGrader interface {
	GradeResponses(ctx context.Context, j job.Job, questions []interview.Question, responses []interview.Response) (GradeResult, error)
}

type GradeResult struct {
	Criteria     []interview.CriterionScore
	OverallScore int
	Verdict      string
}

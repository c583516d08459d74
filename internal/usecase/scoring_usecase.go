package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/config"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/job"
	"hireflow/internal/domain/profile"
	"hireflow/internal/domain/scoring"
	"hireflow/internal/repository"
)

type ScoringUsecase interface {
	// ScoreProfile computes a match score for a profile against a job
	// without touching storage.
	ScoreProfile(ctx context.Context, p profile.Profile, j job.Job) (ScoreBreakdown, error)

	// ScoreCandidate computes and persists the candidate's match score.
	// Scoring is set-once: a candidate that already carries a score keeps
	// it and the stored value is returned.
	ScoreCandidate(ctx context.Context, candidateID uuid.UUID) (ScoreBreakdown, error)
}

// ScoreBreakdown is the full scoring outcome: the deterministic base, the
// applied correction and the final value.
type ScoreBreakdown struct {
	Score     int      `json:"score"`
	BaseScore int      `json:"base_score"`
	Delta     int      `json:"delta"`
	Matched   []string `json:"matched_requirements"`
	Missing   []string `json:"missing_requirements"`
	Rationale string   `json:"rationale"`
}

type Scoring struct {
	adjuster   ai.ScoreAdjuster
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	weights    scoring.Weights
	bound      int
	logger     *zap.Logger
}

func NewScoringUsecase(adjuster ai.ScoreAdjuster, candidates repository.CandidateRepository, jobs repository.JobRepository, cfg config.ScoringConfig, logger *zap.Logger) *Scoring {
	w := scoring.Weights{Skill: cfg.SkillWeight, Seniority: cfg.SeniorityWeight}
	if w.Skill == 0 && w.Seniority == 0 {
		w = scoring.DefaultWeights()
	}
	return &Scoring{
		adjuster:   adjuster,
		candidates: candidates,
		jobs:       jobs,
		weights:    w,
		bound:      cfg.CorrectionBound,
		logger:     logger,
	}
}

func (u *Scoring) ScoreProfile(ctx context.Context, p profile.Profile, j job.Job) (ScoreBreakdown, error) {
	base := scoring.Score(p, j, u.weights)
	out := ScoreBreakdown{
		Score:     base.Score,
		BaseScore: base.Score,
		Matched:   base.Matched,
		Missing:   base.Missing,
		Rationale: base.Rationale,
	}

	// The AI correction is strictly bounded and strictly optional: any
	// failure leaves the deterministic score standing.
	if u.adjuster == nil || u.bound <= 0 {
		return out, nil
	}

	delta, rationale, err := u.adjuster.AdjustScore(ctx, p, j, base.Score)
	if err != nil {
		u.logger.Warn("score correction unavailable, keeping base score",
			zap.Bool("transient", ai.IsTransient(err)),
			zap.Error(err))
		return out, nil
	}

	delta = clampDelta(delta, u.bound)
	out.Delta = delta
	out.Score = clampScoreRange(base.Score + delta)
	if rationale != "" {
		out.Rationale = fmt.Sprintf("%s %s", base.Rationale, rationale)
	}
	return out, nil
}

func (u *Scoring) ScoreCandidate(ctx context.Context, candidateID uuid.UUID) (ScoreBreakdown, error) {
	if candidateID == uuid.Nil {
		return ScoreBreakdown{}, ErrInvalidInput
	}

	c, err := u.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ScoreBreakdown{}, ErrCandidateNotFound
		}
		return ScoreBreakdown{}, err
	}
	if c.MatchScore != nil {
		return storedBreakdown(c), nil
	}
	if c.Profile == nil {
		return ScoreBreakdown{}, ErrProfileMissing
	}

	j, err := u.jobs.FindByID(ctx, c.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ScoreBreakdown{}, ErrJobNotFound
		}
		return ScoreBreakdown{}, err
	}

	out, err := u.ScoreProfile(ctx, *c.Profile, j)
	if err != nil {
		return ScoreBreakdown{}, err
	}

	wrote, err := u.candidates.SetMatchScore(ctx, candidateID, out.Score, out.Rationale)
	if err != nil {
		return ScoreBreakdown{}, err
	}
	if !wrote {
		// Lost a concurrent race; the first writer's score is canonical.
		c, err = u.candidates.FindByID(ctx, candidateID)
		if err != nil {
			return ScoreBreakdown{}, err
		}
		if c.MatchScore == nil {
			return ScoreBreakdown{}, ErrInternal
		}
		return storedBreakdown(c), nil
	}

	u.logger.Info("candidate scored",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("score", out.Score),
		zap.Int("base_score", out.BaseScore),
		zap.Int("delta", out.Delta))
	return out, nil
}

func storedBreakdown(c candidate.Candidate) ScoreBreakdown {
	out := ScoreBreakdown{Score: *c.MatchScore, BaseScore: *c.MatchScore}
	if c.MatchRationale != nil {
		out.Rationale = *c.MatchRationale
	}
	return out
}

func clampDelta(delta, bound int) int {
	if delta > bound {
		return bound
	}
	if delta < -bound {
		return -bound
	}
	return delta
}

func clampScoreRange(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

var _ ScoringUsecase = (*Scoring)(nil)

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/domain/candidate"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/repository"
)

// shortlistTTL keeps ranked shortlists fresh enough that newly scored
// candidates show up quickly.
const shortlistTTL = 30 * time.Second

const maxShortlistSize = 100

type RankingUsecase interface {
	// RankCandidates returns up to n eligible candidates for the job,
	// highest match score first, earliest application breaking ties. An
	// empty shortlist is a valid result.
	RankCandidates(ctx context.Context, jobID uuid.UUID, n int) ([]RankedCandidate, error)
}

type RankedCandidate struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	MatchScore  int       `json:"match_score"`
	AppliedAt   time.Time `json:"applied_at"`
}

type Ranking struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	cache      *cache.Redis
	logger     *zap.Logger
}

func NewRankingUsecase(candidates repository.CandidateRepository, jobs repository.JobRepository, c *cache.Redis, logger *zap.Logger) *Ranking {
	return &Ranking{candidates: candidates, jobs: jobs, cache: c, logger: logger}
}

func shortlistCacheKey(jobID uuid.UUID, n int) string {
	return fmt.Sprintf("shortlist:%s:%d", jobID, n)
}

func (u *Ranking) RankCandidates(ctx context.Context, jobID uuid.UUID, n int) ([]RankedCandidate, error) {
	if jobID == uuid.Nil || n <= 0 || n > maxShortlistSize {
		return nil, ErrInvalidInput
	}

	key := shortlistCacheKey(jobID, n)
	var cached []RankedCandidate
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	eligible, err := u.candidates.ListEligible(ctx, jobID, n)
	if err != nil {
		return nil, err
	}

	out := make([]RankedCandidate, 0, len(eligible))
	for _, c := range eligible {
		out = append(out, toRanked(c))
	}

	if err := u.cache.SetJSON(ctx, key, out, shortlistTTL); err != nil {
		u.logger.Debug("shortlist cache write failed", zap.Error(err))
	}
	return out, nil
}

func toRanked(c candidate.Candidate) RankedCandidate {
	r := RankedCandidate{
		CandidateID: c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		AppliedAt:   c.CreatedAt,
	}
	if c.MatchScore != nil {
		r.MatchScore = *c.MatchScore
	}
	return r
}

var _ RankingUsecase = (*Ranking)(nil)

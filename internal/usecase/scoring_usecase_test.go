package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/config"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/job"
	"hireflow/internal/domain/profile"
)

func scoringCfg(bound int) config.ScoringConfig {
	return config.ScoringConfig{SkillWeight: 0.6, SeniorityWeight: 0.4, CorrectionBound: bound}
}

func scoringFixture() (profile.Profile, job.Job) {
	p := profile.Profile{
		Skills:    []string{"Go", "PostgreSQL", "Redis"},
		Positions: []profile.Position{{Title: "Engineer", Company: "Acme", Months: 48}},
	}
	j := job.Job{
		ID:           uuid.New(),
		Title:        "Backend Engineer",
		Requirements: []string{"Go", "PostgreSQL", "Redis"},
		Level:        job.LevelMid,
	}
	return p, j
}

func TestScoring_DeltaClampedToBound(t *testing.T) {
	p, j := scoringFixture()
	uc := NewScoringUsecase(&fakeAdjuster{delta: -40, rationale: "weak depth"}, newFakeCandidateRepo(), newFakeJobRepo(j), scoringCfg(10), zap.NewNop())

	out, err := uc.ScoreProfile(context.Background(), p, j)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.BaseScore != 100 {
		t.Fatalf("expected base 100, got %d", out.BaseScore)
	}
	if out.Delta != -10 {
		t.Fatalf("expected delta clamped to -10, got %d", out.Delta)
	}
	if out.Score != 90 {
		t.Fatalf("expected 90, got %d", out.Score)
	}
}

func TestScoring_AdjusterFailureKeepsBase(t *testing.T) {
	p, j := scoringFixture()
	adj := &fakeAdjuster{err: ai.Transient("adjust_score", errors.New("timeout"))}
	uc := NewScoringUsecase(adj, newFakeCandidateRepo(), newFakeJobRepo(j), scoringCfg(10), zap.NewNop())

	out, err := uc.ScoreProfile(context.Background(), p, j)
	if err != nil {
		t.Fatalf("correction failure must not fail scoring: %v", err)
	}
	if out.Score != out.BaseScore || out.Delta != 0 {
		t.Fatalf("expected base score kept, got %+v", out)
	}
}

func TestScoring_NoAdjusterConfigured(t *testing.T) {
	p, j := scoringFixture()
	uc := NewScoringUsecase(nil, newFakeCandidateRepo(), newFakeJobRepo(j), scoringCfg(10), zap.NewNop())

	out, err := uc.ScoreProfile(context.Background(), p, j)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Score != out.BaseScore {
		t.Fatalf("expected deterministic score only, got %+v", out)
	}
}

func TestScoring_ScoreNeverLeavesRange(t *testing.T) {
	p, j := scoringFixture()
	uc := NewScoringUsecase(&fakeAdjuster{delta: 10}, newFakeCandidateRepo(), newFakeJobRepo(j), scoringCfg(10), zap.NewNop())

	out, err := uc.ScoreProfile(context.Background(), p, j)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Score > 100 {
		t.Fatalf("score above 100: %d", out.Score)
	}
}

func TestScoring_ScoreCandidatePersists(t *testing.T) {
	p, j := scoringFixture()
	candidates := newFakeCandidateRepo()
	id := uuid.New()
	candidates.put(candidate.Candidate{ID: id, JobID: j.ID, Status: candidate.StatusApplied, Profile: &p})

	uc := NewScoringUsecase(nil, candidates, newFakeJobRepo(j), scoringCfg(10), zap.NewNop())
	out, err := uc.ScoreCandidate(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got, ok := candidates.savedScores[id]; !ok || got != out.Score {
		t.Fatalf("score not persisted: %v (want %d)", candidates.savedScores, out.Score)
	}
}

func TestScoring_ScoreCandidateIsSetOnce(t *testing.T) {
	p, j := scoringFixture()
	candidates := newFakeCandidateRepo()
	id := uuid.New()
	existing := 42
	candidates.put(candidate.Candidate{ID: id, JobID: j.ID, Status: candidate.StatusApplied, Profile: &p, MatchScore: &existing})

	// Adjuster would change the result; the stored score must win.
	uc := NewScoringUsecase(&fakeAdjuster{delta: 10}, candidates, newFakeJobRepo(j), scoringCfg(10), zap.NewNop())
	out, err := uc.ScoreCandidate(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Score != existing {
		t.Fatalf("expected stored score %d, got %d", existing, out.Score)
	}
}

func TestScoring_ProfileMissing(t *testing.T) {
	_, j := scoringFixture()
	candidates := newFakeCandidateRepo()
	id := uuid.New()
	candidates.put(candidate.Candidate{ID: id, JobID: j.ID, Status: candidate.StatusApplied})

	uc := NewScoringUsecase(nil, candidates, newFakeJobRepo(j), scoringCfg(10), zap.NewNop())
	_, err := uc.ScoreCandidate(context.Background(), id)
	if !errors.Is(err, ErrProfileMissing) {
		t.Fatalf("expected ErrProfileMissing, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/config"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/job"
)

func inviteCfg() config.InviteConfig {
	return config.InviteConfig{TokenTTL: 72 * time.Hour, QuestionCount: 5, Workers: 4}
}

func notifCfg() config.NotificationConfig {
	return config.NotificationConfig{AssessmentBase: "https://assess.hireflow.dev"}
}

func inviteFixture(scores ...int) (*fakeCandidateRepo, job.Job) {
	j := job.Job{
		ID:           uuid.New(),
		Title:        "Backend Engineer",
		Requirements: []string{"Go", "PostgreSQL", "Redis"},
		Level:        job.LevelMid,
	}
	candidates := newFakeCandidateRepo()
	base := time.Now().UTC()
	for i, score := range scores {
		s := score
		c := candidate.Candidate{
			ID:         uuid.New(),
			JobID:      j.ID,
			FullName:   string(rune('A' + i)),
			Email:      string(rune('a'+i)) + "@example.com",
			Status:     candidate.StatusApplied,
			MatchScore: &s,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		candidates.put(c)
		candidates.eligible = append(candidates.eligible, c)
	}
	return candidates, j
}

func newInviteUC(candidates *fakeCandidateRepo, interviews *fakeInterviewRepo, j job.Job, gen *fakeQuestionGen, notifier *fakeNotifier) *Invitation {
	return NewInvitationUsecase(gen, candidates, interviews, newFakeJobRepo(j), notifier, nil, inviteCfg(), notifCfg(), zap.NewNop())
}

func TestInvitation_InvitesTopN(t *testing.T) {
	candidates, j := inviteFixture(92, 88, 75, 60, 40)
	interviews := newFakeInterviewRepo()
	notifier := newFakeNotifier()
	uc := newInviteUC(candidates, interviews, j, &fakeQuestionGen{questions: []string{"q1", "q2", "q3", "q4", "q5"}}, notifier)

	summary, err := uc.InviteTopCandidates(context.Background(), j.ID, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.CandidatesFound != 3 || summary.Invited != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(interviews.created) != 3 {
		t.Fatalf("expected 3 interviews, got %d", len(interviews.created))
	}
	if len(interviews.createdTokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(interviews.createdTokens))
	}
	if len(notifier.sent) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifier.sent))
	}

	// Shortlist order survives concurrent completion.
	wantScores := []int{92, 88, 75}
	for i, r := range summary.Results {
		if r.MatchScore != wantScores[i] {
			t.Fatalf("result %d: expected score %d, got %d", i, wantScores[i], r.MatchScore)
		}
		if !r.Invited || r.InterviewID == nil {
			t.Fatalf("result %d not invited: %+v", i, r)
		}
	}
}

func TestInvitation_FewerCandidatesThanRequested(t *testing.T) {
	candidates, j := inviteFixture(80, 70)
	uc := newInviteUC(candidates, newFakeInterviewRepo(), j, &fakeQuestionGen{questions: []string{"q1"}}, newFakeNotifier())

	summary, err := uc.InviteTopCandidates(context.Background(), j.ID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.CandidatesFound != 2 || summary.Invited != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestInvitation_NotifyFailureIsolatedToOneCandidate(t *testing.T) {
	candidates, j := inviteFixture(92, 88, 75)
	notifier := newFakeNotifier()
	notifier.failFor["b@example.com"] = true
	uc := newInviteUC(candidates, newFakeInterviewRepo(), j, &fakeQuestionGen{questions: []string{"q1"}}, notifier)

	summary, err := uc.InviteTopCandidates(context.Background(), j.ID, 3)
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}
	if summary.Invited != 2 || summary.Failed != 1 {
		t.Fatalf("expected 2 invited / 1 failed, got %+v", summary)
	}
	var failed *InviteResult
	for i := range summary.Results {
		if !summary.Results[i].Invited {
			failed = &summary.Results[i]
		}
	}
	if failed == nil || failed.Email != "b@example.com" || failed.Error == "" {
		t.Fatalf("expected failure recorded for b@example.com, got %+v", summary.Results)
	}
}

func TestInvitation_QuestionGeneratorFallback(t *testing.T) {
	candidates, j := inviteFixture(90)
	interviews := newFakeInterviewRepo()
	gen := &fakeQuestionGen{err: ai.Transient("generate_questions", errors.New("overloaded"))}
	uc := newInviteUC(candidates, interviews, j, gen, newFakeNotifier())

	summary, err := uc.InviteTopCandidates(context.Background(), j.ID, 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Invited != 1 {
		t.Fatalf("expected invite to proceed on fallback questions, got %+v", summary)
	}

	qs, _ := interviews.ListQuestions(context.Background(), interviews.created[0].ID)
	if len(qs) != inviteCfg().QuestionCount {
		t.Fatalf("expected %d fallback questions, got %d", inviteCfg().QuestionCount, len(qs))
	}
}

func TestInvitation_AlreadyInvitedCandidateFails(t *testing.T) {
	candidates, j := inviteFixture(90, 80)
	// First candidate was claimed by a concurrent batch.
	first := candidates.eligible[0]
	first.Status = candidate.StatusInvited
	candidates.put(first)

	uc := newInviteUC(candidates, newFakeInterviewRepo(), j, &fakeQuestionGen{questions: []string{"q1"}}, newFakeNotifier())
	summary, err := uc.InviteTopCandidates(context.Background(), j.ID, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Invited != 1 || summary.Failed != 1 {
		t.Fatalf("expected 1 invited / 1 failed, got %+v", summary)
	}
}

func TestInvitation_EmptyShortlist(t *testing.T) {
	candidates, j := inviteFixture()
	uc := newInviteUC(candidates, newFakeInterviewRepo(), j, &fakeQuestionGen{questions: []string{"q1"}}, newFakeNotifier())

	summary, err := uc.InviteTopCandidates(context.Background(), j.ID, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.CandidatesFound != 0 || len(summary.Results) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestInvitation_JobNotFound(t *testing.T) {
	candidates, _ := inviteFixture(90)
	uc := NewInvitationUsecase(&fakeQuestionGen{}, candidates, newFakeInterviewRepo(), newFakeJobRepo(), newFakeNotifier(), nil, inviteCfg(), notifCfg(), zap.NewNop())

	_, err := uc.InviteTopCandidates(context.Background(), uuid.New(), 3)
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

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
	"hireflow/internal/domain/interview"
	"hireflow/internal/domain/job"
	"hireflow/internal/repository"
)

type sessionFixture struct {
	uc          *Session
	interviews  *fakeInterviewRepo
	responses   *fakeResponseRepo
	evaluations *fakeEvaluationRepo
	candidates  *fakeCandidateRepo
	grader      *fakeGrader

	job         job.Job
	candidateID uuid.UUID
	interviewID uuid.UUID
}

func newSessionFixture(status interview.Status, prompts ...string) *sessionFixture {
	f := &sessionFixture{
		interviews:  newFakeInterviewRepo(),
		responses:   newFakeResponseRepo(),
		evaluations: newFakeEvaluationRepo(),
		candidates:  newFakeCandidateRepo(),
		grader: &fakeGrader{result: ai.GradeResult{
			Criteria:     []interview.CriterionScore{{QuestionIndex: 0, Score: 80, Feedback: "solid"}},
			OverallScore: 80,
			Verdict:      "hire",
		}},
	}

	f.job = job.Job{ID: uuid.New(), Title: "Backend Engineer", Requirements: []string{"Go"}}
	f.candidateID = uuid.New()
	f.interviewID = uuid.New()

	candStatus := candidate.StatusInvited
	if status == interview.StatusActive {
		candStatus = candidate.StatusInterviewing
	}
	f.candidates.put(candidate.Candidate{ID: f.candidateID, JobID: f.job.ID, Status: candStatus})

	iv := interview.Interview{ID: f.interviewID, CandidateID: f.candidateID, Status: status, CreatedAt: time.Now().UTC()}
	if status == interview.StatusActive {
		started := time.Now().UTC().Add(-time.Minute)
		iv.StartedAt = &started
	}
	f.interviews.put(iv, prompts...)
	f.interviews.consumeID = f.interviewID

	f.uc = NewSessionUsecase(
		f.grader, f.interviews, f.responses, f.evaluations,
		f.candidates, newFakeJobRepo(f.job),
		config.SessionConfig{Timeout: 2 * time.Hour}, zap.NewNop(),
	)
	return f
}

func TestSession_StartActivatesInterview(t *testing.T) {
	f := newSessionFixture(interview.StatusPending, "q1", "q2")

	view, err := f.uc.StartSession(context.Background(), "rawtoken")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.InterviewID != f.interviewID {
		t.Fatalf("unexpected interview id")
	}
	if len(view.Questions) != 2 || view.Questions[0].Index != 0 || view.Questions[0].Prompt != "q1" {
		t.Fatalf("unexpected questions: %+v", view.Questions)
	}

	iv, _ := f.interviews.FindByID(context.Background(), f.interviewID)
	if iv.Status != interview.StatusActive {
		t.Fatalf("expected active, got %s", iv.Status)
	}
	c, _ := f.candidates.FindByID(context.Background(), f.candidateID)
	if c.Status != candidate.StatusInterviewing {
		t.Fatalf("expected candidate interviewing, got %s", c.Status)
	}
}

func TestSession_StartMapsTokenErrors(t *testing.T) {
	cases := []struct {
		repoErr error
		want    error
	}{
		{repository.ErrTokenNotFound, ErrInvalidToken},
		{repository.ErrTokenConsumed, ErrTokenAlreadyUsed},
		{repository.ErrTokenExpired, ErrTokenExpired},
	}
	for _, tc := range cases {
		f := newSessionFixture(interview.StatusPending, "q1")
		f.interviews.consumeErr = tc.repoErr
		if _, err := f.uc.StartSession(context.Background(), "rawtoken"); !errors.Is(err, tc.want) {
			t.Fatalf("%v: expected %v, got %v", tc.repoErr, tc.want, err)
		}
	}
}

func TestSession_ExpiredTokenExpiresInterview(t *testing.T) {
	f := newSessionFixture(interview.StatusPending, "q1")
	f.interviews.consumeErr = repository.ErrTokenExpired

	if _, err := f.uc.StartSession(context.Background(), "rawtoken"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	iv, _ := f.interviews.FindByID(context.Background(), f.interviewID)
	if iv.Status != interview.StatusExpired {
		t.Fatalf("expected interview expired, got %s", iv.Status)
	}
}

func TestSession_SubmitOnPendingInterview(t *testing.T) {
	f := newSessionFixture(interview.StatusPending, "q1")
	_, err := f.uc.SubmitResponse(context.Background(), f.interviewID, 0, "answer")
	if !errors.Is(err, ErrInterviewNotActive) {
		t.Fatalf("expected ErrInterviewNotActive, got %v", err)
	}
}

func TestSession_SubmitDuplicateResponse(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1", "q2")

	if _, err := f.uc.SubmitResponse(context.Background(), f.interviewID, 0, "first"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := f.uc.SubmitResponse(context.Background(), f.interviewID, 0, "second")
	if !errors.Is(err, ErrDuplicateResponse) {
		t.Fatalf("expected ErrDuplicateResponse, got %v", err)
	}
	// First answer stands.
	got, _ := f.responses.ListByInterview(context.Background(), f.interviewID)
	if len(got) != 1 || got[0].Answer != "first" {
		t.Fatalf("first answer must survive: %+v", got)
	}
}

func TestSession_SubmitInvalidIndex(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1")
	if _, err := f.uc.SubmitResponse(context.Background(), f.interviewID, 5, "answer"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.uc.SubmitResponse(context.Background(), f.interviewID, -1, "answer"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSession_SubmitAfterTimeoutExpires(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1")
	started := time.Now().UTC().Add(-3 * time.Hour)
	iv, _ := f.interviews.FindByID(context.Background(), f.interviewID)
	iv.StartedAt = &started
	f.interviews.put(iv, "q1")

	_, err := f.uc.SubmitResponse(context.Background(), f.interviewID, 0, "answer")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	iv, _ = f.interviews.FindByID(context.Background(), f.interviewID)
	if iv.Status != interview.StatusExpired {
		t.Fatalf("expected interview expired, got %s", iv.Status)
	}
}

func TestSession_LastAnswerAutoFinalizes(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1", "q2")

	if _, err := f.uc.SubmitResponse(context.Background(), f.interviewID, 0, "a1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	res, err := f.uc.SubmitResponse(context.Background(), f.interviewID, 1, "a2")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Finalized {
		t.Fatalf("expected auto-finalize, got %+v", res)
	}

	iv, _ := f.interviews.FindByID(context.Background(), f.interviewID)
	if iv.Status != interview.StatusCompleted {
		t.Fatalf("expected completed, got %s", iv.Status)
	}
	if _, err := f.evaluations.FindByInterview(context.Background(), f.interviewID); err != nil {
		t.Fatalf("expected scorecard stored: %v", err)
	}
}

func TestSession_FinalizeGradingFailureKeepsCompleted(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1")
	f.grader.err = ai.Transient("grade_responses", errors.New("overloaded"))

	_, err := f.uc.FinalizeSession(context.Background(), f.interviewID)
	if !errors.Is(err, ErrEvaluationFailed) {
		t.Fatalf("expected ErrEvaluationFailed, got %v", err)
	}
	iv, _ := f.interviews.FindByID(context.Background(), f.interviewID)
	if iv.Status != interview.StatusCompleted {
		t.Fatalf("grading failure must not roll back completion, got %s", iv.Status)
	}
}

func TestSession_EvaluateRetryAfterFailure(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1")
	f.grader.err = ai.Transient("grade_responses", errors.New("overloaded"))

	if _, err := f.uc.FinalizeSession(context.Background(), f.interviewID); !errors.Is(err, ErrEvaluationFailed) {
		t.Fatalf("expected ErrEvaluationFailed, got %v", err)
	}

	f.grader.err = nil
	sc, err := f.uc.EvaluateInterview(context.Background(), f.interviewID)
	if err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if sc.OverallScore != 80 || sc.Verdict != "hire" {
		t.Fatalf("unexpected scorecard: %+v", sc)
	}
}

func TestSession_EvaluateRequiresCompleted(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1")
	_, err := f.uc.EvaluateInterview(context.Background(), f.interviewID)
	if !errors.Is(err, ErrInterviewNotActive) {
		t.Fatalf("expected ErrInterviewNotActive, got %v", err)
	}
}

func TestSession_GetScorecard(t *testing.T) {
	f := newSessionFixture(interview.StatusActive, "q1")

	if _, err := f.uc.GetScorecard(context.Background(), f.interviewID); !errors.Is(err, ErrScorecardNotFound) {
		t.Fatalf("expected ErrScorecardNotFound, got %v", err)
	}

	if _, err := f.uc.FinalizeSession(context.Background(), f.interviewID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	sc, err := f.uc.GetScorecard(context.Background(), f.interviewID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sc.InterviewID != f.interviewID {
		t.Fatalf("unexpected scorecard: %+v", sc)
	}
}

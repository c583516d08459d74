package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/config"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/interview"
	"hireflow/internal/pkg/token"
	"hireflow/internal/repository"
	"hireflow/internal/ws"
)

type SessionUsecase interface {
	// StartSession redeems a single-use assessment token and activates the
	// interview it authorizes. A token redeems exactly once; replays fail.
	StartSession(ctx context.Context, rawToken string) (SessionView, error)

	// SubmitResponse records a write-once answer for one question. The
	// session auto-finalizes once every question is answered.
	SubmitResponse(ctx context.Context, interviewID uuid.UUID, questionIndex int, answer string) (SubmitResult, error)

	// FinalizeSession completes an active interview and triggers scorecard
	// evaluation. A grading failure leaves the interview completed.
	FinalizeSession(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error)

	// EvaluateInterview (re)grades a completed interview's responses.
	EvaluateInterview(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error)

	GetScorecard(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error)
}

type SessionView struct {
	InterviewID uuid.UUID      `json:"interview_id"`
	Questions   []QuestionView `json:"questions"`
	StartedAt   time.Time      `json:"started_at"`
	Deadline    time.Time      `json:"deadline"`
}

type QuestionView struct {
	Index  int    `json:"index"`
	Prompt string `json:"prompt"`
}

type SubmitResult struct {
	InterviewID   uuid.UUID `json:"interview_id"`
	QuestionIndex int       `json:"question_index"`
	Answered      int       `json:"answered"`
	Total         int       `json:"total"`
	Finalized     bool      `json:"finalized"`
}

type Session struct {
	grader      ai.ResponseGrader
	interviews  repository.InterviewRepository
	responses   repository.ResponseRepository
	evaluations repository.EvaluationRepository
	candidates  repository.CandidateRepository
	jobs        repository.JobRepository

	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewSessionUsecase(
	grader ai.ResponseGrader,
	interviews repository.InterviewRepository,
	responses repository.ResponseRepository,
	evaluations repository.EvaluationRepository,
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	cfg config.SessionConfig,
	logger *zap.Logger,
) *Session {
	return &Session{
		grader:      grader,
		interviews:  interviews,
		responses:   responses,
		evaluations: evaluations,
		candidates:  candidates,
		jobs:        jobs,
		timeout:     cfg.Timeout,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *Session) StartSession(ctx context.Context, rawToken string) (SessionView, error) {
	if rawToken == "" {
		return SessionView{}, ErrInvalidToken
	}

	now := u.now().UTC()
	ivID, err := u.interviews.ConsumeToken(ctx, token.Hash(rawToken), now)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTokenNotFound):
			return SessionView{}, ErrInvalidToken
		case errors.Is(err, repository.ErrTokenConsumed):
			return SessionView{}, ErrTokenAlreadyUsed
		case errors.Is(err, repository.ErrTokenExpired):
			u.expireInterview(ctx, ivID, now)
			return SessionView{}, ErrTokenExpired
		default:
			return SessionView{}, err
		}
	}

	moved, err := u.interviews.TransitionStatus(ctx, ivID, interview.StatusPending, interview.StatusActive, now)
	if err != nil {
		return SessionView{}, err
	}
	if !moved {
		return SessionView{}, ErrInterviewNotActive
	}

	// Candidate move is best-effort; the session is already live.
	if iv, err := u.interviews.FindByID(ctx, ivID); err == nil {
		if _, err := u.candidates.TransitionStatus(ctx, iv.CandidateID, candidate.StatusInvited, candidate.StatusInterviewing); err != nil {
			u.logger.Warn("candidate status update failed",
				zap.String("candidate_id", iv.CandidateID.String()), zap.Error(err))
		}
	}

	questions, err := u.interviews.ListQuestions(ctx, ivID)
	if err != nil {
		return SessionView{}, err
	}

	view := SessionView{
		InterviewID: ivID,
		Questions:   make([]QuestionView, 0, len(questions)),
		StartedAt:   now,
		Deadline:    now.Add(u.timeout),
	}
	for _, q := range questions {
		view.Questions = append(view.Questions, QuestionView{Index: q.Ordinal, Prompt: q.Prompt})
	}

	u.logger.Info("interview session started",
		zap.String("interview_id", ivID.String()),
		zap.Int("questions", len(questions)))
	return view, nil
}

func (u *Session) SubmitResponse(ctx context.Context, interviewID uuid.UUID, questionIndex int, answer string) (SubmitResult, error) {
	if interviewID == uuid.Nil || questionIndex < 0 || answer == "" {
		return SubmitResult{}, ErrInvalidInput
	}

	iv, err := u.interviews.FindByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SubmitResult{}, ErrInterviewNotFound
		}
		return SubmitResult{}, err
	}
	if iv.Status != interview.StatusActive {
		return SubmitResult{}, ErrInterviewNotActive
	}

	now := u.now().UTC()
	if iv.StartedAt != nil && u.timeout > 0 && now.After(iv.StartedAt.Add(u.timeout)) {
		u.expireInterview(ctx, interviewID, now)
		return SubmitResult{}, ErrSessionExpired
	}

	questions, err := u.interviews.ListQuestions(ctx, interviewID)
	if err != nil {
		return SubmitResult{}, err
	}
	if questionIndex >= len(questions) {
		return SubmitResult{}, ErrInvalidInput
	}

	inserted, err := u.responses.Insert(ctx, interview.Response{
		ID:            uuid.New(),
		InterviewID:   interviewID,
		QuestionIndex: questionIndex,
		Answer:        answer,
		SubmittedAt:   now,
	})
	if err != nil {
		return SubmitResult{}, err
	}
	if !inserted {
		return SubmitResult{}, ErrDuplicateResponse
	}

	answered, err := u.responses.CountByInterview(ctx, interviewID)
	if err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{
		InterviewID:   interviewID,
		QuestionIndex: questionIndex,
		Answered:      answered,
		Total:         len(questions),
	}

	if answered >= len(questions) {
		if _, err := u.FinalizeSession(ctx, interviewID); err != nil && !errors.Is(err, ErrEvaluationFailed) {
			u.logger.Warn("auto-finalize failed",
				zap.String("interview_id", interviewID.String()), zap.Error(err))
		} else {
			result.Finalized = true
		}
	}
	return result, nil
}

func (u *Session) FinalizeSession(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error) {
	if interviewID == uuid.Nil {
		return interview.Scorecard{}, ErrInvalidInput
	}

	now := u.now().UTC()
	moved, err := u.interviews.TransitionStatus(ctx, interviewID, interview.StatusActive, interview.StatusCompleted, now)
	if err != nil {
		return interview.Scorecard{}, err
	}
	if !moved {
		iv, err := u.interviews.FindByID(ctx, interviewID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return interview.Scorecard{}, ErrInterviewNotFound
			}
			return interview.Scorecard{}, err
		}
		if iv.Status != interview.StatusCompleted {
			return interview.Scorecard{}, ErrInterviewNotActive
		}
		// Already completed; fall through to evaluation so finalize can be
		// retried when grading failed the first time.
	}

	if iv, err := u.interviews.FindByID(ctx, interviewID); err == nil {
		if _, err := u.candidates.TransitionStatus(ctx, iv.CandidateID, candidate.StatusInterviewing, candidate.StatusCompleted); err != nil {
			u.logger.Warn("candidate status update failed",
				zap.String("candidate_id", iv.CandidateID.String()), zap.Error(err))
		}
		ws.NotifyInterviewCompleted(interviewID, iv.CandidateID)
	}

	return u.EvaluateInterview(ctx, interviewID)
}

func (u *Session) EvaluateInterview(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error) {
	if interviewID == uuid.Nil {
		return interview.Scorecard{}, ErrInvalidInput
	}
	if u.grader == nil {
		return interview.Scorecard{}, ErrEvaluationFailed
	}

	iv, err := u.interviews.FindByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return interview.Scorecard{}, ErrInterviewNotFound
		}
		return interview.Scorecard{}, err
	}
	if iv.Status != interview.StatusCompleted {
		return interview.Scorecard{}, ErrInterviewNotActive
	}

	c, err := u.candidates.FindByID(ctx, iv.CandidateID)
	if err != nil {
		return interview.Scorecard{}, err
	}
	j, err := u.jobs.FindByID(ctx, c.JobID)
	if err != nil {
		return interview.Scorecard{}, err
	}

	questions, err := u.interviews.ListQuestions(ctx, interviewID)
	if err != nil {
		return interview.Scorecard{}, err
	}
	responses, err := u.responses.ListByInterview(ctx, interviewID)
	if err != nil {
		return interview.Scorecard{}, err
	}

	grade, err := u.grader.GradeResponses(ctx, j, questions, responses)
	if err != nil {
		u.logger.Warn("scorecard evaluation failed",
			zap.String("interview_id", interviewID.String()),
			zap.Bool("transient", ai.IsTransient(err)),
			zap.Error(err))
		return interview.Scorecard{}, ErrEvaluationFailed
	}

	sc := interview.Scorecard{
		ID:           uuid.New(),
		InterviewID:  interviewID,
		Criteria:     grade.Criteria,
		OverallScore: grade.OverallScore,
		Verdict:      grade.Verdict,
		CreatedAt:    u.now().UTC(),
	}
	if err := u.evaluations.Upsert(ctx, sc); err != nil {
		return interview.Scorecard{}, err
	}

	u.logger.Info("interview evaluated",
		zap.String("interview_id", interviewID.String()),
		zap.Int("overall_score", sc.OverallScore),
		zap.String("verdict", sc.Verdict))
	return sc, nil
}

func (u *Session) GetScorecard(ctx context.Context, interviewID uuid.UUID) (interview.Scorecard, error) {
	if interviewID == uuid.Nil {
		return interview.Scorecard{}, ErrInvalidInput
	}
	sc, err := u.evaluations.FindByInterview(ctx, interviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return interview.Scorecard{}, ErrScorecardNotFound
		}
		return interview.Scorecard{}, err
	}
	return sc, nil
}

// expireInterview flips a live interview to expired. Both source states are
// tried; failures only log since expiry is advisory bookkeeping.
func (u *Session) expireInterview(ctx context.Context, interviewID uuid.UUID, now time.Time) {
	if interviewID == uuid.Nil {
		return
	}
	for _, from := range []interview.Status{interview.StatusPending, interview.StatusActive} {
		moved, err := u.interviews.TransitionStatus(ctx, interviewID, from, interview.StatusExpired, now)
		if err != nil {
			u.logger.Warn("interview expiry failed",
				zap.String("interview_id", interviewID.String()), zap.Error(err))
			return
		}
		if moved {
			return
		}
	}
}

var _ SessionUsecase = (*Session)(nil)

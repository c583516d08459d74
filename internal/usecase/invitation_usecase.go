package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/config"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/interview"
	"hireflow/internal/domain/job"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/infrastructure/notification"
	"hireflow/internal/pkg/token"
	"hireflow/internal/repository"
	"hireflow/internal/worker"
	"hireflow/internal/ws"
)

type InvitationUsecase interface {
	// InviteTopCandidates invites up to n top-ranked candidates for the
	// job. Candidates are processed in isolation: one failure never stops
	// the rest of the batch. The summary lists every processed candidate
	// in shortlist order.
	InviteTopCandidates(ctx context.Context, jobID uuid.UUID, n int) (InviteSummary, error)
}

type InviteSummary struct {
	JobID           uuid.UUID      `json:"job_id"`
	CandidatesFound int            `json:"candidates_found"`
	Invited         int            `json:"invited"`
	Failed          int            `json:"failed"`
	Results         []InviteResult `json:"results"`
}

type InviteResult struct {
	CandidateID uuid.UUID  `json:"candidate_id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	MatchScore  int        `json:"match_score"`
	InterviewID *uuid.UUID `json:"interview_id,omitempty"`
	Invited     bool       `json:"invited"`
	Error       string     `json:"error,omitempty"`
}

type Invitation struct {
	questions  ai.QuestionGenerator
	candidates repository.CandidateRepository
	interviews repository.InterviewRepository
	jobs       repository.JobRepository
	notifier   notification.Notifier
	cache      *cache.Redis

	tokenTTL       time.Duration
	questionCount  int
	workers        int
	assessmentBase string

	logger *zap.Logger
	now    func() time.Time
}

func NewInvitationUsecase(
	questions ai.QuestionGenerator,
	candidates repository.CandidateRepository,
	interviews repository.InterviewRepository,
	jobs repository.JobRepository,
	notifier notification.Notifier,
	c *cache.Redis,
	inviteCfg config.InviteConfig,
	notifCfg config.NotificationConfig,
	logger *zap.Logger,
) *Invitation {
	return &Invitation{
		questions:      questions,
		candidates:     candidates,
		interviews:     interviews,
		jobs:           jobs,
		notifier:       notifier,
		cache:          c,
		tokenTTL:       inviteCfg.TokenTTL,
		questionCount:  inviteCfg.QuestionCount,
		workers:        inviteCfg.Workers,
		assessmentBase: strings.TrimRight(notifCfg.AssessmentBase, "/"),
		logger:         logger,
		now:            time.Now,
	}
}

func (u *Invitation) InviteTopCandidates(ctx context.Context, jobID uuid.UUID, n int) (InviteSummary, error) {
	if jobID == uuid.Nil || n <= 0 || n > maxShortlistSize {
		return InviteSummary{}, ErrInvalidInput
	}

	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return InviteSummary{}, ErrJobNotFound
		}
		return InviteSummary{}, err
	}

	shortlist, err := u.candidates.ListEligible(ctx, jobID, n)
	if err != nil {
		return InviteSummary{}, err
	}

	summary := InviteSummary{
		JobID:           jobID,
		CandidatesFound: len(shortlist),
		Results:         make([]InviteResult, len(shortlist)),
	}
	if len(shortlist) == 0 {
		return summary, nil
	}

	// Results are filled by index so the summary preserves shortlist
	// order regardless of completion order.
	var mu sync.Mutex
	pool := worker.NewPool(u.workers, len(shortlist))

	// A started invitation runs to completion even if the request drops:
	// a half-invited candidate is worse than a slow response.
	batchCtx := context.WithoutCancel(ctx)

	for i, c := range shortlist {
		i, c := i, c
		pool.Submit(worker.Task{
			ID: c.ID,
			Run: func(taskCtx context.Context) error {
				res := u.inviteOne(taskCtx, j, c)
				mu.Lock()
				summary.Results[i] = res
				mu.Unlock()
				return nil
			},
		})
	}
	pool.Close()

	for range pool.Run(batchCtx) {
	}

	for _, r := range summary.Results {
		if r.Invited {
			summary.Invited++
		} else {
			summary.Failed++
		}
	}

	if err := u.cache.DeleteByPattern(batchCtx, fmt.Sprintf("shortlist:%s:*", jobID)); err != nil {
		u.logger.Debug("shortlist cache invalidation failed", zap.Error(err))
	}
	ws.NotifyInviteBatch(jobID, summary.Invited, summary.Failed)

	u.logger.Info("invite batch finished",
		zap.String("job_id", jobID.String()),
		zap.Int("requested", n),
		zap.Int("found", summary.CandidatesFound),
		zap.Int("invited", summary.Invited),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// inviteOne performs the full invitation flow for a single candidate. Every
// failure is captured in the result rather than returned.
func (u *Invitation) inviteOne(ctx context.Context, j job.Job, c candidate.Candidate) InviteResult {
	res := InviteResult{
		CandidateID: c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
	}
	if c.MatchScore != nil {
		res.MatchScore = *c.MatchScore
	}

	prompts := u.questionSet(ctx, j)

	now := u.now().UTC()
	iv := interview.Interview{
		ID:          uuid.New(),
		CandidateID: c.ID,
		Status:      interview.StatusPending,
		CreatedAt:   now,
	}

	raw, hash, err := token.Generate()
	if err != nil {
		res.Error = fmt.Sprintf("token generation: %v", err)
		return res
	}
	tok := interview.AssessmentToken{
		ID:          uuid.New(),
		InterviewID: iv.ID,
		TokenHash:   hash,
		ExpiresAt:   now.Add(u.tokenTTL),
	}

	if err := u.interviews.CreateWithQuestions(ctx, iv, prompts, tok); err != nil {
		u.logger.Warn("interview creation failed",
			zap.String("candidate_id", c.ID.String()), zap.Error(err))
		res.Error = "interview creation failed"
		return res
	}

	moved, err := u.candidates.MarkInvited(ctx, c.ID, iv.ID, now)
	if err != nil {
		res.Error = "candidate update failed"
		return res
	}
	if !moved {
		// Raced with another batch; the other invitation stands.
		res.Error = "candidate is no longer eligible"
		return res
	}
	res.InterviewID = &iv.ID

	if err := u.sendInvitation(ctx, j, c, raw, tok.ExpiresAt); err != nil {
		u.logger.Warn("invitation dispatch failed",
			zap.String("candidate_id", c.ID.String()), zap.Error(err))
		res.Error = "notification dispatch failed"
		return res
	}

	res.Invited = true
	return res
}

// questionSet asks the model for tailored questions and falls back to a
// deterministic set built from the job requirements when the model cannot
// deliver.
func (u *Invitation) questionSet(ctx context.Context, j job.Job) []string {
	if u.questions != nil {
		prompts, err := u.questions.GenerateQuestions(ctx, j, u.questionCount)
		if err == nil && len(prompts) > 0 {
			return prompts
		}
		if err != nil {
			u.logger.Warn("question generation failed, using fallback set",
				zap.String("job_id", j.ID.String()),
				zap.Bool("transient", ai.IsTransient(err)),
				zap.Error(err))
		}
	}
	return fallbackQuestions(j, u.questionCount)
}

func fallbackQuestions(j job.Job, count int) []string {
	if count <= 0 {
		count = 1
	}
	out := make([]string, 0, count)
	for _, req := range j.Requirements {
		if len(out) == count {
			break
		}
		out = append(out, fmt.Sprintf("Describe your hands-on experience with %s and a project where you applied it.", req))
	}
	for len(out) < count {
		out = append(out, fmt.Sprintf("What makes you a strong fit for the %s role?", j.Title))
	}
	return out
}

func (u *Invitation) sendInvitation(ctx context.Context, j job.Job, c candidate.Candidate, rawToken string, expiresAt time.Time) error {
	if u.notifier == nil {
		return nil
	}
	payload := map[string]any{
		"candidate_name": c.FullName,
		"job_title":      j.Title,
		"assessment_url": fmt.Sprintf("%s/assessments?token=%s", u.assessmentBase, rawToken),
		"expires_at":     expiresAt.Format(time.RFC3339),
	}
	return u.notifier.Send(ctx, notification.TemplateInvitation, c.Email, payload)
}

var _ InvitationUsecase = (*Invitation)(nil)

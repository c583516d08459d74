package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/config"
	"hireflow/internal/domain/profile"
	"hireflow/internal/repository"
)

type ExtractionUsecase interface {
	// ExtractResumeProfile runs structured extraction over raw resume text.
	ExtractResumeProfile(ctx context.Context, resumeText string) (profile.Profile, error)

	// ExtractAndStore extracts the candidate's stored resume and persists
	// the resulting profile on the candidate row.
	ExtractAndStore(ctx context.Context, candidateID uuid.UUID) (profile.Profile, error)
}

type Extraction struct {
	extractor  ai.ProfileExtractor
	candidates repository.CandidateRepository
	maxChars   int
	logger     *zap.Logger
}

func NewExtractionUsecase(extractor ai.ProfileExtractor, candidates repository.CandidateRepository, cfg config.ScoringConfig, logger *zap.Logger) *Extraction {
	return &Extraction{
		extractor:  extractor,
		candidates: candidates,
		maxChars:   cfg.MaxResumeChars,
		logger:     logger,
	}
}

func (u *Extraction) ExtractResumeProfile(ctx context.Context, resumeText string) (profile.Profile, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return profile.Profile{}, ErrInvalidInput
	}
	if u.extractor == nil {
		return profile.Profile{}, ErrAIUnavailable
	}
	if u.maxChars > 0 && len(resumeText) > u.maxChars {
		resumeText = resumeText[:u.maxChars]
	}

	p, err := u.extractor.ExtractProfile(ctx, resumeText)
	if err != nil {
		u.logger.Warn("resume extraction failed",
			zap.Bool("transient", ai.IsTransient(err)),
			zap.Error(err))
		return profile.Profile{}, err
	}
	return p, nil
}

func (u *Extraction) ExtractAndStore(ctx context.Context, candidateID uuid.UUID) (profile.Profile, error) {
	if candidateID == uuid.Nil {
		return profile.Profile{}, ErrInvalidInput
	}

	c, err := u.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.Profile{}, ErrCandidateNotFound
		}
		return profile.Profile{}, err
	}

	p, err := u.ExtractResumeProfile(ctx, c.ResumeText)
	if err != nil {
		return profile.Profile{}, err
	}

	if err := u.candidates.SaveProfile(ctx, candidateID, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.Profile{}, ErrCandidateNotFound
		}
		return profile.Profile{}, err
	}

	u.logger.Info("candidate profile extracted",
		zap.String("candidate_id", candidateID.String()),
		zap.Int("skills", len(p.Skills)),
		zap.Int("positions", len(p.Positions)))
	return p, nil
}

var _ ExtractionUsecase = (*Extraction)(nil)

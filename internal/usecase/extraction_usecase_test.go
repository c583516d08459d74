package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/config"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/profile"
)

func extractionCfg(maxChars int) config.ScoringConfig {
	return config.ScoringConfig{MaxResumeChars: maxChars}
}

func TestExtraction_EmptyText(t *testing.T) {
	uc := NewExtractionUsecase(&fakeExtractor{}, newFakeCandidateRepo(), extractionCfg(0), zap.NewNop())
	_, err := uc.ExtractResumeProfile(context.Background(), "   \n ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExtraction_NoExtractorConfigured(t *testing.T) {
	uc := NewExtractionUsecase(nil, newFakeCandidateRepo(), extractionCfg(0), zap.NewNop())
	_, err := uc.ExtractResumeProfile(context.Background(), "resume")
	if !errors.Is(err, ErrAIUnavailable) {
		t.Fatalf("expected ErrAIUnavailable, got %v", err)
	}
}

func TestExtraction_TruncatesLongResume(t *testing.T) {
	ext := &fakeExtractor{profile: profile.Profile{FullName: "A"}}
	uc := NewExtractionUsecase(ext, newFakeCandidateRepo(), extractionCfg(100), zap.NewNop())

	_, err := uc.ExtractResumeProfile(context.Background(), strings.Repeat("x", 5000))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ext.gotText) != 100 {
		t.Fatalf("expected 100 chars passed to extractor, got %d", len(ext.gotText))
	}
}

func TestExtraction_TransientErrorPassesThrough(t *testing.T) {
	wantErr := ai.Transient("extract_profile", errors.New("rate limited"))
	uc := NewExtractionUsecase(&fakeExtractor{err: wantErr}, newFakeCandidateRepo(), extractionCfg(0), zap.NewNop())

	_, err := uc.ExtractResumeProfile(context.Background(), "resume")
	if !ai.IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestExtraction_SparseProfileIsValid(t *testing.T) {
	ext := &fakeExtractor{profile: profile.Profile{Skills: []string{}, Positions: []profile.Position{}}}
	uc := NewExtractionUsecase(ext, newFakeCandidateRepo(), extractionCfg(0), zap.NewNop())

	p, err := uc.ExtractResumeProfile(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Skills == nil {
		t.Fatal("skills should be empty, not nil")
	}
}

func TestExtraction_ExtractAndStore(t *testing.T) {
	candidates := newFakeCandidateRepo()
	id := uuid.New()
	candidates.put(candidate.Candidate{ID: id, ResumeText: "resume body", Status: candidate.StatusApplied})

	want := profile.Profile{FullName: "Jane Doe", Skills: []string{"Go"}}
	uc := NewExtractionUsecase(&fakeExtractor{profile: want}, candidates, extractionCfg(0), zap.NewNop())

	got, err := uc.ExtractAndStore(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.FullName != want.FullName {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if stored, ok := candidates.savedProfiles[id]; !ok || stored.FullName != want.FullName {
		t.Fatal("profile was not persisted")
	}
}

func TestExtraction_ExtractAndStore_CandidateMissing(t *testing.T) {
	uc := NewExtractionUsecase(&fakeExtractor{}, newFakeCandidateRepo(), extractionCfg(0), zap.NewNop())
	_, err := uc.ExtractAndStore(context.Background(), uuid.New())
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

package ai

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	base := errors.New("boom")

	tr := Transient("extract_profile", base)
	if !IsTransient(tr) || IsPermanent(tr) {
		t.Fatalf("transient misclassified")
	}
	pe := Permanent("extract_profile", base)
	if !IsPermanent(pe) || IsTransient(pe) {
		t.Fatalf("permanent misclassified")
	}
	if IsTransient(base) || IsPermanent(base) {
		t.Fatalf("plain error must be neither")
	}
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("call failed: %w", Transient("grade_responses", errors.New("429")))
	if !IsTransient(wrapped) {
		t.Fatal("wrapping must not hide transience")
	}
	if !errors.Is(wrapped, wrapped) {
		t.Fatal("sanity")
	}
}

func TestUnwrap(t *testing.T) {
	base := errors.New("schema mismatch")
	if !errors.Is(Permanent("adjust_score", base), base) {
		t.Fatal("permanent error must unwrap to its cause")
	}
	if !errors.Is(Transient("adjust_score", base), base) {
		t.Fatal("transient error must unwrap to its cause")
	}
}

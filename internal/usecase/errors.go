package usecase

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")
	ErrAIUnavailable = errors.New("ai capability unavailable")

	ErrJobNotFound       = errors.New("job not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInterviewNotFound = errors.New("interview not found")
	ErrScorecardNotFound = errors.New("scorecard not found")
	ErrProfileMissing    = errors.New("candidate profile not extracted yet")

	ErrInvalidToken     = errors.New("invalid assessment token")
	ErrTokenExpired     = errors.New("assessment token expired")
	ErrTokenAlreadyUsed = errors.New("assessment token already used")

	ErrInterviewNotActive = errors.New("interview is not active")
	ErrSessionExpired     = errors.New("interview session expired")
	ErrDuplicateResponse  = errors.New("response already submitted for this question")

	// ErrEvaluationFailed wraps a grading failure after finalize. The
	// interview stays completed; evaluation can be retried independently.
	ErrEvaluationFailed = errors.New("scorecard evaluation failed")
)

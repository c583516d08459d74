package ai

import (
	"errors"
	"fmt"
)

// TransientError marks a failure worth retrying: timeouts, rate limits,
// upstream 5xx. Exhausted retries surface the last TransientError.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient ai error in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks model output that violates the expected schema, or an
// otherwise unrecoverable call. Never retried.
type PermanentError struct {
	Op  string
	Err error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent ai error in %s: %v", e.Op, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

func Transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

func Permanent(op string, err error) error {
	return &PermanentError{Op: op, Err: err}
}

func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

func IsPermanent(err error) bool {
	var p *PermanentError
	return errors.As(err, &p)
}

package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a malformed request that must abort before any
	// state change.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a failed or missing authentication.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated caller without access.
	ErrForbidden = errors.New("forbidden")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// SchedulingFault wraps any failure while computing or persisting a
// review schedule or longitudinal user stats during submission. The
// orchestrator logs these and never surfaces them to the submitter.
type SchedulingFault struct {
	Op  string
	Err error
}

func (f *SchedulingFault) Error() string {
	return fmt.Sprintf("scheduling fault in %s: %v", f.Op, f.Err)
}

func (f *SchedulingFault) Unwrap() error { return f.Err }

// AnalyticsFault wraps a failure while computing a derived analytics
// view. These are surfaced directly to the caller of the read.
type AnalyticsFault struct {
	View string
	Err  error
}

func (f *AnalyticsFault) Error() string {
	return fmt.Sprintf("analytics fault in %s: %v", f.View, f.Err)
}

func (f *AnalyticsFault) Unwrap() error { return f.Err }

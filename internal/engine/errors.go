package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientLayouts is returned when fewer than two non-model
	// layouts are available to link.
	ErrInsufficientLayouts = errors.New("at least two non-model layouts are required")

	// ErrEmptyLayout marks a layout with no boundable entities.
	ErrEmptyLayout = errors.New("layout has no boundable entities")
)

// ErrorCode classifies a persistence failure.
type ErrorCode string

const (
	ErrorListLayoutsFailed ErrorCode = "LIST_LAYOUTS_FAILED"
	ErrorCreateLineFailed  ErrorCode = "CREATE_LINE_FAILED"
	ErrorCreateTextFailed  ErrorCode = "CREATE_TEXT_FAILED"
	ErrorCommitFailed      ErrorCode = "COMMIT_FAILED"
)

// PersistenceError reports a drawing store failure with the layout and step
// at which the run was aborted.
type PersistenceError struct {
	Code   ErrorCode
	Layout string
	Step   string
	Cause  error
}

func (e *PersistenceError) Error() string {
	where := e.Step
	if e.Layout != "" {
		where = fmt.Sprintf("layout %q: %s", e.Layout, e.Step)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, where, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, where)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func newPersistenceError(code ErrorCode, layout, step string, cause error) *PersistenceError {
	return &PersistenceError{Code: code, Layout: layout, Step: step, Cause: cause}
}

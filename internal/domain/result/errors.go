package result

import (
	"errors"
	"fmt"
)

var ErrInvalidScore = errors.New("invalid score")

// ScoreError names the set or field a rejected result failed on.
type ScoreError struct {
	// SetNumber is 1-based; zero when the problem is not tied to a single set.
	SetNumber int
	Field     string
	Reason    string
}

func (e *ScoreError) Error() string {
	if e.SetNumber > 0 {
		return fmt.Sprintf("Set %d: %s", e.SetNumber, e.Reason)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

func (e *ScoreError) Unwrap() error {
	return ErrInvalidScore
}

func setError(setNumber int, format string, args ...any) error {
	return &ScoreError{SetNumber: setNumber, Reason: fmt.Sprintf(format, args...)}
}

func fieldError(field, format string, args ...any) error {
	return &ScoreError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

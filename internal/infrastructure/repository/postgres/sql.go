package postgres

import (
	"context"
	"database/sql"
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/resilience"
	"github.com/cyklop/vb-liga-manager-sub000/internal/usecase"
)

func isNotFound(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

// guard routes every statement through the shared database breaker. A nil breaker runs statements directly.
type guard struct {
	breaker *resilience.CircuitBreaker
}

func (g guard) run(fn func() error) error {
	err := g.breaker.Execute(fn, countsAsDBFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: database: %w", usecase.ErrDependencyUnavailable, err)
	}
	return err
}

// countsAsDBFailure ignores misses, caller cancellations and domain-level rejections.
func countsAsDBFailure(err error) bool {
	if isNotFound(err) || crerr.Is(err, context.Canceled) {
		return false
	}
	var rejected rejection
	return !crerr.As(err, &rejected)
}

// rejection marks an error that the database returned correctly but the caller must fix.
type rejection struct {
	msg string
}

func (e rejection) Error() string {
	return e.msg
}

func rejectf(format string, args ...any) error {
	return rejection{msg: fmt.Sprintf(format, args...)}
}

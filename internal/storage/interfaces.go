// Package storage defines persistence for accounts and saved calculator runs.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/finfreedom/fincalc/internal/domain"
)

// ErrNotFound is returned when a record does not exist or is not visible to the caller.
var ErrNotFound = errors.New("not found")

// DefaultHistoryLimit caps history listings when the caller passes no limit.
const DefaultHistoryLimit = 50

// CalculationStore persists calculator runs.
type CalculationStore interface {
	SaveCalculation(ctx context.Context, calc domain.Calculation) (domain.Calculation, error)
	// GetCalculation returns ErrNotFound when id does not belong to userID.
	GetCalculation(ctx context.Context, userID, id string) (domain.Calculation, error)
	// ListCalculations returns newest first. An empty calcType lists every calculator.
	ListCalculations(ctx context.Context, userID string, calcType domain.CalculatorType, limit int) ([]domain.Calculation, error)
	CountCalculations(ctx context.Context, userID string, calcType domain.CalculatorType) (int, error)
}

// UserStore persists accounts and their payment state.
type UserStore interface {
	// EnsureUser creates the user on first sight and returns the stored record.
	EnsureUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUser(ctx context.Context, id string) (domain.User, error)
	// GrantLifetimeAccess is idempotent; the first grant's date is kept.
	GrantLifetimeAccess(ctx context.Context, userID string, at time.Time) (domain.User, error)
}

// Store is the full persistence surface of the service.
type Store interface {
	CalculationStore
	UserStore
}

// UsageCache caches per-user calculation counts in front of CountCalculations.
type UsageCache interface {
	// GetCount reports ok=false on a miss.
	GetCount(ctx context.Context, userID string, calcType domain.CalculatorType) (count int, ok bool, err error)
	SetCount(ctx context.Context, userID string, calcType domain.CalculatorType, count int) error
	Invalidate(ctx context.Context, userID string, calcType domain.CalculatorType) error
}

// UsageKey is the cache key for a user's count of one calculator.
func UsageKey(userID string, calcType domain.CalculatorType) string {
	return "fincalc:usage:" + userID + ":" + string(calcType)
}

// NormalizeLimit clamps a requested page size to [1, DefaultHistoryLimit].
func NormalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultHistoryLimit {
		return DefaultHistoryLimit
	}
	return limit
}

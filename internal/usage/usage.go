// Package usage meters calculator runs: a fixed number of free runs per calculator,
// unlimited after a one-time payment.
package usage

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/storage"
)

// Unlimited is the RemainingCalculations value reported for paid accounts.
const Unlimited = -1

// lockStripes bounds the per-user run locks; users hashing to the same stripe share one.
const lockStripes = 256

var (
	// ErrPaymentRequired is returned once the free allowance is used up.
	ErrPaymentRequired = errors.New("free calculations used up; lifetime access required")
	// ErrForbidden is returned for features reserved to paid accounts.
	ErrForbidden = errors.New("lifetime access required")
)

// Service applies the usage policy on top of the stores.
type Service struct {
	store storage.Store
	cache storage.UsageCache
	free  int
	log   logrus.FieldLogger
	now   func() time.Time

	locks [lockStripes]sync.Mutex
}

// NewService creates a usage service granting free runs per calculator. cache may be nil.
func NewService(store storage.Store, cache storage.UsageCache, free int, log logrus.FieldLogger) *Service {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Service{
		store: store,
		cache: cache,
		free:  free,
		log:   log.WithField("component", "usage"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// EnsureUser registers an authenticated user on first sight.
func (s *Service) EnsureUser(ctx context.Context, userID, email string) (domain.User, error) {
	return s.store.EnsureUser(ctx, domain.User{ID: userID, Email: email})
}

// Status reports the user's allowance for one calculator. The count may come from the
// cache, so it is advisory; Authorize and Run always count from the store.
func (s *Service) Status(ctx context.Context, userID string, calcType domain.CalculatorType) (domain.UsageStatus, error) {
	return s.status(ctx, userID, calcType, s.count)
}

func (s *Service) status(ctx context.Context, userID string, calcType domain.CalculatorType, count countFunc) (domain.UsageStatus, error) {
	if !calcType.Valid() {
		return domain.UsageStatus{}, fmt.Errorf("unknown calculator type %q", calcType)
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return domain.UsageStatus{}, err
	}
	used, err := count(ctx, userID, calcType)
	if err != nil {
		return domain.UsageStatus{}, err
	}

	status := domain.UsageStatus{
		HasLifetimeAccess: user.HasLifetimeAccess,
		CalculationsUsed:  used,
		CalculatorType:    calcType,
	}
	if user.HasLifetimeAccess {
		status.CanUse = true
		status.RemainingCalculations = Unlimited
	} else {
		status.RemainingCalculations = max(0, s.free-used)
		status.CanUse = status.RemainingCalculations > 0
	}

	if used > 0 {
		last, err := s.store.ListCalculations(ctx, userID, calcType, 1)
		if err != nil {
			return domain.UsageStatus{}, err
		}
		if len(last) > 0 {
			status.LastCalculation = &last[0]
		}
	}
	return status, nil
}

// Authorize returns ErrPaymentRequired when the user may not run calcType again.
func (s *Service) Authorize(ctx context.Context, userID string, calcType domain.CalculatorType) (domain.UsageStatus, error) {
	status, err := s.status(ctx, userID, calcType, s.storedCount)
	if err != nil {
		return status, err
	}
	if !status.CanUse {
		return status, ErrPaymentRequired
	}
	return status, nil
}

// Record persists a run and invalidates the cached count.
func (s *Service) Record(ctx context.Context, userID string, calcType domain.CalculatorType, input, result any) (domain.Calculation, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("encode input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("encode result: %w", err)
	}

	calc, err := s.store.SaveCalculation(ctx, domain.Calculation{
		UserID:         userID,
		CalculatorType: calcType,
		Input:          inputJSON,
		Result:         resultJSON,
		CreatedAt:      s.now(),
	})
	if err != nil {
		return domain.Calculation{}, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID, calcType); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("usage cache invalidation failed")
		}
	}
	return calc, nil
}

// Run authorizes, computes and records one calculator run. Runs for the same user are
// serialized and authorized against the store, so neither concurrent runs nor a stale
// cached count can overspend the free allowance. A refused run still returns the status.
func (s *Service) Run(ctx context.Context, userID string, calcType domain.CalculatorType, compute func() (input, result any)) (domain.Calculation, domain.UsageStatus, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if status, err := s.Authorize(ctx, userID, calcType); err != nil {
		return domain.Calculation{}, status, err
	}
	input, result := compute()
	calc, err := s.Record(ctx, userID, calcType, input, result)
	if err != nil {
		return domain.Calculation{}, domain.UsageStatus{}, err
	}
	status, err := s.status(ctx, userID, calcType, s.storedCount)
	return calc, status, err
}

// History lists saved runs for a paid user, newest first.
func (s *Service) History(ctx context.Context, userID string, calcType domain.CalculatorType, limit int) ([]domain.Calculation, error) {
	if err := s.requireLifetime(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListCalculations(ctx, userID, calcType, limit)
}

// Get returns one saved run for a paid user.
func (s *Service) Get(ctx context.Context, userID, id string) (domain.Calculation, error) {
	if err := s.requireLifetime(ctx, userID); err != nil {
		return domain.Calculation{}, err
	}
	return s.store.GetCalculation(ctx, userID, id)
}

// GrantLifetimeAccess marks a user as paid.
func (s *Service) GrantLifetimeAccess(ctx context.Context, userID string, at time.Time) (domain.User, error) {
	user, err := s.store.GrantLifetimeAccess(ctx, userID, at)
	if err != nil {
		return domain.User{}, err
	}
	s.log.WithField("user_id", userID).Info("lifetime access granted")
	return user, nil
}

func (s *Service) requireLifetime(ctx context.Context, userID string) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasLifetimeAccess {
		return ErrForbidden
	}
	return nil
}

type countFunc func(ctx context.Context, userID string, calcType domain.CalculatorType) (int, error)

func (s *Service) storedCount(ctx context.Context, userID string, calcType domain.CalculatorType) (int, error) {
	return s.store.CountCalculations(ctx, userID, calcType)
}

// count serves the read-only status path from the cache, filling it on a miss.
func (s *Service) count(ctx context.Context, userID string, calcType domain.CalculatorType) (int, error) {
	if s.cache != nil {
		n, ok, err := s.cache.GetCount(ctx, userID, calcType)
		if err != nil {
			s.log.WithError(err).Warn("usage cache read failed")
		} else if ok {
			return n, nil
		}
	}

	n, err := s.store.CountCalculations(ctx, userID, calcType)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetCount(ctx, userID, calcType, n); err != nil {
			s.log.WithError(err).Warn("usage cache write failed")
		}
	}
	return n, nil
}

func (s *Service) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Package memory is a thread-safe in-memory implementation of the storage interfaces,
// used for tests and single-process deployments without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/storage"
)

// Store keeps users and calculations in maps guarded by a single lock.
type Store struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	calculations map[string]domain.Calculation
	now          func() time.Time
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		calculations: make(map[string]domain.Calculation),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the clock used for CreatedAt stamps.
func (s *Store) SetNowFunc(now func() time.Time) { s.now = now }

// --- CalculationStore -------------------------------------------------------

func (s *Store) SaveCalculation(_ context.Context, calc domain.Calculation) (domain.Calculation, error) {
	if calc.UserID == "" {
		return domain.Calculation{}, fmt.Errorf("calculation user id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if calc.ID == "" {
		calc.ID = uuid.NewString()
	} else if _, exists := s.calculations[calc.ID]; exists {
		return domain.Calculation{}, fmt.Errorf("calculation %s already exists", calc.ID)
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = s.now()
	}
	calc = cloneCalculation(calc)
	s.calculations[calc.ID] = calc
	return cloneCalculation(calc), nil
}

func (s *Store) GetCalculation(_ context.Context, userID, id string) (domain.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	calc, ok := s.calculations[id]
	if !ok || calc.UserID != userID {
		return domain.Calculation{}, fmt.Errorf("calculation %s: %w", id, storage.ErrNotFound)
	}
	return cloneCalculation(calc), nil
}

func (s *Store) ListCalculations(_ context.Context, userID string, calcType domain.CalculatorType, limit int) ([]domain.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Calculation
	for _, calc := range s.calculations {
		if calc.UserID != userID || (calcType != "" && calc.CalculatorType != calcType) {
			continue
		}
		out = append(out, cloneCalculation(calc))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit = storage.NormalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) CountCalculations(_ context.Context, userID string, calcType domain.CalculatorType) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, calc := range s.calculations {
		if calc.UserID == userID && calc.CalculatorType == calcType {
			n++
		}
	}
	return n, nil
}

// --- UserStore --------------------------------------------------------------

func (s *Store) EnsureUser(_ context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		return domain.User{}, fmt.Errorf("user id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		if existing.Email == "" && user.Email != "" {
			existing.Email = user.Email
			s.users[user.ID] = existing
		}
		return cloneUser(existing), nil
	}
	user.CreatedAt = s.now()
	user.HasLifetimeAccess = false
	user.SubscriptionDate = nil
	s.users[user.ID] = user
	return cloneUser(user), nil
}

func (s *Store) GetUser(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return cloneUser(user), nil
}

func (s *Store) GrantLifetimeAccess(_ context.Context, userID string, at time.Time) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	if !user.HasLifetimeAccess {
		at = at.UTC()
		user.HasLifetimeAccess = true
		user.SubscriptionDate = &at
		s.users[userID] = user
	}
	return cloneUser(user), nil
}

func cloneCalculation(c domain.Calculation) domain.Calculation {
	c.Input = append([]byte(nil), c.Input...)
	if c.Result != nil {
		c.Result = append([]byte(nil), c.Result...)
	}
	return c
}

func cloneUser(u domain.User) domain.User {
	if u.SubscriptionDate != nil {
		d := *u.SubscriptionDate
		u.SubscriptionDate = &d
	}
	return u
}

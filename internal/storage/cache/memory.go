package cache

import (
	"context"
	"sync"
	"time"

	"github.com/finfreedom/fincalc/internal/domain"
	"github.com/finfreedom/fincalc/internal/storage"
)

type entry struct {
	count   int
	expires time.Time
}

// MemoryCache is the in-process UsageCache used when no Redis is configured.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

var _ storage.UsageCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty cache. A zero ttl keeps entries until invalidated.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryCache) GetCount(_ context.Context, userID string, calcType domain.CalculatorType) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := storage.UsageKey(userID, calcType)
	e, ok := m.data[key]
	if !ok {
		return 0, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.data, key)
		return 0, false, nil
	}
	return e.count, true, nil
}

func (m *MemoryCache) SetCount(_ context.Context, userID string, calcType domain.CalculatorType, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{count: count}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.data[storage.UsageKey(userID, calcType)] = e
	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context, userID string, calcType domain.CalculatorType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, storage.UsageKey(userID, calcType))
	return nil
}

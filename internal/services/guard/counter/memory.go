// Package counter provides CounterStore implementations for the loop guard
package counter

import (
	"context"
	"sync"
	"time"

	"chatguard/internal/services/guard/domain"
)

type entry struct {
	rec     domain.Record
	expires time.Time
}

// Memory keeps records in process. Counts are per instance
// A background goroutine evicts expired entries until Close
type Memory struct {
	now   func() time.Time
	every time.Duration

	mu      sync.Mutex
	entries map[string]entry

	stopOnce sync.Once
	done     chan struct{}
}

// MemoryOption tweaks a Memory store
type MemoryOption func(*Memory)

// WithClock overrides the time source used for expiry
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithEvictEvery sets the eviction interval, default one minute
func WithEvictEvery(d time.Duration) MemoryOption {
	return func(m *Memory) {
		if d > 0 {
			m.every = d
		}
	}
}

// NewMemory starts a memory store. Call Close to stop eviction
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		now:     time.Now,
		every:   time.Minute,
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	go m.evictLoop()
	return m
}

// Get returns the record for key when present and unexpired
func (m *Memory) Get(_ context.Context, key string) (domain.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return domain.Record{}, false, nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, key)
		return domain.Record{}, false, nil
	}
	return e.rec, true, nil
}

// Set stores rec under key. ttl <= 0 keeps it until deleted
func (m *Memory) Set(_ context.Context, key string, rec domain.Record, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{rec: rec}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Delete drops key
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Clear drops every key
func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

// Len reports how many entries are held, expired or not
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the eviction goroutine. Safe to call more than once
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.done) })
	return nil
}

func (m *Memory) evictLoop() {
	t := time.NewTicker(m.every)
	defer t.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-t.C:
			m.evict()
		}
	}
}

func (m *Memory) evict() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
}

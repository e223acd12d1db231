package ephemeral

import (
	"errors"
	"sync"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
)

var (
	ErrTooLong   = errors.New("key too long")
	ErrStoreFull = errors.New("ephemeral store full")
)

const (
	defaultMaxKeyLength = 255
	defaultMaxSize      = 1000
	defaultSweep        = time.Minute
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Option configures a Store.
type Option[V any] func(*Store[V])

// WithMaxSize caps the number of live entries.
func WithMaxSize[V any](n int) Option[V] {
	return func(s *Store[V]) { s.maxSize = n }
}

// WithSweepInterval sets how often expired entries are collected.
func WithSweepInterval[V any](d time.Duration) Option[V] {
	return func(s *Store[V]) { s.sweep = d }
}

// WithOnEvict registers a hook run, outside the lock, for every entry removed
// by expiry, Delete or Close.
func WithOnEvict[V any](fn func(key string, value V)) Option[V] {
	return func(s *Store[V]) { s.onEvict = fn }
}

// Store is an in-memory map whose entries expire after a TTL. Reads of an
// entry extend nothing; use Touch to renew.
type Store[V any] struct {
	mu      sync.RWMutex
	data    map[string]*item[V]
	maxKey  int
	maxSize int
	sweep   time.Duration
	onEvict func(key string, value V)

	stop chan struct{}
	once sync.Once
}

// New creates a store and starts its sweeper.
func New[V any](opts ...Option[V]) *Store[V] {
	s := &Store[V]{
		data:    make(map[string]*item[V]),
		maxKey:  defaultMaxKeyLength,
		maxSize: defaultMaxSize,
		sweep:   defaultSweep,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanup()

	logging.DebugLog("Ephemeral store initialized")
	return s
}

// Set stores value under key for ttl.
func (s *Store[V]) Set(key string, value V, ttl time.Duration) error {
	if len(key) > s.maxKey {
		return ErrTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists && len(s.data) >= s.maxSize {
		logging.WarnLog("Store set failed: store full (size: %d)", len(s.data))
		return ErrStoreFull
	}

	s.data[key] = &item[V]{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get returns the live value for key.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.data[key]
	if !ok || time.Now().After(it.expiresAt) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Touch renews a live entry for ttl.
func (s *Store[V]) Touch(key string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.data[key]
	if !ok || time.Now().After(it.expiresAt) {
		return false
	}
	it.expiresAt = time.Now().Add(ttl)
	return true
}

// Delete removes key and runs the eviction hook if it was present.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	it, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()

	if existed && s.onEvict != nil {
		s.onEvict(key, it.value)
	}
}

// Len counts entries, including expired ones not yet swept.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Close stops the sweeper and evicts everything.
func (s *Store[V]) Close() {
	s.once.Do(func() {
		close(s.stop)
		s.mu.Lock()
		data := s.data
		s.data = make(map[string]*item[V])
		s.mu.Unlock()
		if s.onEvict != nil {
			for k, it := range data {
				s.onEvict(k, it.value)
			}
		}
	})
}

func (s *Store[V]) cleanup() {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.collect(time.Now())
		}
	}
}

func (s *Store[V]) collect(now time.Time) {
	expired := make(map[string]V)
	s.mu.Lock()
	for k, v := range s.data {
		if now.After(v.expiresAt) {
			expired[k] = v.value
			delete(s.data, k)
		}
	}
	currentSize := len(s.data)
	s.mu.Unlock()

	if len(expired) == 0 {
		return
	}
	if s.onEvict != nil {
		for k, v := range expired {
			s.onEvict(k, v)
		}
	}
	logging.InfoLog("Store cleanup: removed %d expired items (current size: %d)", len(expired), currentSize)
}

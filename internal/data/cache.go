package data

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Store keeps values under generated IDs until their TTL passes.
// Expired entries are invisible to Get and swept periodically.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewStore starts a store with a background sweeper when sweep > 0.
// Call Close to stop it.
func NewStore[T any](ttl, sweep time.Duration) *Store[T] {
	s := &Store[T]{
		items: make(map[string]entry[T]),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if sweep > 0 {
		go s.cleanup(sweep)
	}
	return s
}

// Put stores v and returns its new ID.
func (s *Store[T]) Put(v T) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = entry[T]{value: v, expiresAt: s.now().Add(s.ttl)}
	return id
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[id]
	if !ok || s.now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep removes expired entries and reports how many were dropped.
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, e := range s.items {
		if now.After(e.expiresAt) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *Store[T]) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *Store[T]) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("[Store] evicted %d expired entries", n)
			}
		case <-s.stop:
			return
		}
	}
}

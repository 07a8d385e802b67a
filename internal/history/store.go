// Package history keeps the most recent credentials of a client in memory.
package history

import (
	"sync"

	"github.com/and161185/goph-passgen/internal/model"
)

// DefaultCapacity is the number of credentials a Store keeps.
const DefaultCapacity = 5

// Store is a bounded, newest-first list of credentials.
// By default duplicates are kept; with dedup, recording an existing value moves it to
// the front instead.
type Store struct {
	mu       sync.Mutex
	capacity int
	dedup    bool
	items    []model.Credential
}

// Option configures a Store.
type Option func(*Store)

// WithCapacity overrides DefaultCapacity; values < 1 are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithDedup enables move-to-front for repeated values.
func WithDedup(on bool) Option { return func(s *Store) { s.dedup = on } }

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{capacity: DefaultCapacity}
	for _, o := range opts {
		o(s)
	}
	s.items = make([]model.Credential, 0, s.capacity)
	return s
}

// Record inserts c at the front, evicting the oldest entry beyond capacity.
func (s *Store) Record(c model.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dedup {
		for i := range s.items {
			if s.items[i].Value == c.Value {
				s.items = append(s.items[:i], s.items[i+1:]...)
				break
			}
		}
	}
	s.items = append(s.items, model.Credential{})
	copy(s.items[1:], s.items)
	s.items[0] = c
	if len(s.items) > s.capacity {
		s.items = s.items[:s.capacity]
	}
}

// List returns a copy of the entries, newest first.
func (s *Store) List() []model.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Credential(nil), s.items...)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.items[:0]
}

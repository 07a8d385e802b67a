package history

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Registry owns one Store per session and drops stores idle for longer than ttl.
// Expired stores are swept lazily on access.
type Registry struct {
	mu     sync.Mutex
	stores map[uuid.UUID]*entry
	opts   []Option
	ttl    time.Duration
	now    func() time.Time
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

// NewRegistry returns a Registry creating stores with opts. ttl <= 0 disables expiry.
func NewRegistry(ttl time.Duration, opts ...Option) *Registry {
	return &Registry{
		stores: make(map[uuid.UUID]*entry),
		opts:   opts,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the session's store, creating it on first use.
func (r *Registry) Get(id uuid.UUID) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	e, ok := r.stores[id]
	if !ok {
		e = &entry{store: NewStore(r.opts...)}
		r.stores[id] = e
	}
	e.lastSeen = now
	return e.store
}

// Lookup returns the session's store without creating one.
func (r *Registry) Lookup(id uuid.UUID) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)
	e, ok := r.stores[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.store, true
}

// Drop forgets a session.
func (r *Registry) Drop(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, id)
}

// Len returns the number of live sessions, sweeping expired ones first.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(r.now())
	return len(r.stores)
}

func (r *Registry) sweepLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, e := range r.stores {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.stores, id)
		}
	}
}

package ioweb

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aire-program/aire-impact-dashboard/pkg/source"
)

// Registry keeps sessions in memory. A session that has not been
// requested for longer than the TTL is dropped together with its upload.
type Registry struct {
	ref *source.ReferenceCache
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	sessions  map[string]*entry
	lastSweep time.Time
}

type entry struct {
	sess     *source.Session
	lastSeen time.Time
}

// NewRegistry creates an empty registry. A non-positive ttl falls back
// to 30 minutes.
func NewRegistry(ref *source.ReferenceCache, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Registry{
		ref:      ref,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// TTL returns how long an idle session is kept.
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Get returns the session with the id, creating it on first use or when
// the previous one has expired.
func (r *Registry) Get(id string) *source.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.ttl/2 {
		r.sweep(now)
	}

	if e, ok := r.sessions[id]; ok && !r.expired(e, now) {
		e.lastSeen = now
		return e.sess
	}
	s := source.NewSession(id, r.ref)
	r.sessions[id] = &entry{sess: s, lastSeen: now}
	return s
}

// Sweep drops sessions idle for longer than the TTL at the given time and
// returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweep(now)
}

// Len returns the number of known sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) sweep(now time.Time) int {
	r.lastSweep = now
	var count int
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			count++
		}
	}
	if count > 0 {
		slog.Debug("Expired idle sessions", "count", count, "left", len(r.sessions))
	}
	return count
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) > r.ttl
}

// Package session keeps interactive seat-map sessions in memory.  Each
// session owns one seatmap.Engine; callers hold the session lock around
// every engine call, so an engine is never used by two goroutines at once.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
)

// DefaultTTL is the idle lifetime of a session.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Session is one client's seat-map view of an event.
type Session struct {
	ID      string
	EventID string

	mu       sync.Mutex
	engine   *seatmap.Engine
	lastSeen time.Time
}

// Lock acquires the session and returns its engine.  Unlock must follow.
func (s *Session) Lock() *seatmap.Engine {
	s.mu.Lock()
	return s.engine
}

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// EngineFactory builds the engine of a new session.
type EngineFactory func(sessionID string) *seatmap.Engine

// Store is a TTL-bounded set of sessions.  Safe for concurrent use.
type Store struct {
	ttl       time.Duration
	newEngine EngineFactory
	log       *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty store.  A ttl <= 0 selects DefaultTTL.
func NewStore(ttl time.Duration, newEngine EngineFactory, log *zap.Logger) *Store {
	if newEngine == nil {
		panic("session: nil engine factory")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		ttl:       ttl,
		newEngine: newEngine,
		log:       log,
		now:       time.Now,
		sessions:  map[string]*Session{},
	}
}

// TTL returns the idle lifetime of sessions.
func (st *Store) TTL() time.Duration { return st.ttl }

// Create starts a session for eventID.
func (st *Store) Create(eventID string) *Session {
	id := uuid.NewString()
	s := &Session{ID: id, EventID: eventID, engine: st.newEngine(id), lastSeen: st.now()}

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	st.log.Debug("session created", zap.String("session_id", id), zap.String("event_id", eventID))
	return s
}

// Get returns a live session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := st.now()
	if now.Sub(s.lastSeen) >= st.ttl {
		delete(st.sessions, id)
		return nil, ErrNotFound
	}
	s.lastSeen = now
	return s, nil
}

// ExpiresAt reports when s expires if left idle.
func (st *Store) ExpiresAt(s *Session) time.Time {
	st.mu.Lock()
	defer st.mu.Unlock()
	return s.lastSeen.Add(st.ttl)
}

// Delete removes a session.  Its selection is simply dropped; nothing was
// committed on its behalf.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included until the
// next Sweep.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes idle sessions and returns how many were dropped.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	n := 0
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) >= st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(); n > 0 {
				st.log.Info("expired sessions swept", zap.Int("count", n), zap.Int("remaining", st.Len()))
			}
		}
	}
}

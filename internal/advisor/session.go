package advisor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ventosol/ventosol/internal/observability"
	"github.com/ventosol/ventosol/internal/scoring"
)

// Session errors.
var (
	// ErrSuperseded means a newer analysis started before this one finished.
	ErrSuperseded = errors.New("analysis superseded by a newer request")

	// ErrSessionNotFound means no session exists with the given ID.
	ErrSessionNotFound = errors.New("session not found")
)

// Session holds the current result for one user. Only the most recently
// started analysis may replace it; starting an analysis cancels the one in
// flight, and the previous good result stays readable until a new one is ready.
type Session struct {
	id      string
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu        sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	current   *scoring.Result
	updatedAt time.Time
	lastErr   error
	lastUsed  time.Time
}

// SessionState is a point-in-time view of a session.
type SessionState struct {
	ID        string
	Current   *scoring.Result
	UpdatedAt time.Time
	Pending   bool
	LastError error
}

func newSession(id string, clock clockwork.Clock, metrics *observability.Metrics) *Session {
	return &Session{
		id:       id,
		clock:    clock,
		metrics:  metrics,
		lastUsed: clock.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Run executes analyze as the session's newest request. If another Run starts
// before analyze returns, this call's context is canceled and it returns
// ErrSuperseded without touching the current result.
func (s *Session) Run(ctx context.Context, analyze func(context.Context) (scoring.Result, error)) (scoring.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.cancel = cancel
	s.lastUsed = s.clock.Now()
	s.mu.Unlock()

	result, err := analyze(runCtx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.metrics.RecordStaleDiscard()
		return scoring.Result{}, ErrSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.lastErr = err
		return scoring.Result{}, err
	}

	s.current = &result
	s.updatedAt = s.clock.Now()
	s.lastErr = nil
	return result, nil
}

// State returns the current result and whether an analysis is in flight.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = s.clock.Now()
	state := SessionState{
		ID:        s.id,
		UpdatedAt: s.updatedAt,
		Pending:   s.cancel != nil,
		LastError: s.lastErr,
	}
	if s.current != nil {
		cur := *s.current
		state.Current = &cur
	}
	return state
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return s.clock.Now()
	}
	return s.lastUsed
}

// DefaultSessionIdleTTL is how long an unused session is kept.
const DefaultSessionIdleTTL = 30 * time.Minute

// SessionStore keeps sessions in memory for the life of the process.
type SessionStore struct {
	clock   clockwork.Clock
	metrics *observability.Metrics
	idleTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store. A nil clock uses the real clock and
// a zero idleTTL uses DefaultSessionIdleTTL.
func NewSessionStore(clock clockwork.Clock, metrics *observability.Metrics, idleTTL time.Duration) *SessionStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	return &SessionStore{
		clock:    clock,
		metrics:  metrics,
		idleTTL:  idleTTL,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session with a new random ID.
func (st *SessionStore) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictIdle()

	s := newSession(uuid.NewString(), st.clock, st.metrics)
	st.sessions[s.id] = s
	return s
}

// Get returns an existing session.
func (st *SessionStore) Get(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	id = parsed.String()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictIdle()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// GetOrCreate returns the session for id, creating it if needed.
// id must be a UUID.
func (st *SessionStore) GetOrCreate(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	id = parsed.String()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.evictIdle()

	s, ok := st.sessions[id]
	if !ok {
		s = newSession(id, st.clock, st.metrics)
		st.sessions[id] = s
	}
	return s, nil
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep evicts idle sessions and returns how many were dropped.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.evictIdle()
}

// evictIdle drops sessions unused for longer than idleTTL. Callers must hold st.mu.
func (st *SessionStore) evictIdle() int {
	cutoff := st.clock.Now().Add(-st.idleTTL)
	evicted := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

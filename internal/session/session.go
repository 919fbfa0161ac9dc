package session

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

type Params struct {
	Columns int
	Rows    int
	Mines   int
}

// Session owns one board. All access to the board goes through [Session.Do],
// which serializes callers.
type Session struct {
	ID        int64
	StartedAt time.Time

	mu        sync.Mutex
	board     *mines.Board
	endedAt   time.Time
	touchedAt time.Time
}

// Do runs fn with exclusive access to the session's board.
func (s *Session) Do(fn func(b *mines.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = time.Now().UTC()
	return fn(s.board)
}

// EndedAt is zero while the game is running.
func (s *Session) EndedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

type Registry struct {
	logger *slog.Logger

	mu       sync.RWMutex
	rnd      *rand.Rand
	nextID   int64
	sessions map[int64]*Session
}

func NewRegistry(logger *slog.Logger, rnd *rand.Rand) *Registry {
	return &Registry{
		logger:   logger,
		rnd:      rnd,
		sessions: make(map[int64]*Session),
	}
}

// Create builds and initializes a new board and registers it.
func (r *Registry) Create(p Params) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// the board keeps its own source: r.rnd is shared between sessions
	board, err := mines.NewBoard(p.Columns, p.Rows, p.Mines, rand.New(
		rand.NewPCG(r.rnd.Uint64(), r.rnd.Uint64()),
	))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.nextID++
	s := &Session{
		ID:        r.nextID,
		StartedAt: now,
		board:     board,
		touchedAt: now,
	}
	board.Subscribe(func(_, to mines.GameState) {
		// called from inside Do, s.mu is already held
		if to.Terminal() {
			s.endedAt = time.Now().UTC()
			r.logger.Debug("game over",
				slog.Int64("session", s.ID), slog.String("state", to.String()))
		}
	})
	if err := board.Initialize(); err != nil {
		return nil, err
	}
	r.sessions[s.ID] = s

	r.logger.Debug("session created",
		slog.Int64("session", s.ID),
		slog.Int("columns", p.Columns),
		slog.Int("rows", p.Rows),
		slog.Int("mines", p.Mines),
	)
	return s, nil
}

func (r *Registry) Get(id int64) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune drops sessions that have not been touched since before cutoff and
// returns how many were removed.
func (r *Registry) Prune(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.logger.Info("pruned idle sessions", slog.Int("count", n), slog.Int("left", len(r.sessions)))
	}
	return n
}

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	ErrBadSessionID = errors.New("game session id must be an integer")
	ErrUnauthorized = errors.New("a valid token for this game is required")
)

type GameHandler struct {
	logger   *slog.Logger
	sessions *session.Registry
	jwt      *config.JWT
	ws       *config.WebSocket
	defaults *config.Board
}

func NewGameHandler(
	logger *slog.Logger,
	sessions *session.Registry,
	jwt *config.JWT,
	ws *config.WebSocket,
	defaults *config.Board,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		sessions: sessions,
		jwt:      jwt,
		ws:       ws,
		defaults: defaults,
	}

	return handler
}

// boardError maps errors returned by the engine to a response status.
func boardError(err error) int {
	switch {
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrBadDimensions),
		errors.Is(err, mines.ErrTooManyMines),
		errors.Is(err, mines.ErrNotInitialized):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, err := g.sessions.Create(session.Params(dto))
	if err != nil {
		status := boardError(err)
		if status == http.StatusInternalServerError {
			g.logger.Error("unable to create game session", slog.Any("error", err))
		}
		SendErrorOrLog(w, g.logger, status, err)
		return
	}

	token, err := g.jwt.SignGame(s.ID)
	if err != nil {
		g.sessions.Delete(s.ID)
		g.logger.Error("unable to sign game token", slog.Any("error", err))
		SendErrorOrLog(w, g.logger, http.StatusInternalServerError, fmt.Errorf("internal error"))
		return
	}

	var game *GameSessionDTO
	_ = s.Do(func(b *mines.Board) error {
		game = NewGameSessionDTO(s, b)
		return nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	SendJSONOrLog(w, g.logger, CreatedGameDTO{game, token})
}

func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, ErrBadSessionID)
		return nil, false
	}
	s, err := g.sessions.Get(id)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusNotFound, err)
		return nil, false
	}
	return s, true
}

// authorize checks that the request carries a token issued for s.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request, s *session.Session) bool {
	claims, ok := middleware.GameClaims(r.Context())
	if !ok || claims.GameID != s.ID {
		SendErrorOrLog(w, g.logger, http.StatusUnauthorized, ErrUnauthorized)
		return false
	}
	return true
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}

	var game *GameSessionDTO
	_ = s.Do(func(b *mines.Board) error {
		game = NewGameSessionDTO(s, b)
		return nil
	})
	game.setEndedAt(s.EndedAt())

	SendJSONOrLog(w, g.logger, game)
}

// move applies fn to the session's board and replies with the new state.
func (g GameHandler) move(w http.ResponseWriter, r *http.Request, fn func(b *mines.Board, x, y int) error) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	if !g.authorize(w, r, s) {
		return
	}

	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	var game *GameSessionDTO
	err = s.Do(func(b *mines.Board) error {
		if err := fn(b, pos.X, pos.Y); err != nil {
			return err
		}
		game = NewGameSessionDTO(s, b)
		return nil
	})
	if err != nil {
		status := boardError(err)
		if status == http.StatusInternalServerError {
			g.logger.Error("unable to apply move", slog.Int64("session", s.ID), slog.Any("error", err))
		}
		SendErrorOrLog(w, g.logger, status, err)
		return
	}
	game.setEndedAt(s.EndedAt())

	SendJSONOrLog(w, g.logger, game)
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, func(b *mines.Board, x, y int) error {
		_, err := b.Reveal(x, y)
		return err
	})
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, func(b *mines.Board, x, y int) error {
		_, err := b.ToggleFlag(x, y)
		return err
	})
}

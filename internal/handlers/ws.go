package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

// execute runs every command line of message against the board, stopping at
// the first bad command or once the game is over.
func execute(s *session.Session, message string) (*GameSessionDTO, error) {
	var game *GameSessionDTO
	err := s.Do(func(b *mines.Board) error {
		var err error
		for _, line := range command.Split(message) {
			var c command.Command
			if c, err = command.Parse(line); err != nil {
				break
			}
			if err = c.Apply(b); err != nil {
				break
			}
			if b.State().Terminal() {
				break
			}
		}
		game = NewGameSessionDTO(s, b)
		return err
	})
	game.setEndedAt(s.EndedAt())
	return game, err
}

type wsReply struct {
	*GameSessionDTO
	Error string `json:"error,omitempty"`
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	if !g.authorize(w, r, s) {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	log := g.logger.With(slog.Int64("session", s.ID))
	log.Debug("websocket connected")

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("unable to read message", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			log.Debug("closing on non-text message")
			return
		}

		game, err := execute(s, string(buf))
		reply := wsReply{GameSessionDTO: game}
		if err != nil {
			reply.Error = err.Error()
			log.Debug("rejected command", slog.Any("error", err))
		}

		conn.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			log.Error("unable to write json", slog.Any("error", err))
			return
		}
	}
}

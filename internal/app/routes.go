package app

import (
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.sessions, a.jwt, a.ws, a.board,
	)

	base := config.BasePath()
	a.router.HandleFunc("POST "+base+"/game", game.NewGame)
	a.router.HandleFunc("GET "+base+"/game/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST "+base+"/game/{id}/flag", game.Flag)
	a.router.HandleFunc("GET "+base+"/game/{id}/connect", game.ConnectWS)
}

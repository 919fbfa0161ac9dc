package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type App struct {
	logger   *slog.Logger
	router   *http.ServeMux
	sessions *session.Registry
	jwt      *config.JWT
	ws       *config.WebSocket
	board    *config.Board
	ttl      time.Duration
}

func New(logger *slog.Logger) *App {
	router := http.NewServeMux()

	app := &App{
		logger:   logger,
		router:   router,
		sessions: session.NewRegistry(logger, mines.NewRand()),
	}

	return app
}

func (a *App) configure() error {
	var err error

	if a.jwt, err = config.NewJWT(); err != nil {
		return fmt.Errorf("unable to load jwt config: %w", err)
	}
	if a.ws, err = config.NewWebSocket(); err != nil {
		return fmt.Errorf("unable to load websocket config: %w", err)
	}
	if a.board, err = config.NewBoard(); err != nil {
		return fmt.Errorf("unable to load board defaults: %w", err)
	}
	if a.ttl, err = config.SessionTTL(); err != nil {
		return err
	}
	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.logger, a.jwt),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is cancelled or the server fails.
func (a *App) Start(ctx context.Context) error {
	if err := a.configure(); err != nil {
		return err
	}

	a.loadRoutes()

	port := config.Port()
	server := &http.Server{
		Addr:    port,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.sessions.Janitor(gCtx, a.ttl, time.Minute)
	})

	a.logger.Info("server listening",
		slog.String("addr", port),
		slog.String("base path", config.BasePath()),
		slog.Int("columns", a.board.Columns),
		slog.Int("rows", a.board.Rows),
		slog.Int("mines", a.board.Mines),
	)

	return g.Wait()
}

package config

import (
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	WriteTimeout time.Duration
}

// NewWebSocket reads WS_ALLOWED_ORIGINS, a comma separated list of origins.
// Any origin is accepted when it is unset.
func NewWebSocket() (*WebSocket, error) {
	var origins []string
	if s, ok := os.LookupEnv("WS_ALLOWED_ORIGINS"); ok && s != "" {
		for _, o := range strings.Split(s, ",") {
			origins = append(origins, strings.TrimSpace(o))
		}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if origins == nil {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}

	ws := &WebSocket{
		Upgrader:     upgrader,
		WriteTimeout: 10 * time.Second,
	}

	return ws, nil
}

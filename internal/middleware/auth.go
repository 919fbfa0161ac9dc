package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

type CtxKey int

const (
	CtxGameClaims CtxKey = iota
)

// bearerToken reads the token from the Authorization header, falling back to
// the token query parameter since browsers cannot set headers on websockets.
func bearerToken(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		return strings.TrimSpace(token), ok
	}
	token := r.URL.Query().Get("token")
	return token, token != ""
}

// Auth stores valid game claims in the request context. Requests without a
// token pass through untouched; handlers decide whether they need one.
func Auth(log *slog.Logger, j *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := j.ParseGameClaims(token)
			if err != nil {
				log.Debug("rejected game token", slog.Any("error", err))
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxGameClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GameClaims(ctx context.Context) (*config.GameClaims, bool) {
	claims, ok := ctx.Value(CtxGameClaims).(*config.GameClaims)
	return claims, ok
}

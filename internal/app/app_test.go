package app

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	t.Setenv("JWT_PRIVATE_KEY", string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})))
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	t.Setenv("JWT_PUBLIC_KEY", string(pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pub,
	})))
	t.Setenv("APP_PORT", "127.0.0.1:0")
	t.Setenv("APP_BASE_PATH", "/api")
}

func newTestApp() *App {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRoutes(t *testing.T) {
	setupEnv(t)
	a := newTestApp()
	require.NoError(t, a.configure())
	a.loadRoutes()
	h := a.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/game?columns=4&rows=4&mines=2", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, a.sessions.Len())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/game/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/game/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfigureFailsWithoutKeys(t *testing.T) {
	t.Setenv("JWT_PRIVATE_KEY_FILE", "/nonexistent/key.pem")
	a := newTestApp()
	assert.Error(t, a.configure())
}

func TestStartStops(t *testing.T) {
	setupEnv(t)
	a := newTestApp()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Start(ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

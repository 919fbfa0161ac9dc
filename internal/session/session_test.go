package session

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func newTestRegistry() *Registry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRegistry(logger, rand.New(rand.NewPCG(1, 2)))
}

func TestCreateAndGet(t *testing.T) {
	r := newTestRegistry()

	s, err := r.Create(Params{Columns: 10, Rows: 10, Mines: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	assert.False(t, s.StartedAt.IsZero())
	assert.True(t, s.EndedAt().IsZero())

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	err = s.Do(func(b *mines.Board) error {
		assert.Equal(t, mines.Running, b.State())
		return nil
	})
	require.NoError(t, err)

	_, err = r.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvalid(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Create(Params{Columns: 2, Rows: 2, Mines: 4})
	assert.ErrorIs(t, err, mines.ErrTooManyMines)
	assert.Equal(t, 0, r.Len())
}

func TestEndedAtSetOnGameOver(t *testing.T) {
	r := newTestRegistry()
	s, err := r.Create(Params{Columns: 4, Rows: 4, Mines: 3})
	require.NoError(t, err)

	err = s.Do(func(b *mines.Board) error {
		for _, c := range b.Cells() {
			if c.HasMine() {
				_, err := b.Reveal(c.X(), c.Y())
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.False(t, s.EndedAt().IsZero())
}

func TestDelete(t *testing.T) {
	r := newTestRegistry()
	s, err := r.Create(Params{Columns: 3, Rows: 3, Mines: 1})
	require.NoError(t, err)
	r.Delete(s.ID)
	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrune(t *testing.T) {
	r := newTestRegistry()
	old, err := r.Create(Params{Columns: 3, Rows: 3, Mines: 1})
	require.NoError(t, err)
	fresh, err := r.Create(Params{Columns: 3, Rows: 3, Mines: 1})
	require.NoError(t, err)

	old.touchedAt = time.Now().UTC().Add(-2 * time.Hour)

	assert.Equal(t, 1, r.Prune(time.Now().UTC().Add(-time.Hour)))
	_, err = r.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestJanitorStopsWithContext(t *testing.T) {
	r := newTestRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Janitor(ctx, time.Hour, time.Millisecond)
	}()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestConcurrentMoves(t *testing.T) {
	r := newTestRegistry()
	s, err := r.Create(Params{Columns: 16, Rows: 16, Mines: 40})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for x := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range 16 {
				_ = s.Do(func(b *mines.Board) error {
					_, err := b.ToggleFlag(x, y)
					return err
				})
			}
		}()
	}
	wg.Wait()

	err = s.Do(func(b *mines.Board) error {
		assert.Equal(t, 256, b.FlagCount())
		return nil
	})
	require.NoError(t, err)
}

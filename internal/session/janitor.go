package session

import (
	"context"
	"time"
)

// Janitor prunes sessions idle for longer than ttl every interval until ctx
// is done.
func (r *Registry) Janitor(ctx context.Context, ttl, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Prune(now.UTC().Add(-ttl))
		}
	}
}

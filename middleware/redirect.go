package middleware

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redirectTTL = 15 * time.Minute

// RedirectStore remembers the path an unauthenticated visitor originally
// asked for, keyed by the SPA instance id. It writes to both an in-process
// map and Redis: the map serves the common case, Redis survives flows that
// lose in-memory state (federated login round-trips restart the SPA).
type RedirectStore struct {
	mu    sync.Mutex
	paths map[string]string
	rdb   *redis.Client // optional; nil in tests
}

func NewRedirectStore(rdb *redis.Client) *RedirectStore {
	return &RedirectStore{
		paths: make(map[string]string),
		rdb:   rdb,
	}
}

func redirectKey(clientID string) string {
	return "redirect:" + clientID
}

// Record stores the intended path. A Redis failure is logged, not surfaced:
// the in-memory copy still covers the session that recorded it.
func (s *RedirectStore) Record(ctx context.Context, clientID, path string) {
	s.mu.Lock()
	s.paths[clientID] = path
	s.mu.Unlock()

	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, redirectKey(clientID), path, redirectTTL).Err(); err != nil {
		log.Printf("⚠️ Failed to mirror redirect path to Redis: %v", err)
	}
}

// Consume returns the recorded path and clears it. The in-memory copy wins;
// Redis is the fallback when the process that recorded it is gone.
func (s *RedirectStore) Consume(ctx context.Context, clientID string) (string, bool) {
	s.mu.Lock()
	path, ok := s.paths[clientID]
	delete(s.paths, clientID)
	s.mu.Unlock()

	if s.rdb != nil {
		if !ok {
			stored, err := s.rdb.Get(ctx, redirectKey(clientID)).Result()
			if err == nil && stored != "" {
				path, ok = stored, true
			}
		}
		s.rdb.Del(ctx, redirectKey(clientID))
	}

	return path, ok
}

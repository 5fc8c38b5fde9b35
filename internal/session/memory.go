package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxMemorySessions bounds the in-process store; the oldest sessions are
// evicted first once it is full.
const maxMemorySessions = 10000

// MemoryStore keeps sessions in an expiring LRU. Sessions do not survive a
// restart and are not shared between replicas.
type MemoryStore struct {
	cache *expirable.LRU[string, string]
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: expirable.NewLRU[string, string](maxMemorySessions, nil, ttl)}
}

func (s *MemoryStore) Create(_ context.Context, userID string) (string, error) {
	token := uuid.NewString()
	s.cache.Add(token, userID)
	return token, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (string, error) {
	userID, ok := s.cache.Get(token)
	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.cache.Remove(token)
	return nil
}

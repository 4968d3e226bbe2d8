package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound the refresh token was never issued, already used or expired
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStore keeps issued refresh token ids until they are used or expire.
// Take returns the owner and removes the id in one step, so only one caller
// ever redeems a given id.
type TokenStore interface {
	Save(ctx context.Context, jti, userID string, ttl time.Duration) error
	Take(ctx context.Context, jti string) (string, error)
}

const refreshKeyPrefix = "token:refresh:"

// RedisTokenStore refresh tokens in redis under token:refresh:<jti>
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+jti, userID, ttl).Err()
}

func (s *RedisTokenStore) Take(ctx context.Context, jti string) (string, error) {
	userID, err := s.rdb.GetDel(ctx, refreshKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	return userID, err
}

// MemoryTokenStore process-local store, used when redis is not configured
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryToken
}

type memoryToken struct {
	userID  string
	expires time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[string]memoryToken)}
}

func (s *MemoryTokenStore) Save(_ context.Context, jti, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jti] = memoryToken{userID: userID, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Take(_ context.Context, jti string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[jti]
	if !ok {
		return "", ErrTokenNotFound
	}
	delete(s.entries, jti)
	if time.Now().After(e.expires) {
		return "", ErrTokenNotFound
	}
	return e.userID, nil
}

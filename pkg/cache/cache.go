package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLUnread = 1 * time.Minute  // unread badge (near-realtime)
	TTLDedup  = 10 * time.Minute // client de-duplication tokens
)

// Cache key prefixes
const (
	PrefixUnread = "unread:"
	PrefixDedup  = "dedup:"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Service is the Redis-backed cache for the messaging edge: the
// per-participant unread badge and the send de-duplication tokens.
type Service interface {
	GetUnreadTotal(ctx context.Context, participantKey string) (int, error)
	SetUnreadTotal(ctx context.Context, participantKey string, total int) error
	InvalidateUnread(ctx context.Context, participantKeys ...string) error

	// RememberDedupToken stores a client send token. Returns false when
	// the token was already seen inside the TTL window.
	RememberDedupToken(ctx context.Context, token string) (bool, error)
}

type service struct {
	client *redis.Client
}

// NewService creates a Redis cache service
func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) GetUnreadTotal(ctx context.Context, participantKey string) (int, error) {
	val, err := s.client.Get(ctx, PrefixUnread+participantKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (s *service) SetUnreadTotal(ctx context.Context, participantKey string, total int) error {
	return s.client.Set(ctx, PrefixUnread+participantKey, total, TTLUnread).Err()
}

func (s *service) InvalidateUnread(ctx context.Context, participantKeys ...string) error {
	if len(participantKeys) == 0 {
		return nil
	}
	keys := make([]string, len(participantKeys))
	for i, k := range participantKeys {
		keys[i] = PrefixUnread + k
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *service) RememberDedupToken(ctx context.Context, token string) (bool, error) {
	return s.client.SetNX(ctx, PrefixDedup+token, 1, TTLDedup).Result()
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// GuestCartTTL is how long an untouched guest cart survives. Every write
// refreshes the window.
const GuestCartTTL = 7 * 24 * time.Hour

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates the Redis-backed guest cart store. The key is the
// client-held guest token. A ttl of 0 uses GuestCartTTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	if ttl == 0 {
		ttl = GuestCartTTL
	}
	return &redisStore{rdb: rdb, ttl: ttl}
}

func guestKey(token string) string {
	return fmt.Sprintf("guest-cart:%s", token)
}

func (s *redisStore) Items(ctx context.Context, key string) ([]*Item, error) {
	val, err := s.rdb.Get(ctx, guestKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []*Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, fmt.Errorf("corrupt guest cart %s: %w", key, err)
	}
	return items, nil
}

func (s *redisStore) Save(ctx context.Context, key string, items []*Item) error {
	if len(items) == 0 {
		return s.Clear(ctx, key)
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, guestKey(key), payload, s.ttl).Err()
}

func (s *redisStore) Clear(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, guestKey(key)).Err()
}

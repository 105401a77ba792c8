package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"astra-cinemas/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache with Redis, for kiosk fleets sharing one
// cache server. Entries expire on their own; the backend listing is
// the refill path.
type RedisStore struct {
	client *redis.Client
}

const cacheTTL = 30 * 24 * time.Hour

func NewRedisStore(ctx context.Context, cfg utils.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func cacheKey(clienteID string) string {
	return "astra:tickets:" + clienteID
}

func (s *RedisStore) Load(ctx context.Context, clienteID string) ([]CachedTicket, error) {
	buf, err := s.client.Get(ctx, cacheKey(clienteID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ticket cache: %w", err)
	}

	var tickets []CachedTicket
	if err := json.Unmarshal(buf, &tickets); err != nil {
		return nil, fmt.Errorf("decode ticket cache: %w", err)
	}
	return tickets, nil
}

func (s *RedisStore) Save(ctx context.Context, clienteID string, tickets []CachedTicket) error {
	buf, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("encode ticket cache: %w", err)
	}
	if err := s.client.Set(ctx, cacheKey(clienteID), buf, cacheTTL).Err(); err != nil {
		return fmt.Errorf("save ticket cache: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

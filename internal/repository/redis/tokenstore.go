// Package redis backs the auth token allow-list with Redis so revocation
// survives restarts and is shared across instances.
package redis

import (
	"context"
	"fmt"
	"time"

	"family-tree-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(cfg config.RedisConfig) (*TokenStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &TokenStore{client: client}, nil
}

func (s *TokenStore) SaveRefresh(ctx context.Context, jti, memberID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKeyPrefix+jti, memberID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsRefreshValid(ctx context.Context, jti string) (bool, error) {
	_, err := s.client.Get(ctx, refreshKeyPrefix+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check refresh token: %w", err)
	}
	return true, nil
}

func (s *TokenStore) RevokeRefresh(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, refreshKeyPrefix+jti).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) Close() error {
	return s.client.Close()
}

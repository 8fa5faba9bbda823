package redis

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/workout-tracker/internal/repository"

	"github.com/go-redis/redis/v8"
)

var _ repository.KVStore = (*Store)(nil)

// Store keeps each document as a plain redis string under prefix+key.
type Store struct {
	redisClient *redis.Client
	prefix      string
}

func NewStore(redisClient *redis.Client, prefix string) *Store {
	return &Store{
		redisClient: redisClient,
		prefix:      prefix,
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.redisClient.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.redisClient.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

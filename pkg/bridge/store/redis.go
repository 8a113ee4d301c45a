package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the Redis-backed registry.
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string

	// Password is the Redis password (empty for no auth).
	Password string

	// DB is the Redis database number.
	DB int

	// TTL bounds how long an instance record lives without updates.
	// Zero means records never expire.
	TTL time.Duration

	// KeyPrefix namespaces registry keys (default "chartbridge:instance:").
	KeyPrefix string
}

// RedisStore is a Redis-backed registry for multi-instance server
// deployments, where any server replica may receive updates for a chart
// bound through another.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore creates a Redis-backed registry and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "chartbridge:instance:"
	}
	return &RedisStore{client: client, ttl: cfg.TTL, prefix: prefix}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Get retrieves an instance by id.
func (s *RedisStore) Get(ctx context.Context, id string) (*Instance, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get instance: %w", err)
	}

	var inst Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("parse instance: %w", err)
	}
	return &inst, nil
}

// Set stores an instance, refreshing its TTL.
func (s *RedisStore) Set(ctx context.Context, inst *Instance) error {
	data, err := json.Marshal(inst)
	if err != nil {
		return fmt.Errorf("marshal instance: %w", err)
	}

	if err := s.client.Set(ctx, s.key(inst.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set instance: %w", err)
	}
	return nil
}

// Delete removes an instance.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete instance: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

// Stores persists device-scoped key-value pairs in Redis.
// Key format: fleetwatch:<device_id>:<key>
type Stores struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStores returns Stores whose entries expire after ttl (0 keeps them).
func NewStores(client *redis.Client, ttl time.Duration) *Stores {
	return &Stores{client: client, ttl: ttl}
}

func (s *Stores) ForDevice(deviceID string) ports.KeyValueStore {
	return &deviceStore{client: s.client, ttl: s.ttl, prefix: "fleetwatch:" + deviceID + ":"}
}

type deviceStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func (d *deviceStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := d.client.Get(ctx, d.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (d *deviceStore) Set(ctx context.Context, key, value string) error {
	if err := d.client.Set(ctx, d.prefix+key, value, d.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (d *deviceStore) Delete(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, d.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TagClaimer collapses notifications that share a tag, backed by Redis.
// Key format: notify:<tag>
type TagClaimer struct {
	client *redis.Client
}

// NewTagClaimer creates a TagClaimer wrapping the given Redis client.
func NewTagClaimer(client *redis.Client) *TagClaimer {
	return &TagClaimer{client: client}
}

// Claim reports whether this is the first use of tag within ttl.
func (d *TagClaimer) Claim(ctx context.Context, tag string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(tag), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim tag: %w", err)
	}
	return ok, nil
}

func (d *TagClaimer) key(tag string) string {
	return "notify:" + tag
}

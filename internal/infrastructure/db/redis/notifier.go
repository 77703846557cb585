package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// NotificationChannel is the pub/sub channel supervisor consoles listen on.
const NotificationChannel = "fleetwatch:notifications"

// Notifier publishes notifications on a Redis channel. Delivery is
// fire-and-forget: subscribers that are not connected miss the message.
type Notifier struct {
	client *redis.Client
}

func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) Publish(ctx context.Context, note domain.Notification) error {
	b, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.client.Publish(ctx, NotificationChannel, b).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

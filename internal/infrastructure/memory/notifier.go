package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
)

// LogNotifier writes notifications to the log instead of a broker.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Publish(_ context.Context, note domain.Notification) error {
	n.log.Info().
		Str("id", note.ID).
		Str("tag", note.Tag).
		Str("driver", note.DriverID).
		Msg(note.Title)
	return nil
}

// TagClaimer remembers claimed tags until they expire.
type TagClaimer struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewTagClaimer() *TagClaimer {
	return &TagClaimer{expires: make(map[string]time.Time), now: time.Now}
}

func (c *TagClaimer) Claim(_ context.Context, tag string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if exp, ok := c.expires[tag]; ok && now.Before(exp) {
		return false, nil
	}
	c.expires[tag] = now.Add(ttl)
	return true, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guardian-ae/fleetwatch/internal/core/domain"
	"github.com/guardian-ae/fleetwatch/internal/core/ports"
)

const defaultNoticeWindow = 30 * time.Second

// NotificationService sends emergency notifications on a best-effort basis.
// Notifications sharing a tag collapse into one within the dedup window.
type NotificationService struct {
	notifier ports.Notifier
	claimer  ports.TagClaimer
	window   time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewNotificationService returns a service publishing through notifier.
func NewNotificationService(notifier ports.Notifier, claimer ports.TagClaimer, window time.Duration, log zerolog.Logger) *NotificationService {
	if window <= 0 {
		window = defaultNoticeWindow
	}
	return &NotificationService{
		notifier: notifier,
		claimer:  claimer,
		window:   window,
		log:      log,
		now:      time.Now,
	}
}

// Emergency raises the emergency alert of a driver.
func (s *NotificationService) Emergency(ctx context.Context, driver *domain.User) (*domain.Notification, error) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Tag:       "emergency-alert:" + driver.ID,
		Title:     "EMERGENCY ALERT SENT!",
		Body:      fmt.Sprintf("Driver: %s\nLocation: %s\nEmergency services notified.", driver.Name, driver.Location),
		DriverID:  driver.ID,
		CreatedAt: s.now().UTC(),
	}

	claimed, err := s.claimer.Claim(ctx, n.Tag, s.window)
	if err != nil {
		s.log.Warn().Err(err).Str("tag", n.Tag).Msg("notification dedup failed, sending anyway")
	} else if !claimed {
		return nil, domain.ErrDuplicateNotice
	}

	if err := s.notifier.Publish(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("tag", n.Tag).Msg("notification not delivered")
	}

	s.log.Info().
		Str("driver", driver.ID).
		Str("notification", n.ID).
		Msg("emergency notification raised")
	return &n, nil
}

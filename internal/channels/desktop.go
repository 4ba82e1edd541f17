package channels

import (
	"context"
	"sync"

	"github.com/mentorhub/dashboard-service/internal/events"
	"github.com/mentorhub/dashboard-service/internal/models"
)

type permissionState int

const (
	permissionUnknown permissionState = iota
	permissionGranted
	permissionDenied
)

// DesktopPushChannel forwards notifications to the push topic consumed by
// the desktop notification gateway. The gateway requires a one-time
// registration, performed lazily on the first delivery: if registration
// fails the channel marks itself denied and silently skips every later
// delivery. There is no re-request once denied.
type DesktopPushChannel struct {
	publisher events.EventPublisher
	topic     string

	mu         sync.Mutex
	permission permissionState
}

func NewDesktopPushChannel(publisher events.EventPublisher, topic string) *DesktopPushChannel {
	return &DesktopPushChannel{
		publisher: publisher,
		topic:     topic,
	}
}

func (c *DesktopPushChannel) Name() string {
	return "desktop"
}

func (c *DesktopPushChannel) Deliver(ctx context.Context, n models.Notification) error {
	if !c.ensurePermission(ctx) {
		return nil
	}

	event := events.NewEvent(events.EventNotificationCreated, events.NotificationCreatedEvent{
		NotificationID: n.ID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		TargetRoles:    n.TargetRoles,
		Sender:         n.Sender,
		CreatedAt:      n.CreatedAt,
	})
	return c.publisher.Publish(ctx, c.topic, event)
}

// ensurePermission runs the lazy registration handshake. It reports whether
// deliveries may proceed.
func (c *DesktopPushChannel) ensurePermission(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.permission {
	case permissionGranted:
		return true
	case permissionDenied:
		return false
	}

	handshake := events.NewEvent(events.EventNotificationCreated, map[string]string{"action": "register"})
	if err := c.publisher.Publish(ctx, c.topic, handshake); err != nil {
		c.permission = permissionDenied
		return false
	}
	c.permission = permissionGranted
	return true
}

var _ Channel = (*DesktopPushChannel)(nil)

// Package channels implements the notification delivery side channels: the
// audible chime, the desktop push and the email mail-out. Deliveries are
// detached background tasks; the notification store has already committed
// its update by the time any channel runs, and a channel failure is logged
// and dropped, never retried or surfaced.
package channels

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// Channel delivers one notification over a single side channel.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, n models.Notification) error
}

const deliverTimeout = 10 * time.Second

// Dispatcher fans a notification out to the channels enabled by the current
// settings, each in its own goroutine.
type Dispatcher struct {
	chime   Channel
	desktop Channel
	email   Channel
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher builds a dispatcher. Any channel may be nil, which disables
// it regardless of settings.
func NewDispatcher(logger *slog.Logger, chime, desktop, email Channel) *Dispatcher {
	return &Dispatcher{
		chime:   chime,
		desktop: desktop,
		email:   email,
		logger:  logger,
	}
}

// Dispatch launches a delivery per enabled channel and returns immediately.
func (d *Dispatcher) Dispatch(n models.Notification, settings models.NotificationSettings) {
	if settings.SoundEnabled && d.chime != nil {
		d.deliver(d.chime, n)
	}
	if settings.DesktopEnabled && d.desktop != nil {
		d.deliver(d.desktop, n)
	}
	if settings.EmailEnabled && d.email != nil {
		d.deliver(d.email, n)
	}
}

// Flush blocks until every in-flight delivery has finished. Called on
// shutdown and by tests.
func (d *Dispatcher) Flush() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ch Channel, n models.Notification) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()

		if err := ch.Deliver(ctx, n); err != nil {
			d.logger.Warn("Notification side channel delivery failed",
				"channel", ch.Name(),
				"notification_id", n.ID,
				"error", err)
		}
	}()
}

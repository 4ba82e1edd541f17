package channels

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentorhub/dashboard-service/internal/events"
	"github.com/mentorhub/dashboard-service/internal/models"
)

type recordingChannel struct {
	name string
	err  error

	mu        sync.Mutex
	delivered []models.Notification
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Deliver(ctx context.Context, n models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivered = append(c.delivered, n)
	return c.err
}

func (c *recordingChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.delivered)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestDispatch_SettingsGateChannels(t *testing.T) {
	chime := &recordingChannel{name: "chime"}
	desktop := &recordingChannel{name: "desktop"}
	email := &recordingChannel{name: "email"}
	d := NewDispatcher(testLogger(), chime, desktop, email)

	n := models.Notification{ID: "1", Title: "T"}
	d.Dispatch(n, models.NotificationSettings{SoundEnabled: true, DesktopEnabled: false, EmailEnabled: true})
	d.Flush()

	assert.Equal(t, 1, chime.count())
	assert.Equal(t, 0, desktop.count(), "disabled channel never sees the notification")
	assert.Equal(t, 1, email.count())
}

func TestDispatch_FailuresAreSwallowed(t *testing.T) {
	failing := &recordingChannel{name: "chime", err: errors.New("autoplay blocked")}
	d := NewDispatcher(testLogger(), failing, nil, nil)

	// Must not panic or propagate anything.
	d.Dispatch(models.Notification{ID: "1"}, models.NotificationSettings{SoundEnabled: true})
	d.Flush()

	assert.Equal(t, 1, failing.count())
}

func TestDispatch_NilChannelsAreSkipped(t *testing.T) {
	d := NewDispatcher(testLogger(), nil, nil, nil)
	d.Dispatch(models.Notification{ID: "1"}, models.NotificationSettings{
		SoundEnabled:   true,
		DesktopEnabled: true,
		EmailEnabled:   true,
	})
	d.Flush()
}

func TestDesktopPush_LazyPermission(t *testing.T) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	ch := NewDesktopPushChannel(publisher, "notifications.push")
	ctx := context.Background()

	n := models.Notification{ID: "42", Title: "T", Type: models.NotificationInfo}
	assert.NoError(t, ch.Deliver(ctx, n))

	// First delivery performs the registration handshake, then the payload.
	published := publisher.PublishedEvents()
	assert.Len(t, published, 2)

	assert.NoError(t, ch.Deliver(ctx, n))
	assert.Len(t, publisher.PublishedEvents(), 3, "no second handshake once granted")
}

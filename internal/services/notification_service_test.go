package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/dashboard-service/internal/channels"
	"github.com/mentorhub/dashboard-service/internal/events"
	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/store"
	"github.com/mentorhub/dashboard-service/internal/validator"
)

type captureChannel struct {
	name string

	mu        sync.Mutex
	delivered []models.Notification
}

func (c *captureChannel) Name() string { return c.name }

func (c *captureChannel) Deliver(_ context.Context, n models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivered = append(c.delivered, n)
	return nil
}

func (c *captureChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.delivered)
}

func newTestNotificationService(t *testing.T) (NotificationService, *events.MockEventPublisher, *captureChannel, *captureChannel, *channels.Dispatcher) {
	t.Helper()
	logger := slog.Default()
	st := store.New(context.Background(), store.NewMemoryBackend(), logger)
	publisher := events.NewMockEventPublisher(logger)
	chime := &captureChannel{name: "chime"}
	email := &captureChannel{name: "email"}
	dispatcher := channels.NewDispatcher(logger, chime, nil, email)
	svc := NewNotificationService(st, dispatcher, publisher, logger, validator.New(), "dashboard.events")
	return svc, publisher, chime, email, dispatcher
}

func TestNotificationService_Notify(t *testing.T) {
	svc, publisher, chime, email, dispatcher := newTestNotificationService(t)
	ctx := context.Background()

	n, err := svc.Notify(ctx, &NotifyRequest{
		Title:   "Session completed",
		Message: "Asha finished session 5",
		Type:    models.NotificationSuccess,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)

	assert.Equal(t, 1, svc.UnreadCount(ctx))
	require.Len(t, svc.List(ctx), 1)

	// The created event is unconditional.
	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventNotificationCreated, published[0].Type)
	assert.Equal(t, []string{"dashboard.events"}, publisher.PublishedTopics())

	// Default settings: sound on, email off.
	dispatcher.Flush()
	assert.Equal(t, 1, chime.count())
	assert.Equal(t, 0, email.count())
}

func TestNotificationService_Notify_EmailEnabled(t *testing.T) {
	svc, _, chime, email, dispatcher := newTestNotificationService(t)
	ctx := context.Background()

	enabled := true
	svc.UpdateSettings(ctx, models.NotificationSettingsPatch{EmailEnabled: &enabled})

	_, err := svc.Notify(ctx, &NotifyRequest{
		Title:   "Payment received",
		Message: "Ben paid in full",
		Type:    models.NotificationInfo,
	})
	require.NoError(t, err)

	dispatcher.Flush()
	assert.Equal(t, 1, chime.count())
	assert.Equal(t, 1, email.count())
}

func TestNotificationService_Notify_SoundDisabled(t *testing.T) {
	svc, _, chime, _, dispatcher := newTestNotificationService(t)
	ctx := context.Background()

	disabled := false
	svc.UpdateSettings(ctx, models.NotificationSettingsPatch{SoundEnabled: &disabled})

	_, err := svc.Notify(ctx, &NotifyRequest{
		Title:   "Quiet",
		Message: "no chime expected",
		Type:    models.NotificationInfo,
	})
	require.NoError(t, err)

	dispatcher.Flush()
	assert.Equal(t, 0, chime.count())
}

func TestNotificationService_Notify_InvalidType(t *testing.T) {
	svc, publisher, _, _, _ := newTestNotificationService(t)

	_, err := svc.Notify(context.Background(), &NotifyRequest{
		Title:   "Bad",
		Message: "bad type",
		Type:    models.NotificationType("shout"),
	})
	require.Error(t, err)
	assert.Empty(t, publisher.PublishedEvents())
	assert.Equal(t, 0, svc.UnreadCount(context.Background()))
}

func TestNotificationService_ReadLifecycle(t *testing.T) {
	svc, _, _, _, _ := newTestNotificationService(t)
	ctx := context.Background()

	first, err := svc.Notify(ctx, &NotifyRequest{Title: "A", Message: "a", Type: models.NotificationInfo})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, &NotifyRequest{Title: "B", Message: "b", Type: models.NotificationInfo})
	require.NoError(t, err)

	assert.Equal(t, 2, svc.UnreadCount(ctx))

	svc.MarkAsRead(ctx, first.ID)
	assert.Equal(t, 1, svc.UnreadCount(ctx))

	svc.MarkAllAsRead(ctx)
	assert.Equal(t, 0, svc.UnreadCount(ctx))
	assert.Len(t, svc.List(ctx), 2)

	svc.Clear(ctx)
	assert.Empty(t, svc.List(ctx))
}

func TestNotificationService_RoleTargeting(t *testing.T) {
	svc, _, _, _, _ := newTestNotificationService(t)
	ctx := context.Background()

	_, err := svc.Notify(ctx, &NotifyRequest{
		Title:       "Mentor only",
		Message:     "for mentors",
		Type:        models.NotificationWarning,
		TargetRoles: []string{string(models.RoleMentor)},
	})
	require.NoError(t, err)
	_, err = svc.Notify(ctx, &NotifyRequest{
		Title:   "General",
		Message: "for everyone",
		Type:    models.NotificationInfo,
	})
	require.NoError(t, err)

	assert.Len(t, svc.ListForRole(ctx, models.RoleMentor), 2)
	assert.Len(t, svc.ListForRole(ctx, models.RoleStudent), 1)
}

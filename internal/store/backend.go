package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// Persistence keys. These mirror the client-side storage layout the service
// replaced, so exported state stays interchangeable.
const (
	KeyNotifications = "notifications"
	KeySettings      = "notificationSettings"
)

// ErrNotPersisted is returned by a backend when no state has been written yet.
var ErrNotPersisted = errors.New("store: no persisted state")

// Backend persists the notification store's state. Implementations must
// tolerate concurrent calls; the store serializes writes under its own lock.
type Backend interface {
	LoadNotifications(ctx context.Context) ([]models.Notification, error)
	LoadSettings(ctx context.Context) (models.NotificationSettings, error)
	SaveNotifications(ctx context.Context, list []models.Notification) error
	SaveSettings(ctx context.Context, settings models.NotificationSettings) error
}

// RedisBackend stores the notification list and settings as JSON blobs.
// Timestamps round-trip through RFC 3339 (time.Time's JSON encoding), which
// preserves ordering and sub-second precision.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) key(k string) string {
	if b.prefix == "" {
		return k
	}
	return b.prefix + ":" + k
}

func (b *RedisBackend) LoadNotifications(ctx context.Context) ([]models.Notification, error) {
	raw, err := b.client.Get(ctx, b.key(KeyNotifications)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotPersisted
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	var list []models.Notification
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return list, nil
}

func (b *RedisBackend) LoadSettings(ctx context.Context) (models.NotificationSettings, error) {
	settings := models.DefaultNotificationSettings()

	raw, err := b.client.Get(ctx, b.key(KeySettings)).Bytes()
	if errors.Is(err, redis.Nil) {
		return settings, ErrNotPersisted
	}
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.DefaultNotificationSettings(), fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

func (b *RedisBackend) SaveNotifications(ctx context.Context, list []models.Notification) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode notifications: %w", err)
	}
	return b.client.Set(ctx, b.key(KeyNotifications), raw, 0).Err()
}

func (b *RedisBackend) SaveSettings(ctx context.Context, settings models.NotificationSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return b.client.Set(ctx, b.key(KeySettings), raw, 0).Err()
}

// MemoryBackend keeps state in process memory. Used in tests and as the
// fallback when no Redis address is configured.
type MemoryBackend struct {
	notifications []byte
	settings      []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) LoadNotifications(ctx context.Context) ([]models.Notification, error) {
	if b.notifications == nil {
		return nil, ErrNotPersisted
	}
	var list []models.Notification
	if err := json.Unmarshal(b.notifications, &list); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return list, nil
}

func (b *MemoryBackend) LoadSettings(ctx context.Context) (models.NotificationSettings, error) {
	if b.settings == nil {
		return models.DefaultNotificationSettings(), ErrNotPersisted
	}
	settings := models.DefaultNotificationSettings()
	if err := json.Unmarshal(b.settings, &settings); err != nil {
		return models.DefaultNotificationSettings(), fmt.Errorf("failed to decode settings: %w", err)
	}
	return settings, nil
}

func (b *MemoryBackend) SaveNotifications(ctx context.Context, list []models.Notification) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	b.notifications = raw
	return nil
}

func (b *MemoryBackend) SaveSettings(ctx context.Context, settings models.NotificationSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	b.settings = raw
	return nil
}

// Corrupt seeds the backend with unparseable payloads so hydration failure
// paths can be exercised.
func (b *MemoryBackend) Corrupt() {
	b.notifications = []byte("{not json")
	b.settings = []byte("{not json")
}

var _ Backend = (*RedisBackend)(nil)
var _ Backend = (*MemoryBackend)(nil)

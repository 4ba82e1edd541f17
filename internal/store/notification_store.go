// Package store holds the in-process notification state: the ordered event
// list, per-user delivery settings and their persistence. It is an explicit
// state container handed to the rest of the application, not a package-level
// singleton.
package store

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// NotificationStore maintains the session's notification list, newest first.
// All mutations are synchronous and atomic: the slice is replaced wholesale
// under the lock, so readers never observe a partially applied update.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []models.Notification
	settings      models.NotificationSettings

	backend Backend
	logger  *slog.Logger

	lastID int64 // keeps timestamp-derived IDs unique within one instant
}

// New builds a store hydrated from the backend. A missing or unparseable
// snapshot is logged and replaced by an empty list / default settings;
// hydration is never fatal.
func New(ctx context.Context, backend Backend, logger *slog.Logger) *NotificationStore {
	s := &NotificationStore{
		backend:  backend,
		settings: models.DefaultNotificationSettings(),
		logger:   logger,
	}

	list, err := backend.LoadNotifications(ctx)
	switch {
	case err == ErrNotPersisted:
		// first run, nothing to restore
	case err != nil:
		logger.Warn("Failed to restore notifications, starting empty", "error", err)
	default:
		s.notifications = list
	}

	settings, err := backend.LoadSettings(ctx)
	switch {
	case err == ErrNotPersisted:
		// keep the defaults
	case err != nil:
		logger.Warn("Failed to restore notification settings, using defaults", "error", err)
	default:
		s.settings = settings
	}

	return s
}

// Add creates a notification with read=false and prepends it to the list.
// The new entry is persisted before Add returns; a persistence failure is
// logged but does not undo the in-memory update.
func (s *NotificationStore) Add(ctx context.Context, title, message string, typ models.NotificationType, targetRoles []string, sender *string) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	n := models.Notification{
		ID:          s.nextID(now),
		Title:       title,
		Message:     message,
		Type:        typ,
		Read:        false,
		CreatedAt:   now,
		TargetRoles: targetRoles,
		Sender:      sender,
	}

	next := make([]models.Notification, 0, len(s.notifications)+1)
	next = append(next, n)
	next = append(next, s.notifications...)
	s.notifications = next

	s.persistNotifications(ctx)
	return n
}

// MarkAsRead flips the matching entry to read. Unknown IDs are a no-op;
// there is no way back to unread.
func (s *NotificationStore) MarkAsRead(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	next := make([]models.Notification, len(s.notifications))
	for i, n := range s.notifications {
		if n.ID == id && !n.Read {
			n.Read = true
			changed = true
		}
		next[i] = n
	}
	if !changed {
		return
	}

	s.notifications = next
	s.persistNotifications(ctx)
}

// MarkAllAsRead flips every entry to read, leaving the list length unchanged.
func (s *NotificationStore) MarkAllAsRead(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Notification, len(s.notifications))
	for i, n := range s.notifications {
		n.Read = true
		next[i] = n
	}
	s.notifications = next

	s.persistNotifications(ctx)
}

// Clear drops every notification. There is no single-item delete.
func (s *NotificationStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = nil
	s.persistNotifications(ctx)
}

// UpdateSettings shallow-merges the patch into the current settings and
// returns the result.
func (s *NotificationStore) UpdateSettings(ctx context.Context, patch models.NotificationSettingsPatch) models.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = patch.Apply(s.settings)
	if err := s.backend.SaveSettings(ctx, s.settings); err != nil {
		s.logger.Error("Failed to persist notification settings", "error", err)
	}
	return s.settings
}

// Settings returns the current delivery settings.
func (s *NotificationStore) Settings() models.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UnreadCount recomputes the number of unread notifications on every call;
// it is never cached.
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// List returns a copy of the notification list, newest first.
func (s *NotificationStore) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// ListForRole returns the notifications visible to the given role, newest
// first. Untargeted notifications are visible to everyone.
func (s *NotificationStore) ListForRole(role models.UserRole) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if n.TargetsRole(role) {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of stored notifications.
func (s *NotificationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notifications)
}

// nextID derives an ID from the creation timestamp, bumping by one when two
// notifications land on the same nanosecond. Callers hold the write lock.
func (s *NotificationStore) nextID(now time.Time) string {
	id := now.UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// persistNotifications writes the current list through the backend. Callers
// hold the write lock.
func (s *NotificationStore) persistNotifications(ctx context.Context) {
	if err := s.backend.SaveNotifications(ctx, s.notifications); err != nil {
		s.logger.Error("Failed to persist notifications", "error", err)
	}
}

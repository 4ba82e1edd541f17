package services

import (
	"context"
	"log/slog"

	"github.com/mentorhub/dashboard-service/internal/channels"
	"github.com/mentorhub/dashboard-service/internal/events"
	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/store"
	"github.com/mentorhub/dashboard-service/internal/validator"
)

// NotificationService fronts the notification store: creation always lands in
// the store and on the event bus, and the settings-gated side channels fire
// afterwards without blocking the caller.
type NotificationService interface {
	Notify(ctx context.Context, req *NotifyRequest) (*models.Notification, error)
	List(ctx context.Context) []models.Notification
	ListForRole(ctx context.Context, role models.UserRole) []models.Notification
	UnreadCount(ctx context.Context) int
	MarkAsRead(ctx context.Context, id string)
	MarkAllAsRead(ctx context.Context)
	Clear(ctx context.Context)
	Settings(ctx context.Context) models.NotificationSettings
	UpdateSettings(ctx context.Context, patch models.NotificationSettingsPatch) models.NotificationSettings
}

type NotifyRequest struct {
	Title       string                  `json:"title" validate:"required,max=200"`
	Message     string                  `json:"message" validate:"required,max=2000"`
	Type        models.NotificationType `json:"type" validate:"required,notification_type"`
	TargetRoles []string                `json:"target_roles,omitempty" validate:"omitempty,dive,oneof=all admin coordinator mentor student"`
	Sender      *string                 `json:"sender,omitempty"`
}

type notificationService struct {
	store      *store.NotificationStore
	dispatcher *channels.Dispatcher
	publisher  events.EventPublisher
	logger     *slog.Logger
	validator  *validator.Validator
	eventTopic string
}

func NewNotificationService(
	st *store.NotificationStore,
	dispatcher *channels.Dispatcher,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
	eventTopic string,
) NotificationService {
	return &notificationService{
		store:      st,
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		validator:  v,
		eventTopic: eventTopic,
	}
}

func (s *notificationService) Notify(ctx context.Context, req *NotifyRequest) (*models.Notification, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	n := s.store.Add(ctx, req.Title, req.Message, req.Type, req.TargetRoles, req.Sender)
	s.logger.Info("Notification created", "notification_id", n.ID, "type", n.Type)

	// The created event always goes out; side channels honor settings.
	if s.publisher != nil {
		evt := events.NewEvent(events.EventNotificationCreated, events.NotificationCreatedEvent{
			NotificationID: n.ID,
			Title:          n.Title,
			Message:        n.Message,
			Type:           n.Type,
			TargetRoles:    n.TargetRoles,
			Sender:         n.Sender,
			CreatedAt:      n.CreatedAt,
		})
		if err := s.publisher.Publish(ctx, s.eventTopic, evt); err != nil {
			s.logger.Warn("Failed to publish notification event", "notification_id", n.ID, "error", err)
		}
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(n, s.store.Settings())
	}

	return &n, nil
}

func (s *notificationService) List(ctx context.Context) []models.Notification {
	return s.store.List()
}

func (s *notificationService) ListForRole(ctx context.Context, role models.UserRole) []models.Notification {
	return s.store.ListForRole(role)
}

func (s *notificationService) UnreadCount(ctx context.Context) int {
	return s.store.UnreadCount()
}

func (s *notificationService) MarkAsRead(ctx context.Context, id string) {
	s.store.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context) {
	s.store.MarkAllAsRead(ctx)
}

func (s *notificationService) Clear(ctx context.Context) {
	s.store.Clear(ctx)
}

func (s *notificationService) Settings(ctx context.Context) models.NotificationSettings {
	return s.store.Settings()
}

func (s *notificationService) UpdateSettings(ctx context.Context, patch models.NotificationSettingsPatch) models.NotificationSettings {
	return s.store.UpdateSettings(ctx, patch)
}

package models

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// TargetAll in a notification's target roles makes it visible to everyone.
const TargetAll = "all"

// Notification is a single in-app event. It is held in the notification
// store and serialized as JSON for persistence; it is not a database row.
type Notification struct {
	ID          string           `json:"id"` // timestamp-derived, unique per store
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
	TargetRoles []string         `json:"target_roles,omitempty"` // role names or "all"
	Sender      *string          `json:"sender,omitempty"`
}

// TargetsRole reports whether the notification should be shown to the given
// role. A notification with no target roles is visible to everyone.
func (n Notification) TargetsRole(role UserRole) bool {
	if len(n.TargetRoles) == 0 {
		return true
	}
	for _, t := range n.TargetRoles {
		if t == TargetAll || t == string(role) {
			return true
		}
	}
	return false
}

// NotificationSettings gates the delivery side channels. The in-app list is
// always written regardless of these flags.
type NotificationSettings struct {
	SoundEnabled   bool `json:"sound_enabled"`
	DesktopEnabled bool `json:"desktop_enabled"`
	EmailEnabled   bool `json:"email_enabled"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		SoundEnabled:   true,
		DesktopEnabled: true,
		EmailEnabled:   false,
	}
}

// NotificationSettingsPatch carries a partial settings update; nil fields
// keep their current value (shallow merge).
type NotificationSettingsPatch struct {
	SoundEnabled   *bool `json:"sound_enabled,omitempty"`
	DesktopEnabled *bool `json:"desktop_enabled,omitempty"`
	EmailEnabled   *bool `json:"email_enabled,omitempty"`
}

// Apply merges the patch into s and returns the result.
func (p NotificationSettingsPatch) Apply(s NotificationSettings) NotificationSettings {
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.DesktopEnabled != nil {
		s.DesktopEnabled = *p.DesktopEnabled
	}
	if p.EmailEnabled != nil {
		s.EmailEnabled = *p.EmailEnabled
	}
	return s
}

// ValidNotificationTypes lists the accepted notification types.
func ValidNotificationTypes() []NotificationType {
	return []NotificationType{
		NotificationInfo,
		NotificationSuccess,
		NotificationWarning,
		NotificationError,
	}
}

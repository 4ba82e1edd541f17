package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// EventType represents the dashboard domain events published to the bus.
type EventType string

const (
	// Notification events
	EventNotificationCreated EventType = "notification.created"

	// Student lifecycle events
	EventStudentEnrolled EventType = "student.enrolled"
	EventStudentUpdated  EventType = "student.updated"
	EventSessionRecorded EventType = "student.session_recorded"
	EventPaymentRecorded EventType = "student.payment_recorded"

	// Assignment events
	EventMentorAssigned  EventType = "assignment.mentor"
	EventPackageAssigned EventType = "assignment.package"

	// Cohort events
	EventBatchCreated EventType = "batch.created"
)

const (
	eventSource  = "dashboard-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by every published event.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewEvent wraps a payload in the standard envelope.
func NewEvent(typ EventType, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      typ,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a unique event identifier.
func GenerateEventID() string {
	return watermill.NewUUID()
}

// Event payloads

type NotificationCreatedEvent struct {
	NotificationID string                  `json:"notification_id"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	Type           models.NotificationType `json:"notification_type"`
	TargetRoles    []string                `json:"target_roles,omitempty"`
	Sender         *string                 `json:"sender,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

type StudentEnrolledEvent struct {
	StudentID     string  `json:"student_id"`
	Name          string  `json:"name"`
	MentorID      *string `json:"mentor_id,omitempty"`
	BatchID       *uint   `json:"batch_id,omitempty"`
	PackageID     *uint   `json:"package_id,omitempty"`
	TotalSessions int     `json:"total_sessions"`
}

type StudentUpdatedEvent struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

type SessionRecordedEvent struct {
	StudentID         string    `json:"student_id"`
	SessionsCompleted int       `json:"sessions_completed"`
	SessionsRemaining int       `json:"sessions_remaining"`
	Progress          int       `json:"progress"`
	RecordedAt        time.Time `json:"recorded_at"`
}

type PaymentRecordedEvent struct {
	StudentID      string    `json:"student_id"`
	Amount         float64   `json:"amount"`
	PaidAmount     float64   `json:"paid_amount"`
	PendingPayment float64   `json:"pending_payment"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type MentorAssignedEvent struct {
	StudentID  string `json:"student_id"`
	MentorID   string `json:"mentor_id"`
	AssignedBy string `json:"assigned_by"`
}

type PackageAssignedEvent struct {
	StudentID  string `json:"student_id"`
	PackageID  uint   `json:"package_id"`
	AssignedBy string `json:"assigned_by"`
}

type BatchCreatedEvent struct {
	BatchID       uint    `json:"batch_id"`
	Name          string  `json:"name"`
	CoordinatorID *string `json:"coordinator_id,omitempty"`
}

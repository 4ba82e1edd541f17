package models

import (
	"time"

	"gorm.io/gorm"
)

type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

type Student struct {
	ID    string  `json:"id" gorm:"primaryKey;size:64"`
	Name  string  `json:"name" gorm:"not null;size:100"`
	Email string  `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone *string `json:"phone,omitempty" gorm:"size:20"`

	// Assignment
	MentorID  *string `json:"mentor_id,omitempty" gorm:"index;size:64"`
	BatchID   *uint   `json:"batch_id,omitempty" gorm:"index"`
	PackageID *uint   `json:"package_id,omitempty" gorm:"index"`

	// Scheduling
	TotalSessions     int        `json:"total_sessions" gorm:"default:0"`
	SessionsCompleted int        `json:"sessions_completed" gorm:"default:0"`
	SessionsRemaining int        `json:"sessions_remaining" gorm:"default:0"`
	SessionDuration   float64    `json:"session_duration" gorm:"default:0"` // hours per session
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`

	// Stored hour fields. CompletedHours duplicates the
	// sessionsCompleted * sessionDuration derivation; the aggregation engine
	// recomputes it and never reads this column.
	TotalHours     float64 `json:"total_hours" gorm:"default:0"`
	CompletedHours float64 `json:"completed_hours" gorm:"default:0"`
	PendingHours   float64 `json:"pending_hours" gorm:"default:0"`
	ActiveHours    float64 `json:"active_hours" gorm:"default:0"`

	// Payments
	TotalPayment   float64 `json:"total_payment" gorm:"default:0"`
	PaidAmount     float64 `json:"paid_amount" gorm:"default:0"`
	PendingPayment float64 `json:"pending_payment" gorm:"default:0"`

	Status StudentStatus `json:"status" gorm:"default:active;index;size:10"`

	// Derived, refreshed on every session update. Not authoritative.
	ProgressPercentage int `json:"progress_percentage" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Mentor  *User    `json:"mentor,omitempty" gorm:"foreignKey:MentorID"`
	Batch   *Batch   `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	Package *Package `json:"package,omitempty" gorm:"foreignKey:PackageID"`
}

func (Student) TableName() string {
	return "students"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Batch is a cohort of students sharing a session start/end window.
type Batch struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null;size:100"`
	CoordinatorID *string    `json:"coordinator_id,omitempty" gorm:"index;size:64"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Coordinator *User `json:"coordinator,omitempty" gorm:"foreignKey:CoordinatorID"`
}

func (Batch) TableName() string {
	return "batches"
}

// Package is a purchasable tuition plan; assigning one to a student seeds
// the student's session and payment totals.
type Package struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	Name            string  `json:"name" gorm:"not null;size:100"`
	TotalSessions   int     `json:"total_sessions" gorm:"not null"`
	SessionDuration float64 `json:"session_duration" gorm:"not null"` // hours per session
	Price           float64 `json:"price" gorm:"not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Package) TableName() string {
	return "packages"
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleCoordinator UserRole = "coordinator"
	RoleMentor      UserRole = "mentor"
	RoleStudent     UserRole = "student"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

type User struct {
	ID    string   `json:"id" gorm:"primaryKey;size:64"`
	Name  string   `json:"name" gorm:"not null;size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"not null;index;size:20"`

	// SupervisorID links a mentor to the coordinator responsible for them.
	// Unset for every other role.
	SupervisorID *string `json:"supervisor_id,omitempty" gorm:"index;size:64"`

	Phone  *string    `json:"phone,omitempty" gorm:"size:20"`
	Status UserStatus `json:"status" gorm:"default:active;size:10"`

	Preferences datatypes.JSON `json:"preferences,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Supervisor *User `json:"supervisor,omitempty" gorm:"foreignKey:SupervisorID"`
}

func (User) TableName() string {
	return "users"
}

// ValidRoles lists every role a user record may carry.
func ValidRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleCoordinator, RoleMentor, RoleStudent}
}

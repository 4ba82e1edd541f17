package repositories

import (
	"context"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	MentorID      *string               `json:"mentor_id"`
	CoordinatorID *string               `json:"coordinator_id"` // via the mentor's supervisor link
	BatchID       *uint                 `json:"batch_id"`
	PackageID     *uint                 `json:"package_id"`
	Status        *models.StudentStatus `json:"status"`
	Search        string                `json:"search"` // matches name or email
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
	SortBy        string                `json:"sort_by"`    // "created_at", "name", "progress_percentage"
	SortOrder     string                `json:"sort_order"` // "asc", "desc"
}

type UserFilters struct {
	Role         *models.UserRole   `json:"role"`
	SupervisorID *string            `json:"supervisor_id"`
	Status       *models.UserStatus `json:"status"`
	Search       string             `json:"search"`
	Limit        int                `json:"limit"`
	Offset       int                `json:"offset"`
	SortBy       string             `json:"sort_by"`
	SortOrder    string             `json:"sort_order"`
}

type BatchFilters struct {
	CoordinatorID *string `json:"coordinator_id"`
	Limit         int     `json:"limit"`
	Offset        int     `json:"offset"`
}

type PackageFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters StudentFilters) ([]models.Student, int64, error)

	// GetByMentor returns every student assigned to the mentor.
	GetByMentor(ctx context.Context, mentorID string) ([]models.Student, error)
	// GetByCoordinator returns every student whose mentor reports to the
	// coordinator.
	GetByCoordinator(ctx context.Context, coordinatorID string) ([]models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]models.User, int64, error)
	GetMentorsByCoordinator(ctx context.Context, coordinatorID string) ([]models.User, error)
}

type BatchRepository interface {
	Create(ctx context.Context, batch *models.Batch) error
	GetByID(ctx context.Context, id uint) (*models.Batch, error)
	Update(ctx context.Context, batch *models.Batch) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters BatchFilters) ([]models.Batch, int64, error)
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *models.Package) error
	GetByID(ctx context.Context, id uint) (*models.Package, error)
	Update(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters PackageFilters) ([]models.Package, int64, error)
}

// Repository aggregates access to every repository.
type Repository interface {
	Student() StudentRepository
	User() UserRepository
	Batch() BatchRepository
	Package() PackageRepository
}

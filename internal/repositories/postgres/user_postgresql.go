package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (r *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

func (r *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.SupervisorID != nil {
		query = query.Where("supervisor_id = ?", *filters.SupervisorID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true,
		"name":       true,
		"email":      true,
	})
	query = applyLimit(query, filters.Limit, filters.Offset)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *UserPostgreSQL) GetMentorsByCoordinator(ctx context.Context, coordinatorID string) ([]models.User, error) {
	var mentors []models.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND supervisor_id = ?", models.RoleMentor, coordinatorID).
		Find(&mentors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get mentors by coordinator: %w", err)
	}
	return mentors, nil
}

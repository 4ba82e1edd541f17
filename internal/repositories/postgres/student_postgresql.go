package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (r *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := r.ExistsByEmail(ctx, student.Email, nil)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if exists {
			return fmt.Errorf("student with email '%s' already exists", student.Email)
		}

		if err := tx.Create(student).Error; err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}
		return nil
	})
}

func (r *StudentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Batch").
		Preload("Package").
		First(&student, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *StudentPostgreSQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Student{}, "id = ?", id).Error
}

func (r *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filters.MentorID != nil {
		query = query.Where("students.mentor_id = ?", *filters.MentorID)
	}
	if filters.CoordinatorID != nil {
		query = query.
			Joins("JOIN users mentors ON mentors.id = students.mentor_id").
			Where("mentors.supervisor_id = ?", *filters.CoordinatorID)
	}
	if filters.BatchID != nil {
		query = query.Where("students.batch_id = ?", *filters.BatchID)
	}
	if filters.PackageID != nil {
		query = query.Where("students.package_id = ?", *filters.PackageID)
	}
	if filters.Status != nil {
		query = query.Where("students.status = ?", *filters.Status)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("students.name ILIKE ? OR students.email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at":          true,
		"name":                true,
		"progress_percentage": true,
	})
	query = applyLimit(query, filters.Limit, filters.Offset)

	var students []models.Student
	if err := query.Preload("Mentor").Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return students, total, nil
}

func (r *StudentPostgreSQL) GetByMentor(ctx context.Context, mentorID string) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get students by mentor: %w", err)
	}
	return students, nil
}

func (r *StudentPostgreSQL) GetByCoordinator(ctx context.Context, coordinatorID string) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN users mentors ON mentors.id = students.mentor_id").
		Where("mentors.supervisor_id = ?", coordinatorID).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get students by coordinator: %w", err)
	}
	return students, nil
}

func (r *StudentPostgreSQL) GetAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	return students, nil
}

func (r *StudentPostgreSQL) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("email = ?", email)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

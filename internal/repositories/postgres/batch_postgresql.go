package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
)

type BatchPostgreSQL struct {
	db *gorm.DB
}

func NewBatchPostgreSQL(db *gorm.DB) repositories.BatchRepository {
	return &BatchPostgreSQL{db: db}
}

func (r *BatchPostgreSQL) Create(ctx context.Context, batch *models.Batch) error {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

func (r *BatchPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Preload("Coordinator").
		First(&batch, id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *BatchPostgreSQL) Update(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *BatchPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Batch{}, id).Error
}

func (r *BatchPostgreSQL) List(ctx context.Context, filters repositories.BatchFilters) ([]models.Batch, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Batch{})

	if filters.CoordinatorID != nil {
		query = query.Where("coordinator_id = ?", *filters.CoordinatorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count batches: %w", err)
	}

	query = applyLimit(query.Order("created_at desc"), filters.Limit, filters.Offset)

	var batches []models.Batch
	if err := query.Find(&batches).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, total, nil
}

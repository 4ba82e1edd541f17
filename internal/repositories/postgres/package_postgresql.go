package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
)

type PackagePostgreSQL struct {
	db *gorm.DB
}

func NewPackagePostgreSQL(db *gorm.DB) repositories.PackageRepository {
	return &PackagePostgreSQL{db: db}
}

func (r *PackagePostgreSQL) Create(ctx context.Context, pkg *models.Package) error {
	if err := r.db.WithContext(ctx).Create(pkg).Error; err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *PackagePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackagePostgreSQL) Update(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *PackagePostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Package{}, id).Error
}

func (r *PackagePostgreSQL) List(ctx context.Context, filters repositories.PackageFilters) ([]models.Package, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Package{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count packages: %w", err)
	}

	query = applyLimit(query.Order("created_at desc"), filters.Limit, filters.Offset)

	var packages []models.Package
	if err := query.Find(&packages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, total, nil
}

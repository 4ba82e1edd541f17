package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/validator"
)

type PackageService interface {
	Create(ctx context.Context, req *CreatePackageRequest) (*models.Package, error)
	GetByID(ctx context.Context, id uint) (*models.Package, error)
	Update(ctx context.Context, id uint, req *UpdatePackageRequest) (*models.Package, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.PackageFilters) ([]models.Package, int64, error)
}

type CreatePackageRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	TotalSessions   int     `json:"total_sessions" validate:"required,min=1"`
	SessionDuration float64 `json:"session_duration" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"min=0"`
}

type UpdatePackageRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	TotalSessions   *int     `json:"total_sessions,omitempty" validate:"omitempty,min=1"`
	SessionDuration *float64 `json:"session_duration,omitempty" validate:"omitempty,gt=0"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
}

type packageService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPackageService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) PackageService {
	return &packageService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *packageService) Create(ctx context.Context, req *CreatePackageRequest) (*models.Package, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	pkg := &models.Package{
		Name:            req.Name,
		TotalSessions:   req.TotalSessions,
		SessionDuration: req.SessionDuration,
		Price:           req.Price,
	}
	if err := s.repo.Package().Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	s.logger.Info("Package created", "package_id", pkg.ID, "name", pkg.Name)
	return pkg, nil
}

func (s *packageService) GetByID(ctx context.Context, id uint) (*models.Package, error) {
	pkg, err := s.repo.Package().GetByID(ctx, id)
	if err != nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

func (s *packageService) Update(ctx context.Context, id uint, req *UpdatePackageRequest) (*models.Package, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	pkg, err := s.repo.Package().GetByID(ctx, id)
	if err != nil {
		return nil, ErrPackageNotFound
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.TotalSessions != nil {
		pkg.TotalSessions = *req.TotalSessions
	}
	if req.SessionDuration != nil {
		pkg.SessionDuration = *req.SessionDuration
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}

	if err := s.repo.Package().Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Package().GetByID(ctx, id); err != nil {
		return ErrPackageNotFound
	}
	if err := s.repo.Package().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	s.logger.Info("Package deleted", "package_id", id)
	return nil
}

func (s *packageService) List(ctx context.Context, filters repositories.PackageFilters) ([]models.Package, int64, error) {
	return s.repo.Package().List(ctx, filters)
}

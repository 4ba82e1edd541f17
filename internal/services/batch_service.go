package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mentorhub/dashboard-service/internal/events"
	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/validator"
)

type BatchService interface {
	Create(ctx context.Context, req *CreateBatchRequest) (*models.Batch, error)
	GetByID(ctx context.Context, id uint) (*models.Batch, error)
	Update(ctx context.Context, id uint, req *UpdateBatchRequest) (*models.Batch, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.BatchFilters) ([]models.Batch, int64, error)
}

type CreateBatchRequest struct {
	Name          string     `json:"name" validate:"required,min=2,max=100"`
	CoordinatorID *string    `json:"coordinator_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

type UpdateBatchRequest struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	CoordinatorID *string    `json:"coordinator_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

type batchService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	publisher  events.EventPublisher
	eventTopic string
}

func NewBatchService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, eventTopic string) BatchService {
	return &batchService{
		repo:       repo,
		logger:     logger,
		validator:  v,
		publisher:  publisher,
		eventTopic: eventTopic,
	}
}

func (s *batchService) Create(ctx context.Context, req *CreateBatchRequest) (*models.Batch, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, NewBusinessRuleError("batch_dates", "end date must not precede start date", nil)
	}
	if req.CoordinatorID != nil {
		coordinator, err := s.repo.User().GetByID(ctx, *req.CoordinatorID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		if coordinator.Role != models.RoleCoordinator {
			return nil, ErrNotACoordinator
		}
	}

	batch := &models.Batch{
		Name:          req.Name,
		CoordinatorID: req.CoordinatorID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
	if err := s.repo.Batch().Create(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}

	s.logger.Info("Batch created", "batch_id", batch.ID, "name", batch.Name)
	if s.publisher != nil {
		evt := events.NewEvent(events.EventBatchCreated, events.BatchCreatedEvent{
			BatchID:       batch.ID,
			Name:          batch.Name,
			CoordinatorID: batch.CoordinatorID,
		})
		if err := s.publisher.Publish(ctx, s.eventTopic, evt); err != nil {
			s.logger.Warn("Failed to publish batch event", "batch_id", batch.ID, "error", err)
		}
	}

	return batch, nil
}

func (s *batchService) GetByID(ctx context.Context, id uint) (*models.Batch, error) {
	batch, err := s.repo.Batch().GetByID(ctx, id)
	if err != nil {
		return nil, ErrBatchNotFound
	}
	return batch, nil
}

func (s *batchService) Update(ctx context.Context, id uint, req *UpdateBatchRequest) (*models.Batch, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	batch, err := s.repo.Batch().GetByID(ctx, id)
	if err != nil {
		return nil, ErrBatchNotFound
	}

	if req.Name != nil {
		batch.Name = *req.Name
	}
	if req.CoordinatorID != nil {
		coordinator, err := s.repo.User().GetByID(ctx, *req.CoordinatorID)
		if err != nil {
			return nil, ErrUserNotFound
		}
		if coordinator.Role != models.RoleCoordinator {
			return nil, ErrNotACoordinator
		}
		batch.CoordinatorID = req.CoordinatorID
	}
	if req.StartDate != nil {
		batch.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		batch.EndDate = req.EndDate
	}
	if batch.StartDate != nil && batch.EndDate != nil && batch.EndDate.Before(*batch.StartDate) {
		return nil, NewBusinessRuleError("batch_dates", "end date must not precede start date", nil)
	}

	if err := s.repo.Batch().Update(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to update batch: %w", err)
	}
	return batch, nil
}

func (s *batchService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Batch().GetByID(ctx, id); err != nil {
		return ErrBatchNotFound
	}
	if err := s.repo.Batch().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	s.logger.Info("Batch deleted", "batch_id", id)
	return nil
}

func (s *batchService) List(ctx context.Context, filters repositories.BatchFilters) ([]models.Batch, int64, error) {
	return s.repo.Batch().List(ctx, filters)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mentorhub/dashboard-service/internal/cache"
	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/validator"
)

// Session cache keys. The session and theme live alongside the notification
// blobs in redis under well-known keys.
const (
	sessionKey = "user"
	themeKey   = "theme"
)

const sessionTTL = 24 * time.Hour

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error)

	// Session state
	SignIn(ctx context.Context, email string) (*models.User, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)

	// UI theme preference
	SetTheme(ctx context.Context, theme Theme) error
	GetTheme(ctx context.Context) (Theme, error)
}

type CreateUserRequest struct {
	Name         string          `json:"name" validate:"required,min=2,max=100"`
	Email        string          `json:"email" validate:"required,email"`
	Role         models.UserRole `json:"role" validate:"required,user_role"`
	SupervisorID *string         `json:"supervisor_id,omitempty"`
	Phone        *string         `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type UpdateUserRequest struct {
	Name         *string            `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone        *string            `json:"phone,omitempty" validate:"omitempty,max=20"`
	Status       *models.UserStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	SupervisorID *string            `json:"supervisor_id,omitempty"`
}

type userService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, c cache.CacheService, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		cache:     c,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if existing, err := s.repo.User().GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrConflict
	}

	// Only mentors report to a supervisor, and that supervisor must be a
	// coordinator.
	if req.SupervisorID != nil {
		if req.Role != models.RoleMentor {
			return nil, ErrSupervisorInvalid
		}
		supervisor, err := s.repo.User().GetByID(ctx, *req.SupervisorID)
		if err != nil {
			return nil, ErrSupervisorInvalid
		}
		if supervisor.Role != models.RoleCoordinator {
			return nil, ErrNotACoordinator
		}
	}

	user := &models.User{
		ID:           generateID("usr"),
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		SupervisorID: req.SupervisorID,
		Phone:        req.Phone,
		Status:       models.UserActive,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.SupervisorID != nil {
		if user.Role != models.RoleMentor {
			return nil, ErrSupervisorInvalid
		}
		supervisor, err := s.repo.User().GetByID(ctx, *req.SupervisorID)
		if err != nil {
			return nil, ErrSupervisorInvalid
		}
		if supervisor.Role != models.RoleCoordinator {
			return nil, ErrNotACoordinator
		}
		user.SupervisorID = req.SupervisorID
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.User().GetByID(ctx, id); err != nil {
		return ErrUserNotFound
	}
	if err := s.repo.User().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("User deleted", "user_id", id)
	return nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]models.User, int64, error) {
	return s.repo.User().List(ctx, filters)
}

// SignIn looks the user up by email and records them as the active session.
// There is no credential check here; authentication is fronted elsewhere.
func (s *userService) SignIn(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if err := s.cache.Set(ctx, sessionKey, user, sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	s.logger.Info("User signed in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) SignOut(ctx context.Context) error {
	if err := s.cache.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *userService) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.cache.Get(ctx, sessionKey, &user); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return &user, nil
}

func (s *userService) SetTheme(ctx context.Context, theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		return NewValidationError("theme", "must be light or dark", string(theme))
	}
	return s.cache.Set(ctx, themeKey, theme, 0)
}

// GetTheme returns the stored preference, defaulting to light.
func (s *userService) GetTheme(ctx context.Context) (Theme, error) {
	var theme Theme
	if err := s.cache.Get(ctx, themeKey, &theme); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return ThemeLight, nil
		}
		return "", fmt.Errorf("failed to read theme: %w", err)
	}
	return theme, nil
}

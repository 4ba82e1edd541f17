package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mentorhub/dashboard-service/internal/events"
	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/stats"
	"github.com/mentorhub/dashboard-service/internal/validator"
)

type StudentService interface {
	Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	Update(ctx context.Context, id string, req *UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repositories.StudentFilters) ([]models.Student, int64, error)

	AssignMentor(ctx context.Context, studentID, mentorID, assignedBy string) (*models.Student, error)
	AssignPackage(ctx context.Context, studentID string, packageID uint, assignedBy string) (*models.Student, error)
	RecordSession(ctx context.Context, studentID string) (*models.Student, error)
	RecordPayment(ctx context.Context, studentID string, amount float64) (*models.Student, error)
}

type CreateStudentRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	MentorID        *string `json:"mentor_id,omitempty"`
	BatchID         *uint   `json:"batch_id,omitempty"`
	PackageID       *uint   `json:"package_id,omitempty"`
	TotalSessions   int     `json:"total_sessions" validate:"min=0"`
	SessionDuration float64 `json:"session_duration" validate:"min=0"`
	TotalPayment    float64 `json:"total_payment" validate:"min=0"`
}

type UpdateStudentRequest struct {
	Name   *string               `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email  *string               `json:"email,omitempty" validate:"omitempty,email"`
	Phone  *string               `json:"phone,omitempty" validate:"omitempty,max=20"`
	Status *models.StudentStatus `json:"status,omitempty" validate:"omitempty,student_status"`
}

type studentService struct {
	repo       repositories.Repository
	logger     *slog.Logger
	validator  *validator.Validator
	publisher  events.EventPublisher
	notifier   NotificationService
	eventTopic string
}

func NewStudentService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.EventPublisher,
	notifier NotificationService,
	eventTopic string,
) StudentService {
	return &studentService{
		repo:       repo,
		logger:     logger,
		validator:  v,
		publisher:  publisher,
		notifier:   notifier,
		eventTopic: eventTopic,
	}
}

func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	taken, err := s.repo.Student().ExistsByEmail(ctx, req.Email, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrStudentEmailTaken
	}

	student := &models.Student{
		ID:                generateID("stu"),
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		MentorID:          req.MentorID,
		BatchID:           req.BatchID,
		PackageID:         req.PackageID,
		TotalSessions:     req.TotalSessions,
		SessionsRemaining: req.TotalSessions,
		SessionDuration:   req.SessionDuration,
		TotalPayment:      req.TotalPayment,
		PendingPayment:    req.TotalPayment,
		Status:            models.StudentActive,
	}
	refreshDerived(student)

	// If a package comes with the enrollment, seed the schedule from it.
	if req.PackageID != nil {
		pkg, err := s.repo.Package().GetByID(ctx, *req.PackageID)
		if err != nil {
			return nil, ErrPackageNotFound
		}
		applyPackage(student, pkg)
	}

	if req.MentorID != nil {
		if err := s.requireRole(ctx, *req.MentorID, models.RoleMentor, ErrNotAMentor); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("Student enrolled", "student_id", student.ID, "email", student.Email)
	s.publish(ctx, events.EventStudentEnrolled, events.StudentEnrolledEvent{
		StudentID:     student.ID,
		Name:          student.Name,
		MentorID:      student.MentorID,
		BatchID:       student.BatchID,
		PackageID:     student.PackageID,
		TotalSessions: student.TotalSessions,
	})
	s.announce(ctx, "New student enrolled",
		fmt.Sprintf("%s has been enrolled", student.Name),
		models.NotificationSuccess,
		[]string{string(models.RoleAdmin), string(models.RoleCoordinator)})

	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		return nil, ErrStudentNotFound
	}

	if req.Email != nil && *req.Email != student.Email {
		taken, err := s.repo.Student().ExistsByEmail(ctx, *req.Email, &id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, ErrStudentEmailTaken
		}
		student.Email = *req.Email
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}
	if req.Status != nil {
		student.Status = *req.Status
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.publish(ctx, events.EventStudentUpdated, events.StudentUpdatedEvent{
		StudentID: student.ID,
		Name:      student.Name,
	})
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Student().GetByID(ctx, id); err != nil {
		return ErrStudentNotFound
	}
	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	s.logger.Info("Student deleted", "student_id", id)
	return nil
}

func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters) ([]models.Student, int64, error) {
	return s.repo.Student().List(ctx, filters)
}

func (s *studentService) AssignMentor(ctx context.Context, studentID, mentorID, assignedBy string) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	if err := s.requireRole(ctx, mentorID, models.RoleMentor, ErrNotAMentor); err != nil {
		return nil, err
	}

	student.MentorID = &mentorID
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to assign mentor: %w", err)
	}

	s.logger.Info("Mentor assigned", "student_id", studentID, "mentor_id", mentorID)
	s.publish(ctx, events.EventMentorAssigned, events.MentorAssignedEvent{
		StudentID:  studentID,
		MentorID:   mentorID,
		AssignedBy: assignedBy,
	})
	s.announce(ctx, "Mentor assigned",
		fmt.Sprintf("%s has a new mentor", student.Name),
		models.NotificationInfo,
		[]string{string(models.RoleAdmin), string(models.RoleCoordinator), string(models.RoleMentor)})

	return student, nil
}

func (s *studentService) AssignPackage(ctx context.Context, studentID string, packageID uint, assignedBy string) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	pkg, err := s.repo.Package().GetByID(ctx, packageID)
	if err != nil {
		return nil, ErrPackageNotFound
	}

	applyPackage(student, pkg)
	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to assign package: %w", err)
	}

	s.logger.Info("Package assigned", "student_id", studentID, "package_id", packageID)
	s.publish(ctx, events.EventPackageAssigned, events.PackageAssignedEvent{
		StudentID:  studentID,
		PackageID:  packageID,
		AssignedBy: assignedBy,
	})

	return student, nil
}

func (s *studentService) RecordSession(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	if student.SessionsRemaining <= 0 {
		return nil, ErrNoSessionsRemaining
	}

	student.SessionsCompleted++
	student.SessionsRemaining = student.TotalSessions - student.SessionsCompleted
	refreshDerived(student)

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	s.publish(ctx, events.EventSessionRecorded, events.SessionRecordedEvent{
		StudentID:         studentID,
		SessionsCompleted: student.SessionsCompleted,
		SessionsRemaining: student.SessionsRemaining,
		Progress:          student.ProgressPercentage,
		RecordedAt:        time.Now(),
	})

	if student.SessionsRemaining == 0 {
		s.announce(ctx, "Sessions completed",
			fmt.Sprintf("%s has completed all sessions", student.Name),
			models.NotificationSuccess,
			[]string{string(models.RoleAdmin), string(models.RoleCoordinator), string(models.RoleMentor)})
	}

	return student, nil
}

func (s *studentService) RecordPayment(ctx context.Context, studentID string, amount float64) (*models.Student, error) {
	if amount <= 0 {
		return nil, NewValidationError("amount", "must be greater than zero", amount)
	}

	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	if student.PaidAmount+amount > student.TotalPayment {
		return nil, ErrPaymentExceedsTotal
	}

	student.PaidAmount += amount
	student.PendingPayment = student.TotalPayment - student.PaidAmount

	if err := s.repo.Student().Update(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.publish(ctx, events.EventPaymentRecorded, events.PaymentRecordedEvent{
		StudentID:      studentID,
		Amount:         amount,
		PaidAmount:     student.PaidAmount,
		PendingPayment: student.PendingPayment,
		RecordedAt:     time.Now(),
	})

	return student, nil
}

func (s *studentService) requireRole(ctx context.Context, userID string, role models.UserRole, mismatch error) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.Role != role {
		return mismatch
	}
	return nil
}

// publish emits a domain event; publish failures are logged, never surfaced.
func (s *studentService) publish(ctx context.Context, typ events.EventType, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, s.eventTopic, events.NewEvent(typ, payload)); err != nil {
		s.logger.Warn("Failed to publish event", "type", typ, "error", err)
	}
}

func (s *studentService) announce(ctx context.Context, title, message string, typ models.NotificationType, roles []string) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, &NotifyRequest{
		Title:       title,
		Message:     message,
		Type:        typ,
		TargetRoles: roles,
	}); err != nil {
		s.logger.Warn("Failed to create notification", "title", title, "error", err)
	}
}

// applyPackage seeds the schedule and pricing from the package definition.
// Completed-session accounting carries over unchanged.
func applyPackage(student *models.Student, pkg *models.Package) {
	student.PackageID = &pkg.ID
	student.TotalSessions = pkg.TotalSessions
	student.SessionDuration = pkg.SessionDuration
	student.SessionsRemaining = pkg.TotalSessions - student.SessionsCompleted
	student.TotalPayment = pkg.Price
	student.PendingPayment = pkg.Price - student.PaidAmount
	refreshDerived(student)
}

// refreshDerived recomputes the stored hour columns and the progress figure
// from session accounting.
func refreshDerived(student *models.Student) {
	student.TotalHours = float64(student.TotalSessions) * student.SessionDuration
	student.CompletedHours = float64(student.SessionsCompleted) * student.SessionDuration
	student.PendingHours = student.TotalHours - student.CompletedHours
	if student.TotalSessions > 0 {
		student.ActiveHours = student.TotalHours / float64(student.TotalSessions)
	} else {
		student.ActiveHours = 0
	}
	student.ProgressPercentage = stats.Progress(float64(student.SessionsCompleted), float64(student.TotalSessions))
}

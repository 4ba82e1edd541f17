package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/stats"
)

// DashboardService produces the derived statistics views. Every call fetches
// the scoped student set and folds it on the spot; nothing is cached.
type DashboardService interface {
	// AdminStats aggregates across the whole organization.
	AdminStats(ctx context.Context) (*stats.DashboardStats, error)
	// CoordinatorStats aggregates over the students of every mentor
	// reporting to the coordinator.
	CoordinatorStats(ctx context.Context, coordinatorID string) (*CoordinatorDashboard, error)
	// MentorStats aggregates over the mentor's own students.
	MentorStats(ctx context.Context, mentorID string) (*MentorDashboard, error)
	// StudentProgress reports one student's completion percentages.
	StudentProgress(ctx context.Context, studentID string) (*StudentProgressReport, error)
}

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
	}
}

// CoordinatorDashboard is the coordinator-scoped aggregate plus the mentor
// breakdown underneath it.
type CoordinatorDashboard struct {
	CoordinatorID string               `json:"coordinator_id"`
	Stats         stats.DashboardStats `json:"stats"`
	Mentors       []MentorStatsItem    `json:"mentors"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

type MentorStatsItem struct {
	MentorID   string               `json:"mentor_id"`
	MentorName string               `json:"mentor_name"`
	Stats      stats.DashboardStats `json:"stats"`
}

type MentorDashboard struct {
	MentorID    string                  `json:"mentor_id"`
	Stats       stats.DashboardStats    `json:"stats"`
	Students    []StudentProgressReport `json:"students"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// StudentProgressReport exposes the three component percentages side by
// side; the overall figure is the session-based one.
type StudentProgressReport struct {
	StudentID       string `json:"student_id"`
	Name            string `json:"name"`
	SessionProgress int    `json:"session_progress"`
	HoursProgress   int    `json:"hours_progress"`
	PaymentProgress int    `json:"payment_progress"`
	Overall         int    `json:"overall"`
}

func (s *dashboardService) AdminStats(ctx context.Context) (*stats.DashboardStats, error) {
	s.logger.Debug("Computing organization dashboard stats")

	students, err := s.repo.Student().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}

	agg := stats.Aggregate(students)
	return &agg, nil
}

func (s *dashboardService) CoordinatorStats(ctx context.Context, coordinatorID string) (*CoordinatorDashboard, error) {
	s.logger.Debug("Computing coordinator dashboard stats", "coordinator_id", coordinatorID)

	coordinator, err := s.repo.User().GetByID(ctx, coordinatorID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if coordinator.Role != models.RoleCoordinator {
		return nil, NewPermissionError(coordinatorID, coordinatorID, "dashboard", "view", "not a coordinator")
	}

	students, err := s.repo.Student().GetByCoordinator(ctx, coordinatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coordinator students: %w", err)
	}

	mentors, err := s.repo.User().GetMentorsByCoordinator(ctx, coordinatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentors: %w", err)
	}

	dashboard := &CoordinatorDashboard{
		CoordinatorID: coordinatorID,
		Stats:         stats.Aggregate(students),
		GeneratedAt:   time.Now(),
	}

	// Per-mentor breakdown over the already-fetched scope.
	byMentor := make(map[string][]models.Student)
	for _, st := range students {
		if st.MentorID != nil {
			byMentor[*st.MentorID] = append(byMentor[*st.MentorID], st)
		}
	}
	for _, m := range mentors {
		dashboard.Mentors = append(dashboard.Mentors, MentorStatsItem{
			MentorID:   m.ID,
			MentorName: m.Name,
			Stats:      stats.Aggregate(byMentor[m.ID]),
		})
	}

	return dashboard, nil
}

func (s *dashboardService) MentorStats(ctx context.Context, mentorID string) (*MentorDashboard, error) {
	s.logger.Debug("Computing mentor dashboard stats", "mentor_id", mentorID)

	mentor, err := s.repo.User().GetByID(ctx, mentorID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if mentor.Role != models.RoleMentor {
		return nil, NewPermissionError(mentorID, mentorID, "dashboard", "view", "not a mentor")
	}

	students, err := s.repo.Student().GetByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mentor students: %w", err)
	}

	dashboard := &MentorDashboard{
		MentorID:    mentorID,
		Stats:       stats.Aggregate(students),
		GeneratedAt: time.Now(),
	}
	for _, st := range students {
		dashboard.Students = append(dashboard.Students, progressReport(st))
	}

	return dashboard, nil
}

func (s *dashboardService) StudentProgress(ctx context.Context, studentID string) (*StudentProgressReport, error) {
	student, err := s.repo.Student().GetByID(ctx, studentID)
	if err != nil {
		return nil, ErrStudentNotFound
	}

	report := progressReport(*student)
	return &report, nil
}

func progressReport(st models.Student) StudentProgressReport {
	return StudentProgressReport{
		StudentID:       st.ID,
		Name:            st.Name,
		SessionProgress: stats.SessionProgress(st),
		HoursProgress:   stats.HoursProgress(st),
		PaymentProgress: stats.PaymentProgress(st),
		Overall:         stats.SessionProgress(st),
	}
}

package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mentorhub/dashboard-service/internal/models"
)

func strPtr(s string) *string { return &s }

func testStudents() []models.Student {
	mentorA := "usr_mentor_a"
	mentorB := "usr_mentor_b"
	return []models.Student{
		{
			ID: "stu_1", Name: "Asha", MentorID: &mentorA,
			TotalSessions: 10, SessionsCompleted: 5, SessionDuration: 2,
			TotalHours: 20, TotalPayment: 5000, PaidAmount: 2500,
			Status: models.StudentActive,
		},
		{
			ID: "stu_2", Name: "Ben", MentorID: &mentorB,
			TotalSessions: 8, SessionsCompleted: 8, SessionDuration: 1.5,
			TotalHours: 12, TotalPayment: 4000, PaidAmount: 4000,
			Status: models.StudentActive,
		},
	}
}

func TestDashboardService_AdminStats(t *testing.T) {
	repo := newMockRepository()
	repo.students.On("GetAll", mock.Anything).Return(testStudents(), nil)

	svc := NewDashboardService(repo, slog.Default())
	got, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalStudents)
	assert.Equal(t, 18, got.TotalSessions)
	assert.Equal(t, 13, got.CompletedSessions)
	assert.Equal(t, 5, got.PendingSessions)
	// stu_2 finished all sessions, so only stu_1 holds an active session.
	assert.Equal(t, 1, got.ActiveSessions)
	assert.InDelta(t, 2.0, got.ActiveHours, 1e-9)
	// 5*2 + 8*1.5
	assert.InDelta(t, 22.0, got.CompletedHours, 1e-9)
	assert.Equal(t, 72, got.OverallProgress) // round(100*13/18)
	repo.students.AssertExpectations(t)
}

func TestDashboardService_CoordinatorStats(t *testing.T) {
	coordinator := &models.User{ID: "usr_coord", Name: "Carla", Role: models.RoleCoordinator}
	mentors := []models.User{
		{ID: "usr_mentor_a", Name: "Maya", Role: models.RoleMentor, SupervisorID: strPtr("usr_coord")},
		{ID: "usr_mentor_b", Name: "Noel", Role: models.RoleMentor, SupervisorID: strPtr("usr_coord")},
	}

	repo := newMockRepository()
	repo.users.On("GetByID", mock.Anything, "usr_coord").Return(coordinator, nil)
	repo.users.On("GetMentorsByCoordinator", mock.Anything, "usr_coord").Return(mentors, nil)
	repo.students.On("GetByCoordinator", mock.Anything, "usr_coord").Return(testStudents(), nil)

	svc := NewDashboardService(repo, slog.Default())
	got, err := svc.CoordinatorStats(context.Background(), "usr_coord")
	require.NoError(t, err)

	assert.Equal(t, 2, got.Stats.TotalStudents)
	require.Len(t, got.Mentors, 2)
	assert.Equal(t, "usr_mentor_a", got.Mentors[0].MentorID)
	assert.Equal(t, 1, got.Mentors[0].Stats.TotalStudents)
	assert.Equal(t, 50, got.Mentors[0].Stats.OverallProgress)
	assert.Equal(t, 100, got.Mentors[1].Stats.OverallProgress)
}

func TestDashboardService_CoordinatorStats_WrongRole(t *testing.T) {
	repo := newMockRepository()
	repo.users.On("GetByID", mock.Anything, "usr_mentor_a").
		Return(&models.User{ID: "usr_mentor_a", Role: models.RoleMentor}, nil)

	svc := NewDashboardService(repo, slog.Default())
	_, err := svc.CoordinatorStats(context.Background(), "usr_mentor_a")
	require.Error(t, err)
	assert.True(t, IsPermission(err))
}

func TestDashboardService_MentorStats(t *testing.T) {
	mentor := &models.User{ID: "usr_mentor_a", Name: "Maya", Role: models.RoleMentor}
	students := testStudents()[:1]

	repo := newMockRepository()
	repo.users.On("GetByID", mock.Anything, "usr_mentor_a").Return(mentor, nil)
	repo.students.On("GetByMentor", mock.Anything, "usr_mentor_a").Return(students, nil)

	svc := NewDashboardService(repo, slog.Default())
	got, err := svc.MentorStats(context.Background(), "usr_mentor_a")
	require.NoError(t, err)

	assert.Equal(t, 1, got.Stats.TotalStudents)
	require.Len(t, got.Students, 1)
	assert.Equal(t, 50, got.Students[0].SessionProgress)
	assert.Equal(t, 50, got.Students[0].PaymentProgress)
	assert.Equal(t, 50, got.Students[0].Overall)
}

func TestDashboardService_StudentProgress_NotFound(t *testing.T) {
	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_missing").Return(nil, gorm.ErrRecordNotFound)

	svc := NewDashboardService(repo, slog.Default())
	_, err := svc.StudentProgress(context.Background(), "stu_missing")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestDashboardService_StudentProgress_ZeroSessions(t *testing.T) {
	student := &models.Student{ID: "stu_new", Name: "Zed", Status: models.StudentActive}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_new").Return(student, nil)

	svc := NewDashboardService(repo, slog.Default())
	got, err := svc.StudentProgress(context.Background(), "stu_new")
	require.NoError(t, err)
	assert.Equal(t, 0, got.SessionProgress)
	assert.Equal(t, 0, got.Overall)
}

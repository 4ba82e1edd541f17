package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mentorhub/dashboard-service/internal/events"
	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/validator"
)

func newTestStudentService(repo *mockRepository) (StudentService, *events.MockEventPublisher) {
	logger := slog.Default()
	publisher := events.NewMockEventPublisher(logger)
	return NewStudentService(repo, logger, validator.New(), publisher, nil, "dashboard.events"), publisher
}

func TestStudentService_Create(t *testing.T) {
	repo := newMockRepository()
	repo.students.On("ExistsByEmail", mock.Anything, "asha@example.com", (*string)(nil)).Return(false, nil)
	repo.students.On("Create", mock.Anything, mock.AnythingOfType("*models.Student")).Return(nil)

	svc, publisher := newTestStudentService(repo)
	student, err := svc.Create(context.Background(), &CreateStudentRequest{
		Name:            "Asha",
		Email:           "asha@example.com",
		TotalSessions:   12,
		SessionDuration: 2,
		TotalPayment:    12000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, student.ID)
	assert.Equal(t, 12, student.SessionsRemaining)
	assert.InDelta(t, 24.0, student.TotalHours, 1e-9)
	assert.InDelta(t, 12000.0, student.PendingPayment, 1e-9)
	assert.Equal(t, models.StudentActive, student.Status)
	assert.Equal(t, 0, student.ProgressPercentage)

	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventStudentEnrolled, published[0].Type)
}

func TestStudentService_Create_EmailTaken(t *testing.T) {
	repo := newMockRepository()
	repo.students.On("ExistsByEmail", mock.Anything, "dup@example.com", (*string)(nil)).Return(true, nil)

	svc, _ := newTestStudentService(repo)
	_, err := svc.Create(context.Background(), &CreateStudentRequest{
		Name:  "Dup",
		Email: "dup@example.com",
	})
	assert.ErrorIs(t, err, ErrStudentEmailTaken)
}

func TestStudentService_Create_InvalidRequest(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestStudentService(repo)

	_, err := svc.Create(context.Background(), &CreateStudentRequest{
		Name:  "X", // too short
		Email: "not-an-email",
	})
	require.Error(t, err)
	repo.students.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStudentService_AssignMentor(t *testing.T) {
	student := &models.Student{ID: "stu_1", Name: "Asha"}
	mentor := &models.User{ID: "usr_m", Role: models.RoleMentor}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_1").Return(student, nil)
	repo.users.On("GetByID", mock.Anything, "usr_m").Return(mentor, nil)
	repo.students.On("Update", mock.Anything, mock.AnythingOfType("*models.Student")).Return(nil)

	svc, publisher := newTestStudentService(repo)
	got, err := svc.AssignMentor(context.Background(), "stu_1", "usr_m", "usr_admin")
	require.NoError(t, err)
	require.NotNil(t, got.MentorID)
	assert.Equal(t, "usr_m", *got.MentorID)

	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventMentorAssigned, published[0].Type)
}

func TestStudentService_AssignMentor_NotAMentor(t *testing.T) {
	student := &models.Student{ID: "stu_1"}
	admin := &models.User{ID: "usr_a", Role: models.RoleAdmin}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_1").Return(student, nil)
	repo.users.On("GetByID", mock.Anything, "usr_a").Return(admin, nil)

	svc, _ := newTestStudentService(repo)
	_, err := svc.AssignMentor(context.Background(), "stu_1", "usr_a", "usr_admin")
	assert.ErrorIs(t, err, ErrNotAMentor)
	repo.students.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestStudentService_AssignPackage(t *testing.T) {
	student := &models.Student{ID: "stu_1", SessionsCompleted: 2, PaidAmount: 1000}
	pkg := &models.Package{ID: 7, Name: "Standard", TotalSessions: 20, SessionDuration: 1.5, Price: 15000}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_1").Return(student, nil)
	repo.packages.On("GetByID", mock.Anything, uint(7)).Return(pkg, nil)
	repo.students.On("Update", mock.Anything, mock.AnythingOfType("*models.Student")).Return(nil)

	svc, _ := newTestStudentService(repo)
	got, err := svc.AssignPackage(context.Background(), "stu_1", 7, "usr_admin")
	require.NoError(t, err)

	assert.Equal(t, 20, got.TotalSessions)
	assert.Equal(t, 18, got.SessionsRemaining) // completed sessions carry over
	assert.InDelta(t, 30.0, got.TotalHours, 1e-9)
	assert.InDelta(t, 14000.0, got.PendingPayment, 1e-9)
	assert.Equal(t, 10, got.ProgressPercentage)
}

func TestStudentService_RecordSession(t *testing.T) {
	student := &models.Student{
		ID: "stu_1", TotalSessions: 10, SessionsCompleted: 4,
		SessionsRemaining: 6, SessionDuration: 2, Status: models.StudentActive,
	}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_1").Return(student, nil)
	repo.students.On("Update", mock.Anything, mock.AnythingOfType("*models.Student")).Return(nil)

	svc, publisher := newTestStudentService(repo)
	got, err := svc.RecordSession(context.Background(), "stu_1")
	require.NoError(t, err)

	assert.Equal(t, 5, got.SessionsCompleted)
	assert.Equal(t, 5, got.SessionsRemaining)
	assert.Equal(t, got.TotalSessions, got.SessionsCompleted+got.SessionsRemaining)
	assert.InDelta(t, 10.0, got.CompletedHours, 1e-9)
	assert.Equal(t, 50, got.ProgressPercentage)

	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventSessionRecorded, published[0].Type)
}

func TestStudentService_RecordSession_NoneRemaining(t *testing.T) {
	student := &models.Student{
		ID: "stu_1", TotalSessions: 10, SessionsCompleted: 10, SessionsRemaining: 0,
	}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_1").Return(student, nil)

	svc, _ := newTestStudentService(repo)
	_, err := svc.RecordSession(context.Background(), "stu_1")
	assert.ErrorIs(t, err, ErrNoSessionsRemaining)
}

func TestStudentService_RecordPayment(t *testing.T) {
	student := &models.Student{
		ID: "stu_1", TotalPayment: 10000, PaidAmount: 4000, PendingPayment: 6000,
	}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_1").Return(student, nil)
	repo.students.On("Update", mock.Anything, mock.AnythingOfType("*models.Student")).Return(nil)

	svc, publisher := newTestStudentService(repo)
	got, err := svc.RecordPayment(context.Background(), "stu_1", 2500)
	require.NoError(t, err)

	assert.InDelta(t, 6500.0, got.PaidAmount, 1e-9)
	assert.InDelta(t, 3500.0, got.PendingPayment, 1e-9)

	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventPaymentRecorded, published[0].Type)
}

func TestStudentService_RecordPayment_ExceedsTotal(t *testing.T) {
	student := &models.Student{ID: "stu_1", TotalPayment: 10000, PaidAmount: 9500}

	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_1").Return(student, nil)

	svc, _ := newTestStudentService(repo)
	_, err := svc.RecordPayment(context.Background(), "stu_1", 1000)
	assert.ErrorIs(t, err, ErrPaymentExceedsTotal)
}

func TestStudentService_RecordPayment_NonPositive(t *testing.T) {
	repo := newMockRepository()
	svc, _ := newTestStudentService(repo)

	_, err := svc.RecordPayment(context.Background(), "stu_1", 0)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestStudentService_Delete_NotFound(t *testing.T) {
	repo := newMockRepository()
	repo.students.On("GetByID", mock.Anything, "stu_nope").Return(nil, gorm.ErrRecordNotFound)

	svc, _ := newTestStudentService(repo)
	err := svc.Delete(context.Background(), "stu_nope")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

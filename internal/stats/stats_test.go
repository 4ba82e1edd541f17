package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentorhub/dashboard-service/internal/models"
)

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)

	assert.Equal(t, DashboardStats{}, got)
	assert.Equal(t, 0, got.OverallProgress, "empty input must not divide by zero")
}

func TestAggregate_SingleStudent(t *testing.T) {
	s := models.Student{
		TotalSessions:     12,
		SessionsCompleted: 6,
		SessionDuration:   2,
		TotalHours:        24,
		TotalPayment:      12000,
		PaidAmount:        6000,
		Status:            models.StudentActive,
	}

	got := Aggregate([]models.Student{s})

	assert.Equal(t, 1, got.TotalStudents)
	assert.Equal(t, 12, got.TotalSessions)
	assert.Equal(t, 6, got.CompletedSessions)
	assert.Equal(t, 6, got.PendingSessions)
	assert.Equal(t, float64(12), got.CompletedHours, "recomputed from sessions, not the stored column")
	assert.Equal(t, float64(12), got.PendingHours)
	assert.Equal(t, float64(12000), got.TotalPayments)
	assert.Equal(t, float64(6000), got.CompletedPayments)
	assert.Equal(t, float64(6000), got.PendingPayments)
	assert.Equal(t, 50, got.OverallProgress)
	assert.Equal(t, 1, got.ActiveSessions)
	assert.Equal(t, float64(2), got.ActiveHours)
}

func TestAggregate_ZeroTotalSessions(t *testing.T) {
	got := Aggregate([]models.Student{{TotalSessions: 0, Status: models.StudentActive}})

	assert.Equal(t, 0, got.OverallProgress, "must be 0, not NaN")
	assert.Equal(t, 0, got.ActiveSessions, "no sessions left means not active")
}

func TestAggregate_Sums(t *testing.T) {
	students := []models.Student{
		{TotalSessions: 10, SessionsCompleted: 4, SessionDuration: 1.5, TotalHours: 15, TotalPayment: 5000, PaidAmount: 2000, Status: models.StudentActive},
		{TotalSessions: 8, SessionsCompleted: 8, SessionDuration: 2, TotalHours: 16, TotalPayment: 8000, PaidAmount: 8000, Status: models.StudentActive},
		{TotalSessions: 20, SessionsCompleted: 5, SessionDuration: 1, TotalHours: 20, TotalPayment: 10000, PaidAmount: 2500, Status: models.StudentInactive},
	}

	got := Aggregate(students)

	wantTotalSessions := 0
	wantCompleted := 0
	for _, s := range students {
		wantTotalSessions += s.TotalSessions
		wantCompleted += s.SessionsCompleted
	}
	assert.Equal(t, wantTotalSessions, got.TotalSessions)
	assert.Equal(t, wantCompleted, got.CompletedSessions)
	assert.Equal(t, 3, got.TotalStudents)

	// Second student finished all sessions, third is inactive: only the first
	// contributes an active session and its hour rate.
	assert.Equal(t, 1, got.ActiveSessions)
	assert.InDelta(t, 1.5, got.ActiveHours, 1e-9)

	// 17 of 38 sessions done.
	assert.Equal(t, 45, got.OverallProgress)
	assert.GreaterOrEqual(t, got.OverallProgress, 0)
	assert.LessOrEqual(t, got.OverallProgress, 100)
}

func TestAggregate_PendingHoursCanGoNegative(t *testing.T) {
	// Stored total hours disagree with session accounting; the discrepancy
	// must stay visible rather than be clamped.
	got := Aggregate([]models.Student{{
		TotalSessions:     4,
		SessionsCompleted: 4,
		SessionDuration:   3,
		TotalHours:        10,
	}})

	assert.Equal(t, float64(12), got.CompletedHours)
	assert.Equal(t, float64(-2), got.PendingHours)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed float64
		total     float64
		want      int
	}{
		{"zero total", 5, 0, 0},
		{"negative total", 5, -1, 0},
		{"half", 6, 12, 50},
		{"rounds up", 1, 3, 33},
		{"rounds half up", 1, 8, 13},
		{"complete", 12, 12, 100},
		{"over-complete clamps", 15, 12, 100},
		{"negative completed clamps", -3, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(tt.completed, tt.total))
		})
	}
}

func TestPerStudentProgress(t *testing.T) {
	s := models.Student{
		TotalSessions:     10,
		SessionsCompleted: 5,
		SessionDuration:   2,
		TotalHours:        20,
		TotalPayment:      1000,
		PaidAmount:        250,
	}

	assert.Equal(t, 50, SessionProgress(s))
	assert.Equal(t, 50, HoursProgress(s))
	assert.Equal(t, 25, PaymentProgress(s))

	var zero models.Student
	assert.Equal(t, 0, SessionProgress(zero))
	assert.Equal(t, 0, HoursProgress(zero))
	assert.Equal(t, 0, PaymentProgress(zero))
}

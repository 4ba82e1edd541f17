// Package stats folds student records into dashboard summary statistics.
// Everything here is a pure function over its inputs; callers pass a
// pre-filtered student slice to scope the result to a mentor, a coordinator
// or the whole organization.
package stats

import (
	"math"

	"github.com/mentorhub/dashboard-service/internal/models"
)

// DashboardStats is the aggregate produced by one Aggregate call. It is
// derived on demand and never stored.
type DashboardStats struct {
	TotalStudents int `json:"total_students"`

	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	PendingSessions   int `json:"pending_sessions"`
	ActiveSessions    int `json:"active_sessions"`

	TotalHours     float64 `json:"total_hours"`
	CompletedHours float64 `json:"completed_hours"`
	PendingHours   float64 `json:"pending_hours"`
	ActiveHours    float64 `json:"active_hours"`

	TotalPayments     float64 `json:"total_payments"`
	CompletedPayments float64 `json:"completed_payments"`
	PendingPayments   float64 `json:"pending_payments"`

	OverallProgress int `json:"overall_progress"`
}

// Aggregate folds a student collection into a DashboardStats summary.
//
// Completed hours are recomputed from sessionsCompleted * sessionDuration
// rather than read from the stored per-student column, so pending hours can
// go negative when the stored totals disagree with the session accounting;
// that discrepancy is deliberately left visible instead of clamped.
//
// A student counts one active session while it is active and still has
// sessions left; its active hours contribution is the per-session hour rate
// (totalHours / totalSessions), a proxy rather than measured elapsed time.
func Aggregate(students []models.Student) DashboardStats {
	var out DashboardStats
	out.TotalStudents = len(students)

	for _, s := range students {
		out.TotalSessions += s.TotalSessions
		out.CompletedSessions += s.SessionsCompleted
		out.TotalHours += s.TotalHours
		out.CompletedHours += float64(s.SessionsCompleted) * s.SessionDuration
		out.TotalPayments += s.TotalPayment
		out.CompletedPayments += s.PaidAmount

		if s.Status == models.StudentActive && s.SessionsCompleted < s.TotalSessions {
			out.ActiveSessions++
			if s.TotalSessions > 0 {
				out.ActiveHours += s.TotalHours / float64(s.TotalSessions)
			}
		}
	}

	out.PendingSessions = out.TotalSessions - out.CompletedSessions
	out.PendingHours = out.TotalHours - out.CompletedHours
	out.PendingPayments = out.TotalPayments - out.CompletedPayments
	out.OverallProgress = Progress(float64(out.CompletedSessions), float64(out.TotalSessions))

	return out
}

// Progress is the single percentage helper for the whole repo: 0 when total
// is not positive, otherwise round(100*completed/total) clamped to [0,100].
// Every progress computation goes through here so a zero total can never
// leak a NaN or a value outside the percentage range.
func Progress(completed, total float64) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(100 * completed / total))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// SessionProgress returns a student's session completion percentage.
func SessionProgress(s models.Student) int {
	return Progress(float64(s.SessionsCompleted), float64(s.TotalSessions))
}

// HoursProgress returns a student's hour completion percentage, derived from
// session accounting like Aggregate rather than the stored hour columns.
func HoursProgress(s models.Student) int {
	return Progress(float64(s.SessionsCompleted)*s.SessionDuration, s.TotalHours)
}

// PaymentProgress returns a student's payment completion percentage.
func PaymentProgress(s models.Student) int {
	return Progress(s.PaidAmount, s.TotalPayment)
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mentorhub/dashboard-service/internal/models"
	"github.com/mentorhub/dashboard-service/internal/repositories"
	"github.com/mentorhub/dashboard-service/internal/stats"
)

// ExportService renders the student roster and dashboard aggregates as
// downloadable files.
type ExportService interface {
	StudentsXLSX(ctx context.Context, filters repositories.StudentFilters) ([]byte, string, error)
	StudentsCSV(ctx context.Context, filters repositories.StudentFilters) ([]byte, string, error)
	StatsXLSX(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var studentHeaders = []string{
	"ID", "Name", "Email", "Status", "Mentor ID",
	"Total Sessions", "Sessions Completed", "Sessions Remaining",
	"Total Hours", "Completed Hours", "Pending Hours",
	"Total Payment", "Paid Amount", "Pending Payment", "Progress %",
}

func studentRow(st models.Student) []string {
	mentorID := ""
	if st.MentorID != nil {
		mentorID = *st.MentorID
	}
	return []string{
		st.ID,
		st.Name,
		st.Email,
		string(st.Status),
		mentorID,
		strconv.Itoa(st.TotalSessions),
		strconv.Itoa(st.SessionsCompleted),
		strconv.Itoa(st.SessionsRemaining),
		formatFloat(float64(st.TotalSessions) * st.SessionDuration),
		formatFloat(float64(st.SessionsCompleted) * st.SessionDuration),
		formatFloat(float64(st.TotalSessions-st.SessionsCompleted) * st.SessionDuration),
		formatFloat(st.TotalPayment),
		formatFloat(st.PaidAmount),
		formatFloat(st.TotalPayment - st.PaidAmount),
		strconv.Itoa(stats.SessionProgress(st)),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (s *exportService) StudentsXLSX(ctx context.Context, filters repositories.StudentFilters) ([]byte, string, error) {
	students, _, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load students: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range studentHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}
	for row, st := range students {
		for col, v := range studentRow(st) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("students_%s.xlsx", time.Now().Format("2006-01-02"))
	s.logger.Info("Students exported", "format", "xlsx", "count", len(students))
	return buf.Bytes(), filename, nil
}

func (s *exportService) StudentsCSV(ctx context.Context, filters repositories.StudentFilters) ([]byte, string, error) {
	students, _, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load students: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(studentHeaders); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, st := range students {
		if err := w.Write(studentRow(st)); err != nil {
			return nil, "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to render csv: %w", err)
	}

	filename := fmt.Sprintf("students_%s.csv", time.Now().Format("2006-01-02"))
	s.logger.Info("Students exported", "format", "csv", "count", len(students))
	return buf.Bytes(), filename, nil
}

func (s *exportService) StatsXLSX(ctx context.Context) ([]byte, string, error) {
	students, err := s.repo.Student().GetAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load students: %w", err)
	}
	agg := stats.Aggregate(students)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Dashboard"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Students", agg.TotalStudents},
		{"Total Sessions", agg.TotalSessions},
		{"Completed Sessions", agg.CompletedSessions},
		{"Pending Sessions", agg.PendingSessions},
		{"Active Sessions", agg.ActiveSessions},
		{"Total Hours", agg.TotalHours},
		{"Completed Hours", agg.CompletedHours},
		{"Pending Hours", agg.PendingHours},
		{"Active Hours", agg.ActiveHours},
		{"Total Payments", agg.TotalPayments},
		{"Completed Payments", agg.CompletedPayments},
		{"Pending Payments", agg.PendingPayments},
		{"Overall Progress", agg.OverallProgress},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("dashboard_%s.xlsx", time.Now().Format("2006-01-02"))
	s.logger.Info("Dashboard stats exported", "format", "xlsx")
	return buf.Bytes(), filename, nil
}

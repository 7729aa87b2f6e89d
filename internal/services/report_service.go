package services

import (
	"context"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/pdf"
)

// ReportService aggregates the viewer's visible set for the summary
// endpoint and the PDF export.
type ReportService struct {
	tasks TaskService
	pdf   pdf.Generator
}

func NewReportService(tasks TaskService, gen pdf.Generator) *ReportService {
	return &ReportService{tasks: tasks, pdf: gen}
}

type Summary struct {
	Counts     TaskCounts `json:"counts"`
	ByPriority struct {
		Low    int `json:"low"`
		Medium int `json:"medium"`
		High   int `json:"high"`
	} `json:"by_priority"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (s *ReportService) GetSummary(ctx context.Context, viewerID int64, loc *time.Location) (*Summary, error) {
	tasks, err := s.tasks.VisibleTasks(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sum := &Summary{
		Counts:      CountTasks(tasks, now, loc),
		GeneratedAt: now,
	}
	for _, t := range tasks {
		switch t.Priority {
		case models.PriorityLow:
			sum.ByPriority.Low++
		case models.PriorityMedium:
			sum.ByPriority.Medium++
		case models.PriorityHigh:
			sum.ByPriority.High++
		}
	}
	return sum, nil
}

// ExportPDF renders the visible list (due-date order) to a PDF file
// and returns the path for download.
func (s *ReportService) ExportPDF(ctx context.Context, viewerID int64, viewerEmail string, loc *time.Location) (string, error) {
	tasks, err := s.tasks.VisibleTasks(ctx, viewerID)
	if err != nil {
		return "", err
	}
	SortTasks(tasks, "due_date")

	now := time.Now()
	data := pdf.TaskReportData{
		ViewerEmail: viewerEmail,
		GeneratedAt: now,
	}
	for _, t := range tasks {
		row := pdf.TaskRow{
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Shared:   t.IsShared,
		}
		if t.DueDate != nil {
			row.Due = t.DueDate.In(locOrLocal(loc)).Format("2006-01-02 15:04")
		}
		data.Rows = append(data.Rows, row)
	}
	return s.pdf.GenerateTaskReport(data)
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

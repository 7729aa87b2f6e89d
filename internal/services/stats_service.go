// internal/services/stats_service.go
package services

import (
	"sort"
	"strings"
	"time"

	"taskboard/internal/models"
)

// TaskCounts are the dashboard/sidebar counters, recomputed on every
// request over the viewer's visible snapshot. Nothing here persists.
type TaskCounts struct {
	All          int `json:"all"`
	DueToday     int `json:"due_today"`
	Overdue      int `json:"overdue"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	InProgress   int `json:"in_progress"`
	SharedWithMe int `json:"shared_with_me"`
}

// ListQuery mirrors the dashboard controls: free-text search, exact
// status/priority filters, a sidebar quick filter and a sort key.
type ListQuery struct {
	Search   string
	Status   models.TaskStatus
	Priority models.TaskPriority
	Quick    string // today|overdue|completed|shared
	SortBy   string // due_date|priority|status|title
}

// sameDay compares calendar days in the viewer's location.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// isDueToday uses calendar-day semantics; isOverdue compares instants.
// A task due earlier today is "today", not "overdue", until the day
// boundary passes. Completed tasks count toward neither.
func isDueToday(t models.TaskView, now time.Time, loc *time.Location) bool {
	return t.DueDate != nil && t.Status != models.StatusCompleted && sameDay(*t.DueDate, now, loc)
}

func isOverdue(t models.TaskView, now time.Time, loc *time.Location) bool {
	return t.DueDate != nil && t.Status != models.StatusCompleted &&
		t.DueDate.Before(now) && !sameDay(*t.DueDate, now, loc)
}

func CountTasks(tasks []models.TaskView, now time.Time, loc *time.Location) TaskCounts {
	if loc == nil {
		loc = time.Local
	}
	c := TaskCounts{All: len(tasks)}
	for _, t := range tasks {
		if isDueToday(t, now, loc) {
			c.DueToday++
		}
		if isOverdue(t, now, loc) {
			c.Overdue++
		}
		switch t.Status {
		case models.StatusCompleted:
			c.Completed++
		case models.StatusPending:
			c.Pending++
		case models.StatusInProgress:
			c.InProgress++
		}
		if t.IsShared {
			c.SharedWithMe++
		}
	}
	return c
}

func FilterTasks(tasks []models.TaskView, q ListQuery, now time.Time, loc *time.Location) []models.TaskView {
	if loc == nil {
		loc = time.Local
	}
	out := make([]models.TaskView, 0, len(tasks))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		switch q.Quick {
		case "today":
			if !isDueToday(t, now, loc) {
				continue
			}
		case "overdue":
			if !isOverdue(t, now, loc) {
				continue
			}
		case "completed":
			if t.Status != models.StatusCompleted {
				continue
			}
		case "shared":
			if !t.IsShared {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

var priorityRank = map[models.TaskPriority]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

// SortTasks sorts in place. Tasks without a due date sort after dated
// ones under the due_date key.
func SortTasks(tasks []models.TaskView, sortBy string) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch sortBy {
		case "priority":
			return priorityRank[a.Priority] > priorityRank[b.Priority]
		case "status":
			return a.Status < b.Status
		case "title":
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		default: // due_date
			switch {
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			default:
				return a.DueDate.Before(*b.DueDate)
			}
		}
	})
}

// DefaultPageSize matches the card grid of the dashboard.
const DefaultPageSize = 6

func PaginateTasks(tasks []models.TaskView, page, perPage int) ([]models.TaskView, int) {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(tasks)
	start := (page - 1) * perPage
	if start >= total {
		return []models.TaskView{}, total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return tasks[start:end], total
}

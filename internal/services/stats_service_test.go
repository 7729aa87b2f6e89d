package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func view(title string, status models.TaskStatus, due *time.Time) models.TaskView {
	return models.TaskView{Task: models.Task{Title: title, Status: status, DueDate: due, Priority: models.PriorityMedium}}
}

func at(t time.Time) *time.Time { return &t }

func TestDueTodayVersusOverdue(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, loc)

	earlierToday := view("earlier today", models.StatusPending, at(now.Add(-5*time.Hour)))
	laterToday := view("later today", models.StatusPending, at(now.Add(5*time.Hour)))
	yesterday := view("yesterday", models.StatusPending, at(now.Add(-24*time.Hour)))
	doneYesterday := view("done", models.StatusCompleted, at(now.Add(-24*time.Hour)))

	tasks := []models.TaskView{earlierToday, laterToday, yesterday, doneYesterday}
	c := CountTasks(tasks, now, loc)

	// a deadline missed earlier today is still "today", not "overdue"
	assert.Equal(t, 2, c.DueToday)
	assert.Equal(t, 1, c.Overdue)
	assert.Equal(t, 1, c.Completed)

	// once the day rolls over it flips into overdue
	tomorrow := now.Add(24 * time.Hour)
	c2 := CountTasks(tasks, tomorrow, loc)
	assert.Equal(t, 0, c2.DueToday)
	assert.Equal(t, 3, c2.Overdue)
}

func TestCountsSharedWithMe(t *testing.T) {
	shared := view("theirs", models.StatusPending, nil)
	shared.IsShared = true
	tasks := []models.TaskView{view("mine", models.StatusInProgress, nil), shared}

	c := CountTasks(tasks, time.Now(), time.UTC)
	assert.Equal(t, 2, c.All)
	assert.Equal(t, 1, c.SharedWithMe)
	assert.Equal(t, 1, c.InProgress)
	assert.Equal(t, 1, c.Pending)
}

func TestFilterTasksSearchAndQuick(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc)

	groceries := view("Buy groceries", models.StatusPending, at(now.Add(time.Hour)))
	report := view("Write report", models.StatusCompleted, nil)
	report.Description = "quarterly numbers"
	shared := view("Team sync", models.StatusPending, nil)
	shared.IsShared = true

	tasks := []models.TaskView{groceries, report, shared}

	got := FilterTasks(tasks, ListQuery{Search: "GROCER"}, now, loc)
	require.Len(t, got, 1)
	assert.Equal(t, "Buy groceries", got[0].Title)

	// search matches the description too
	got = FilterTasks(tasks, ListQuery{Search: "quarterly"}, now, loc)
	require.Len(t, got, 1)
	assert.Equal(t, "Write report", got[0].Title)

	got = FilterTasks(tasks, ListQuery{Quick: "today"}, now, loc)
	require.Len(t, got, 1)
	assert.Equal(t, "Buy groceries", got[0].Title)

	got = FilterTasks(tasks, ListQuery{Quick: "shared"}, now, loc)
	require.Len(t, got, 1)
	assert.Equal(t, "Team sync", got[0].Title)

	got = FilterTasks(tasks, ListQuery{Status: models.StatusCompleted}, now, loc)
	require.Len(t, got, 1)
	assert.Equal(t, "Write report", got[0].Title)
}

func TestSortTasksDueDateNilLast(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []models.TaskView{
		view("undated", models.StatusPending, nil),
		view("late", models.StatusPending, at(base.Add(48*time.Hour))),
		view("soon", models.StatusPending, at(base)),
	}

	SortTasks(tasks, "due_date")
	assert.Equal(t, "soon", tasks[0].Title)
	assert.Equal(t, "late", tasks[1].Title)
	assert.Equal(t, "undated", tasks[2].Title)
}

func TestSortTasksPriority(t *testing.T) {
	low := view("low", models.StatusPending, nil)
	low.Priority = models.PriorityLow
	high := view("high", models.StatusPending, nil)
	high.Priority = models.PriorityHigh

	tasks := []models.TaskView{low, high}
	SortTasks(tasks, "priority")
	assert.Equal(t, "high", tasks[0].Title)
}

func TestPaginateTasks(t *testing.T) {
	var tasks []models.TaskView
	for i := 0; i < 8; i++ {
		tasks = append(tasks, view("t", models.StatusPending, nil))
	}

	page, total := PaginateTasks(tasks, 1, DefaultPageSize)
	assert.Equal(t, 8, total)
	assert.Len(t, page, 6)

	page, total = PaginateTasks(tasks, 2, DefaultPageSize)
	assert.Equal(t, 8, total)
	assert.Len(t, page, 2)

	// past the end is an empty page, not an error
	page, total = PaginateTasks(tasks, 5, DefaultPageSize)
	assert.Equal(t, 8, total)
	assert.Empty(t, page)
}

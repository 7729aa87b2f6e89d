// internal/services/task_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/authz"
	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// TaskService is the task access service: it derives the per-viewer
// visible set and gates every mutation on the re-derived capability.
// The viewer id is always an explicit parameter, never ambient state.
type TaskService interface {
	VisibleTasks(ctx context.Context, viewerID int64) ([]models.TaskView, error)
	ResolveView(ctx context.Context, viewerID, taskID int64) (*models.TaskView, error)

	Create(ctx context.Context, ownerID int64, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, actorID, taskID int64, patch *models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, actorID, taskID int64) error
	UpdateStatus(ctx context.Context, actorID, taskID int64, to models.TaskStatus) (*models.Task, error)
	ToggleComplete(ctx context.Context, actorID, taskID int64) (*models.Task, error)
}

type taskService struct {
	tasks  repositories.TaskRepository
	shares repositories.ShareRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(tasks repositories.TaskRepository, shares repositories.ShareRepository) TaskService {
	return &taskService{tasks: tasks, shares: shares}
}

// VisibleTasks returns owned ∪ shared-with-viewer, annotated with
// can_edit/is_shared. A task found in both halves is a data-integrity
// violation (the owner must never appear as a recipient) and is
// surfaced, not silently de-duplicated. No combined ordering is
// guaranteed; list shaping happens downstream.
func (s *taskService) VisibleTasks(ctx context.Context, viewerID int64) ([]models.TaskView, error) {
	owned, err := s.tasks.FindByOwner(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	shared, err := s.shares.FindTasksSharedWith(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	out := make([]models.TaskView, 0, len(owned)+len(shared))
	seen := make(map[int64]struct{}, len(owned))
	for _, t := range owned {
		seen[t.ID] = struct{}{}
		out = append(out, models.TaskView{Task: t, CanEdit: true, IsShared: false})
	}
	for _, st := range shared {
		if _, dup := seen[st.Task.ID]; dup {
			return nil, fmt.Errorf("task %d is both owned by and shared with user %d: data integrity violation", st.Task.ID, viewerID)
		}
		out = append(out, models.TaskView{
			Task:     st.Task,
			CanEdit:  st.Permission == models.PermissionEdit,
			IsShared: true,
			SharedBy: st.OwnerEmail,
		})
	}
	return out, nil
}

// ResolveView re-derives the capability from the store. Callers must
// not pass in a cached capability: this is the only trusted source.
func (s *taskService) ResolveView(ctx context.Context, viewerID, taskID int64) (*models.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if task.OwnerID == viewerID {
		return &models.TaskView{Task: *task, CanEdit: true, IsShared: false}, nil
	}
	share, err := s.shares.FindByTaskAndRecipient(ctx, taskID, viewerID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		// existing but invisible rows are indistinguishable from absent ones
		return nil, ErrNotFound
	}
	return &models.TaskView{
		Task:     *task,
		CanEdit:  share.Permission == models.PermissionEdit,
		IsShared: true,
	}, nil
}

func (s *taskService) Create(ctx context.Context, ownerID int64, task *models.Task) (*models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	task.OwnerID = ownerID
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.tasks.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// guard re-derives the view and checks the capability before any write
// is attempted.
func (s *taskService) guard(ctx context.Context, actorID, taskID int64, op authz.Operation) (*models.TaskView, error) {
	view, err := s.ResolveView(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allows(view, op) {
		return nil, ErrAccessDenied
	}
	return view, nil
}

func (s *taskService) Update(ctx context.Context, actorID, taskID int64, patch *models.TaskPatch) (*models.Task, error) {
	view, err := s.guard(ctx, actorID, taskID, authz.OpEditFields)
	if err != nil {
		return nil, err
	}

	update := view.Task
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		update.Title = *patch.Title
	}
	if patch.Description != nil {
		update.Description = *patch.Description
	}
	if patch.ClearDue {
		update.DueDate = nil
	} else if patch.DueDate != nil {
		update.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		if !isAllowedTaskPriority(*patch.Priority) {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, *patch.Priority)
		}
		update.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !IsAllowedStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *patch.Status)
		}
		update.Status = *patch.Status
	}
	update.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

func (s *taskService) Delete(ctx context.Context, actorID, taskID int64) error {
	if _, err := s.guard(ctx, actorID, taskID, authz.OpDelete); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

// UpdateStatus accepts any of the three statuses as a direct target:
// there is no enforced workflow, only the capability gate.
func (s *taskService) UpdateStatus(ctx context.Context, actorID, taskID int64, to models.TaskStatus) (*models.Task, error) {
	if !IsAllowedStatus(to) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, to)
	}
	view, err := s.guard(ctx, actorID, taskID, authz.OpChangeStatus)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.UpdateStatus(ctx, taskID, to); err != nil {
		return nil, err
	}
	updated := view.Task
	updated.Status = to
	updated.UpdatedAt = time.Now()
	return &updated, nil
}

func (s *taskService) ToggleComplete(ctx context.Context, actorID, taskID int64) (*models.Task, error) {
	view, err := s.guard(ctx, actorID, taskID, authz.OpChangeStatus)
	if err != nil {
		return nil, err
	}
	to := models.StatusCompleted
	if view.Status == models.StatusCompleted {
		to = models.StatusPending
	}
	if err := s.tasks.UpdateStatus(ctx, taskID, to); err != nil {
		return nil, err
	}
	updated := view.Task
	updated.Status = to
	updated.UpdatedAt = time.Now()
	return &updated, nil
}

func isAllowedTaskPriority(p models.TaskPriority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

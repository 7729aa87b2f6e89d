package authz

import "taskboard/internal/models"

// Operation names a task mutation for capability checks.
type Operation string

const (
	OpEditFields   Operation = "edit_fields"
	OpChangeStatus Operation = "change_status"
	OpDelete       Operation = "delete"
	OpShare        Operation = "share"
)

// Allows reports whether the viewer behind the given per-viewer task
// view may perform op. Edit-level operations need the edit capability;
// delete and share stay owner-only regardless of the granted permission.
func Allows(v *models.TaskView, op Operation) bool {
	if v == nil {
		return false
	}
	switch op {
	case OpEditFields, OpChangeStatus:
		return v.CanEdit
	case OpDelete, OpShare:
		return !v.IsShared
	}
	return false
}

func RequiresEdit(op Operation) bool {
	return op == OpEditFields || op == OpChangeStatus
}

package models

import "time"

// SharePermission is the capability granted to a share recipient.
type SharePermission string

const (
	PermissionView SharePermission = "view"
	PermissionEdit SharePermission = "edit"
)

func (p SharePermission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// TaskShare grants view or edit rights on a task to a non-owner.
// At most one active share exists per (task_id, shared_with_user_id).
type TaskShare struct {
	ID               int64           `json:"id"`
	TaskID           int64           `json:"task_id"`
	SharedByUserID   int64           `json:"shared_by_user_id"`
	SharedWithUserID int64           `json:"shared_with_user_id"`
	Permission       SharePermission `json:"permission"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ShareInfo is a TaskShare joined to the recipient's profile, as shown
// in the sharing dialog.
type ShareInfo struct {
	TaskShare
	RecipientEmail    string `json:"recipient_email"`
	RecipientFullName string `json:"recipient_full_name,omitempty"`
}

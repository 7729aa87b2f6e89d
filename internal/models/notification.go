package models

import (
	"encoding/json"
	"time"
)

// Notification types. Actionable types carry task_id/invitation_id in Data.
const (
	NotifTaskShared         = "task_shared"
	NotifTaskInvitation     = "task_invitation"
	NotifInvitationAccepted = "invitation_accepted"
	NotifInvitationRejected = "invitation_rejected"
	NotifShareRevoked       = "share_revoked"
)

type Notification struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationData is the opaque payload for actionable notifications.
type NotificationData struct {
	TaskID       int64 `json:"task_id,omitempty"`
	InvitationID int64 `json:"invitation_id,omitempty"`
}

func (d NotificationData) Raw() json.RawMessage {
	b, _ := json.Marshal(d)
	return b
}

// InvitationStatus tracks the accept/reject workflow of a task invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// TaskInvitation is the invite-then-accept path to a share. Accepting
// one creates the TaskShare row; the share table stays authoritative.
type TaskInvitation struct {
	ID         int64            `json:"id"`
	TaskID     int64            `json:"task_id"`
	InviterID  int64            `json:"inviter_id"`
	InviteeID  int64            `json:"invitee_id"`
	Permission SharePermission  `json:"permission"`
	Status     InvitationStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

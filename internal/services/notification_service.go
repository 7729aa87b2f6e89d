// internal/services/notification_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// notificationPageSize caps the in-app notification list.
const notificationPageSize = 20

// NotificationService covers the in-app notification feed and the
// invitation accept/reject workflow. Share rows stay authoritative:
// accepting an invitation creates the corresponding share.
type NotificationService interface {
	List(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error

	Invite(ctx context.Context, ownerID, taskID int64, recipientEmail string, permission models.SharePermission) (*models.TaskInvitation, error)
	RespondInvitation(ctx context.Context, userID, invitationID int64, accept bool) (*models.TaskInvitation, error)
}

type notificationService struct {
	repo        repositories.NotificationRepository
	invitations repositories.InvitationRepository
	shares      repositories.ShareRepository
	users       repositories.UserRepository
	tasks       TaskService
}

func NewNotificationService(
	repo repositories.NotificationRepository,
	invitations repositories.InvitationRepository,
	shares repositories.ShareRepository,
	users repositories.UserRepository,
	tasks TaskService,
) NotificationService {
	return &notificationService{
		repo:        repo,
		invitations: invitations,
		shares:      shares,
		users:       users,
		tasks:       tasks,
	}
}

func (s *notificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.repo.FindByUser(ctx, userID, notificationPageSize)
}

// MarkRead is idempotent: marking an already-read notification again
// is a no-op success.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != userID {
		return ErrNotFound
	}
	if n.Read {
		return nil
	}
	return s.repo.MarkRead(ctx, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) Invite(ctx context.Context, ownerID, taskID int64, recipientEmail string, permission models.SharePermission) (*models.TaskInvitation, error) {
	if !permission.Valid() {
		return nil, fmt.Errorf("%w: invalid permission %q", ErrValidation, permission)
	}
	view, err := s.tasks.ResolveView(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if view.IsShared {
		return nil, ErrAccessDenied
	}

	email := strings.TrimSpace(strings.ToLower(recipientEmail))
	recipient, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrUserNotFound
	}
	if recipient.ID == ownerID {
		return nil, ErrSelfShare
	}

	if existing, err := s.shares.FindByTaskAndRecipient(ctx, taskID, recipient.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyShared
	}
	if pending, err := s.invitations.FindPending(ctx, taskID, recipient.ID); err != nil {
		return nil, err
	} else if pending != nil {
		return nil, ErrAlreadyShared
	}

	inv := &models.TaskInvitation{
		TaskID:     taskID,
		InviterID:  ownerID,
		InviteeID:  recipient.ID,
		Permission: permission,
		Status:     models.InvitationPending,
	}
	if err := s.invitations.Store(ctx, inv); err != nil {
		return nil, err
	}

	s.push(ctx, &models.Notification{
		UserID:  recipient.ID,
		Type:    models.NotifTaskInvitation,
		Title:   "Task invitation",
		Message: fmt.Sprintf("You were invited to %q (%s permission)", view.Title, permission),
		Data:    models.NotificationData{TaskID: taskID, InvitationID: inv.ID}.Raw(),
	})
	return inv, nil
}

// RespondInvitation records the invitee's answer. Accepting creates
// the share row (unless one already exists); repeating the same answer
// succeeds, flipping a settled answer is a conflict.
func (s *notificationService) RespondInvitation(ctx context.Context, userID, invitationID int64, accept bool) (*models.TaskInvitation, error) {
	inv, err := s.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.InviteeID != userID {
		return nil, ErrNotFound
	}

	target := models.InvitationRejected
	if accept {
		target = models.InvitationAccepted
	}
	if inv.Status != models.InvitationPending {
		if inv.Status == target {
			return inv, nil
		}
		return nil, fmt.Errorf("%w: invitation already %s", ErrConflict, inv.Status)
	}

	if accept {
		existing, err := s.shares.FindByTaskAndRecipient(ctx, inv.TaskID, userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			share := &models.TaskShare{
				TaskID:           inv.TaskID,
				SharedByUserID:   inv.InviterID,
				SharedWithUserID: userID,
				Permission:       inv.Permission,
			}
			if err := s.shares.Store(ctx, share); err != nil {
				return nil, err
			}
		}
	}

	if err := s.invitations.UpdateStatus(ctx, invitationID, target); err != nil {
		return nil, err
	}
	inv.Status = target

	notifType := models.NotifInvitationRejected
	verb := "declined"
	if accept {
		notifType = models.NotifInvitationAccepted
		verb = "accepted"
	}
	s.push(ctx, &models.Notification{
		UserID:  inv.InviterID,
		Type:    notifType,
		Title:   "Invitation " + verb,
		Message: fmt.Sprintf("Your task invitation was %s", verb),
		Data:    models.NotificationData{TaskID: inv.TaskID, InvitationID: inv.ID}.Raw(),
	})
	return inv, nil
}

func (s *notificationService) push(ctx context.Context, n *models.Notification) {
	if err := s.repo.Store(ctx, n); err != nil {
		log.Printf("[notification][push][err] user=%d type=%s: %v", n.UserID, n.Type, err)
	}
}

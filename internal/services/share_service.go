// internal/services/share_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// ShareService owns the share workflow. Recipients are looked up by
// email, but every check and every persisted link is keyed on the
// resolved stable user id.
type ShareService interface {
	ShareTask(ctx context.Context, ownerID, taskID int64, recipientEmail string, permission models.SharePermission) (*models.TaskShare, error)
	ListShares(ctx context.Context, ownerID, taskID int64) ([]models.ShareInfo, error)
	UpdatePermission(ctx context.Context, ownerID, shareID int64, permission models.SharePermission) (*models.TaskShare, error)
	RevokeShare(ctx context.Context, actorID, shareID int64) error
}

type shareService struct {
	tasks         TaskService
	shares        repositories.ShareRepository
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
}

func NewShareService(
	tasks TaskService,
	shares repositories.ShareRepository,
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
) ShareService {
	return &shareService{tasks: tasks, shares: shares, users: users, notifications: notifications}
}

// resolveOwned loads the view as seen by actorID and requires ownership.
func (s *shareService) resolveOwned(ctx context.Context, actorID, taskID int64) (*models.TaskView, error) {
	view, err := s.tasks.ResolveView(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if view.IsShared {
		// visible through a share, but only the owner manages sharing
		return nil, ErrAccessDenied
	}
	return view, nil
}

func (s *shareService) ShareTask(ctx context.Context, ownerID, taskID int64, recipientEmail string, permission models.SharePermission) (*models.TaskShare, error) {
	if !permission.Valid() {
		return nil, fmt.Errorf("%w: invalid permission %q", ErrValidation, permission)
	}
	view, err := s.resolveOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
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

	// duplicate check by recipient id, not email
	existing, err := s.shares.FindByTaskAndRecipient(ctx, taskID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyShared
	}

	share := &models.TaskShare{
		TaskID:           taskID,
		SharedByUserID:   ownerID,
		SharedWithUserID: recipient.ID,
		Permission:       permission,
	}
	if err := s.shares.Store(ctx, share); err != nil {
		return nil, err
	}

	s.notify(ctx, &models.Notification{
		UserID:  recipient.ID,
		Type:    models.NotifTaskShared,
		Title:   "Task shared with you",
		Message: fmt.Sprintf("%q was shared with you (%s permission)", view.Title, permission),
		Data:    models.NotificationData{TaskID: taskID}.Raw(),
	})
	return share, nil
}

func (s *shareService) ListShares(ctx context.Context, ownerID, taskID int64) ([]models.ShareInfo, error) {
	if _, err := s.resolveOwned(ctx, ownerID, taskID); err != nil {
		return nil, err
	}
	return s.shares.ListByTask(ctx, taskID)
}

func (s *shareService) UpdatePermission(ctx context.Context, ownerID, shareID int64, permission models.SharePermission) (*models.TaskShare, error) {
	if !permission.Valid() {
		return nil, fmt.Errorf("%w: invalid permission %q", ErrValidation, permission)
	}
	share, err := s.shares.FindByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, ErrNotFound
	}
	if _, err := s.resolveOwned(ctx, ownerID, share.TaskID); err != nil {
		return nil, err
	}
	if err := s.shares.UpdatePermission(ctx, shareID, permission); err != nil {
		return nil, err
	}
	share.Permission = permission
	return share, nil
}

func (s *shareService) RevokeShare(ctx context.Context, actorID, shareID int64) error {
	share, err := s.shares.FindByID(ctx, shareID)
	if err != nil {
		return err
	}
	if share == nil {
		return ErrNotFound
	}
	view, err := s.resolveOwned(ctx, actorID, share.TaskID)
	if err != nil {
		return err
	}
	if err := s.shares.Delete(ctx, shareID); err != nil {
		return err
	}

	s.notify(ctx, &models.Notification{
		UserID:  share.SharedWithUserID,
		Type:    models.NotifShareRevoked,
		Title:   "Access removed",
		Message: fmt.Sprintf("Your access to %q was revoked", view.Title),
		Data:    models.NotificationData{TaskID: share.TaskID}.Raw(),
	})
	return nil
}

// notify is best-effort: the share mutation already succeeded.
func (s *shareService) notify(ctx context.Context, n *models.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Store(ctx, n); err != nil {
		log.Printf("[share][notify][err] user=%d type=%s: %v", n.UserID, n.Type, err)
	}
}

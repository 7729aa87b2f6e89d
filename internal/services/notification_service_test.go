package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newFixture()
	user := f.users.add("user@example.com")
	n := &models.Notification{UserID: user.ID, Type: models.NotifTaskShared, Title: "x"}
	require.NoError(t, f.notifications.Store(context.Background(), n))

	require.NoError(t, f.notifSvc.MarkRead(context.Background(), user.ID, n.ID))
	require.NoError(t, f.notifSvc.MarkRead(context.Background(), user.ID, n.ID), "second call is a no-op success")

	got, _ := f.notifications.FindByID(context.Background(), n.ID)
	assert.True(t, got.Read)
}

func TestMarkReadForeignNotification(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	other := f.users.add("other@example.com")
	n := &models.Notification{UserID: owner.ID, Type: models.NotifTaskShared}
	require.NoError(t, f.notifications.Store(context.Background(), n))

	err := f.notifSvc.MarkRead(context.Background(), other.ID, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInviteThenAcceptCreatesShare(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	invitee := f.users.add("invitee@example.com")
	task := f.addTask(owner.ID, "plan", models.StatusPending)

	inv, err := f.notifSvc.Invite(context.Background(), owner.ID, task.ID, invitee.Email, models.PermissionEdit)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, inv.Status)

	// no access before the answer
	_, err = f.taskSvc.ResolveView(context.Background(), invitee.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	answered, err := f.notifSvc.RespondInvitation(context.Background(), invitee.ID, inv.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, answered.Status)

	view, err := f.taskSvc.ResolveView(context.Background(), invitee.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, view.CanEdit)
	assert.True(t, view.IsShared)

	// inviter is told about the acceptance
	feed := f.notifications.forUser(owner.ID)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotifInvitationAccepted, feed[0].Type)
}

func TestRespondInvitationConflicts(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	invitee := f.users.add("invitee@example.com")
	task := f.addTask(owner.ID, "plan", models.StatusPending)

	inv, err := f.notifSvc.Invite(context.Background(), owner.ID, task.ID, invitee.Email, models.PermissionView)
	require.NoError(t, err)

	_, err = f.notifSvc.RespondInvitation(context.Background(), invitee.ID, inv.ID, false)
	require.NoError(t, err)

	// repeating the same answer is fine
	again, err := f.notifSvc.RespondInvitation(context.Background(), invitee.ID, inv.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationRejected, again.Status)

	// flipping it is not
	_, err = f.notifSvc.RespondInvitation(context.Background(), invitee.ID, inv.ID, true)
	assert.ErrorIs(t, err, ErrConflict)

	// rejected invitation granted nothing
	_, err = f.taskSvc.ResolveView(context.Background(), invitee.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespondInvitationInviteeOnly(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	invitee := f.users.add("invitee@example.com")
	stranger := f.users.add("stranger@example.com")
	task := f.addTask(owner.ID, "plan", models.StatusPending)

	inv, err := f.notifSvc.Invite(context.Background(), owner.ID, task.ID, invitee.Email, models.PermissionView)
	require.NoError(t, err)

	_, err = f.notifSvc.RespondInvitation(context.Background(), stranger.ID, inv.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInviteRejectsExistingGrant(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	friend := f.users.add("friend@example.com")
	task := f.addTask(owner.ID, "plan", models.StatusPending)
	f.addShare(task.ID, owner.ID, friend.ID, models.PermissionView)

	_, err := f.notifSvc.Invite(context.Background(), owner.ID, task.ID, friend.Email, models.PermissionView)
	assert.ErrorIs(t, err, ErrAlreadyShared)

	// a pending invitation blocks a second one too
	other := f.users.add("other@example.com")
	_, err = f.notifSvc.Invite(context.Background(), owner.ID, task.ID, other.Email, models.PermissionView)
	require.NoError(t, err)
	_, err = f.notifSvc.Invite(context.Background(), owner.ID, task.ID, other.Email, models.PermissionEdit)
	assert.ErrorIs(t, err, ErrAlreadyShared)
}

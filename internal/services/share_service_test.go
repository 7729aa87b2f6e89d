package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func TestShareTaskHappyPath(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	friend := f.users.add("friend@example.com")
	task := f.addTask(owner.ID, "trip", models.StatusPending)

	share, err := f.shareSvc.ShareTask(context.Background(), owner.ID, task.ID, "Friend@Example.com", models.PermissionView)
	require.NoError(t, err)
	assert.Equal(t, friend.ID, share.SharedWithUserID, "email lookup is case-insensitive")
	assert.Equal(t, owner.ID, share.SharedByUserID)

	// recipient got a feed entry
	feed := f.notifications.forUser(friend.ID)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotifTaskShared, feed[0].Type)
}

func TestShareTaskRejectsUnknownRecipient(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	task := f.addTask(owner.ID, "trip", models.StatusPending)

	_, err := f.shareSvc.ShareTask(context.Background(), owner.ID, task.ID, "ghost@example.com", models.PermissionView)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, f.shares.writes)
}

func TestShareTaskRejectsSelf(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	task := f.addTask(owner.ID, "trip", models.StatusPending)

	_, err := f.shareSvc.ShareTask(context.Background(), owner.ID, task.ID, owner.Email, models.PermissionEdit)
	assert.ErrorIs(t, err, ErrSelfShare)
}

func TestShareTaskRejectsDuplicate(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	friend := f.users.add("friend@example.com")
	task := f.addTask(owner.ID, "trip", models.StatusPending)

	_, err := f.shareSvc.ShareTask(context.Background(), owner.ID, task.ID, friend.Email, models.PermissionView)
	require.NoError(t, err)

	// second share to the same person conflicts even with another permission
	_, err = f.shareSvc.ShareTask(context.Background(), owner.ID, task.ID, friend.Email, models.PermissionEdit)
	assert.ErrorIs(t, err, ErrAlreadyShared)
}

func TestRevokeShareOwnerOnly(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	friend := f.users.add("friend@example.com")
	task := f.addTask(owner.ID, "trip", models.StatusPending)
	share := f.addShare(task.ID, owner.ID, friend.ID, models.PermissionView)

	// recipient cannot drop their own grant through this endpoint
	err := f.shareSvc.RevokeShare(context.Background(), friend.ID, share.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, f.shareSvc.RevokeShare(context.Background(), owner.ID, share.ID))

	// the task drops out of the recipient's visible set immediately
	_, err = f.taskSvc.ResolveView(context.Background(), friend.ID, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	feed := f.notifications.forUser(friend.ID)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotifShareRevoked, feed[0].Type)
}

func TestListSharesJoinsRecipientInfo(t *testing.T) {
	f := newFixture()
	owner := f.users.add("owner@example.com")
	friend := f.users.add("friend@example.com")
	task := f.addTask(owner.ID, "trip", models.StatusPending)
	f.addShare(task.ID, owner.ID, friend.ID, models.PermissionEdit)

	shares, err := f.shareSvc.ListShares(context.Background(), owner.ID, task.ID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "friend@example.com", shares[0].RecipientEmail)

	// non-owners get nothing, not even the list
	_, err = f.shareSvc.ListShares(context.Background(), friend.ID, task.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func newUserService(users *fakeUserRepo) UserService {
	return NewUserService(users, nil, NewAuthService())
}

func TestRegisterNormalizesEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := newUserService(users)

	profile, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "  Alice@Example.COM ",
		Password: "secret1",
		FullName: " Alice ",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "Alice", profile.FullName)
	assert.NotEqual(t, "secret1", profile.PasswordHash)

	// the stored hash verifies against the original password
	auth := NewAuthService()
	assert.NoError(t, auth.CheckPassword(profile.PasswordHash, "secret1"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	users.add("taken@example.com")
	svc := newUserService(users)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Email:    "Taken@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), &models.RegisterRequest{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfilePartial(t *testing.T) {
	users := newFakeUserRepo()
	u := users.add("user@example.com")
	u.FullName = "Old Name"
	svc := newUserService(users)

	name := "New Name"
	updated, err := svc.UpdateProfile(context.Background(), u.ID, &name, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)

	// untouched fields survive
	off := false
	updated, err = svc.UpdateProfile(context.Background(), u.ID, nil, nil, &off)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.False(t, updated.NotifyTelegram)

	_, err = svc.UpdateProfile(context.Background(), 999, &name, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitmyphone-backend-go/internal/models"
)

func TestUserServiceGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a fresh profile with defaults", func(t *testing.T) {
		state := newFakeState()
		svc := NewUserService(&fakeUserRepo{state: state})

		user, created, err := svc.GetOrCreate(ctx, "u1", "dana@example.com", "Dana", "https://example.com/p.png")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Equal(t, 0, user.Points)
		assert.False(t, user.IsSuspended)
		assert.Equal(t, "dana@example.com", user.Email)
		require.NotNil(t, state.users["u1"])
	})

	t.Run("returns the existing profile untouched", func(t *testing.T) {
		state := newFakeState()
		state.users["u1"] = &models.User{ID: "u1", DisplayName: "Dana", Points: 42, Role: models.RoleAdmin}
		svc := NewUserService(&fakeUserRepo{state: state})

		user, created, err := svc.GetOrCreate(ctx, "u1", "other@example.com", "Other", "")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "Dana", user.DisplayName)
		assert.Equal(t, 42, user.Points)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})
}

func TestUserServiceAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("update role", func(t *testing.T) {
		state := newFakeState()
		state.users["u1"] = &models.User{ID: "u1", Role: models.RoleUser}
		svc := NewUserService(&fakeUserRepo{state: state})

		user, err := svc.UpdateRole(ctx, "u1", models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Equal(t, models.RoleAdmin, state.users["u1"].Role)
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		state := newFakeState()
		state.users["u1"] = &models.User{ID: "u1"}
		svc := NewUserService(&fakeUserRepo{state: state})

		_, err := svc.UpdateRole(ctx, "u1", "superadmin")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("suspension round trip", func(t *testing.T) {
		state := newFakeState()
		state.users["u1"] = &models.User{ID: "u1"}
		svc := NewUserService(&fakeUserRepo{state: state})

		user, err := svc.SetSuspension(ctx, "u1", true)
		require.NoError(t, err)
		assert.True(t, user.IsSuspended)

		user, err = svc.SetSuspension(ctx, "u1", false)
		require.NoError(t, err)
		assert.False(t, user.IsSuspended)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(&fakeUserRepo{state: newFakeState()})
		_, err := svc.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRegisterFCMToken(t *testing.T) {
	ctx := context.Background()
	state := newFakeState()
	state.users["u1"] = &models.User{ID: "u1"}
	svc := NewUserService(&fakeUserRepo{state: state})

	require.NoError(t, svc.RegisterFCMToken(ctx, "u1", "tok-a"))
	require.NoError(t, svc.RegisterFCMToken(ctx, "u1", "tok-b"))
	// Same token again is a no-op.
	require.NoError(t, svc.RegisterFCMToken(ctx, "u1", "tok-a"))

	assert.Equal(t, []string{"tok-a", "tok-b"}, state.users["u1"].FCMTokens)

	assert.Error(t, svc.RegisterFCMToken(ctx, "u1", ""))
}

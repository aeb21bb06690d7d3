package service

import (
	"context"
	"testing"

	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessProfile(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.profiles.GetBusinessProfile(ctx, clerk)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = s.profiles.SaveBusinessProfile(ctx, clerk, entity.BusinessProfile{Name: " "})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = s.profiles.SaveBusinessProfile(ctx, guest, entity.BusinessProfile{Name: "Shop"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = s.profiles.SaveBusinessProfile(ctx, clerk, entity.BusinessProfile{Name: "Fade Barbers", Phone: "555-0100"})
	require.NoError(t, err)
	_, err = s.profiles.SaveBusinessProfile(ctx, admin, entity.BusinessProfile{Name: "Fade Barbers Ltd"})
	require.NoError(t, err)

	profile, err := s.profiles.GetBusinessProfile(ctx, clerk)
	require.NoError(t, err)
	assert.Equal(t, "Fade Barbers Ltd", profile.Name)
	assert.Empty(t, profile.Phone)
}

func TestUserProfile(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.profiles.GetCallerUserProfile(ctx, guest)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = s.profiles.SaveCallerUserProfile(ctx, guest, entity.UserProfile{Name: "Gina", Email: "gina@example.com"})
	require.NoError(t, err)

	own, err := s.profiles.GetCallerUserProfile(ctx, guest)
	require.NoError(t, err)
	assert.Equal(t, "Gina", own.Name)

	_, err = s.profiles.GetUserProfile(ctx, clerk, guest.UserID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	other, err := s.profiles.GetUserProfile(ctx, admin, guest.UserID)
	require.NoError(t, err)
	assert.Equal(t, "gina@example.com", other.Email)

	_, err = s.profiles.SaveCallerUserProfile(ctx, clerk, entity.UserProfile{})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRoles(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	caller, err := s.roles.Resolve(ctx, clerk.UserID)
	require.NoError(t, err)
	assert.Equal(t, enum.UserRoleGuest, caller.Role)

	require.NoError(t, s.roles.SeedAdmin(ctx, admin.UserID))
	isAdmin, err := s.roles.IsCallerAdmin(ctx, Caller{UserID: admin.UserID})
	require.NoError(t, err)
	assert.True(t, isAdmin)

	err = s.roles.AssignCallerUserRole(ctx, clerk, guest.UserID, "admin")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	err = s.roles.AssignCallerUserRole(ctx, admin, clerk.UserID, "owner")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	require.NoError(t, s.roles.AssignCallerUserRole(ctx, admin, clerk.UserID, "user"))
	role, err := s.roles.GetCallerUserRole(ctx, clerk)
	require.NoError(t, err)
	assert.Equal(t, enum.UserRoleUser, role)

	// seeding never downgrades an existing role
	require.NoError(t, s.roles.SeedAdmin(ctx, clerk.UserID))
	role, err = s.roles.GetCallerUserRole(ctx, clerk)
	require.NoError(t, err)
	assert.Equal(t, enum.UserRoleUser, role)
}

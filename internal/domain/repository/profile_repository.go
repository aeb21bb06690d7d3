package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
)

// ProfileRepository stores the business profile and per-user profiles.
// Getters return nil, nil when nothing has been saved yet.
type ProfileRepository interface {
	GetBusinessProfile(ctx context.Context) (*entity.BusinessProfile, error)
	SaveBusinessProfile(ctx context.Context, profile *entity.BusinessProfile) error
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	SaveUserProfile(ctx context.Context, userID uuid.UUID, profile *entity.UserProfile) error
}

// RoleRepository maps caller identities to roles
type RoleRepository interface {
	// GetRole returns UserRoleGuest for identities without an assigned role
	GetRole(ctx context.Context, userID uuid.UUID) (enum.UserRole, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role enum.UserRole) error
}

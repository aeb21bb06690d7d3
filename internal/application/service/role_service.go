package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
)

// RoleService resolves and assigns caller roles
type RoleService struct {
	roleRepo repository.RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// Resolve builds the Caller for an authenticated identity
func (s *RoleService) Resolve(ctx context.Context, userID uuid.UUID) (Caller, error) {
	role, err := s.roleRepo.GetRole(ctx, userID)
	if err != nil {
		return Caller{}, err
	}
	return Caller{UserID: userID, Role: role}, nil
}

// GetCallerUserRole reads the caller's current role from the store
func (s *RoleService) GetCallerUserRole(ctx context.Context, caller Caller) (enum.UserRole, error) {
	return s.roleRepo.GetRole(ctx, caller.UserID)
}

func (s *RoleService) IsCallerAdmin(ctx context.Context, caller Caller) (bool, error) {
	role, err := s.GetCallerUserRole(ctx, caller)
	if err != nil {
		return false, err
	}
	return role == enum.UserRoleAdmin, nil
}

// AssignCallerUserRole sets the role of userID. Only admins may assign roles.
func (s *RoleService) AssignCallerUserRole(ctx context.Context, caller Caller, userID uuid.UUID, role string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if userID == uuid.Nil {
		return apperror.NewInvalidInputError("user id is required")
	}
	parsed, err := enum.ParseUserRole(role)
	if err != nil {
		return apperror.NewInvalidInputError(err.Error())
	}

	if err := s.roleRepo.AssignRole(ctx, userID, parsed); err != nil {
		return err
	}
	log.Printf("Role of %s set to %s by %s", userID, parsed, caller.UserID)
	return nil
}

// SeedAdmin grants the admin role to userID unless it already has a role
func (s *RoleService) SeedAdmin(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}
	current, err := s.roleRepo.GetRole(ctx, userID)
	if err != nil {
		return err
	}
	if current != enum.UserRoleGuest {
		return nil
	}
	return s.roleRepo.AssignRole(ctx, userID, enum.UserRoleAdmin)
}

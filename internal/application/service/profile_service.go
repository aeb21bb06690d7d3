package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/pkg/apperror"
)

// ProfileService handles the business profile and user profiles
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetBusinessProfile(ctx context.Context, caller Caller) (*entity.BusinessProfile, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetBusinessProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Business profile")
	}
	return profile, nil
}

// SaveBusinessProfile replaces the business profile
func (s *ProfileService) SaveBusinessProfile(ctx context.Context, caller Caller, profile entity.BusinessProfile) (*entity.BusinessProfile, error) {
	if err := requireLedgerAccess(caller); err != nil {
		return nil, err
	}
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return nil, apperror.NewInvalidInputError("business name is required")
	}
	if err := s.profileRepo.SaveBusinessProfile(ctx, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetCallerUserProfile returns the profile saved by the caller
func (s *ProfileService) GetCallerUserProfile(ctx context.Context, caller Caller) (*entity.UserProfile, error) {
	return s.getUserProfile(ctx, caller.UserID)
}

// SaveCallerUserProfile replaces the caller's own profile. Any role may do this.
func (s *ProfileService) SaveCallerUserProfile(ctx context.Context, caller Caller, profile entity.UserProfile) (*entity.UserProfile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return nil, apperror.NewInvalidInputError("profile name is required")
	}
	if err := s.profileRepo.SaveUserProfile(ctx, caller.UserID, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile returns another user's profile. Only admins may read profiles other than their own.
func (s *ProfileService) GetUserProfile(ctx context.Context, caller Caller, userID uuid.UUID) (*entity.UserProfile, error) {
	if userID != caller.UserID {
		if err := requireAdmin(caller); err != nil {
			return nil, err
		}
	}
	return s.getUserProfile(ctx, userID)
}

func (s *ProfileService) getUserProfile(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	profile, err := s.profileRepo.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("User profile")
	}
	return profile, nil
}

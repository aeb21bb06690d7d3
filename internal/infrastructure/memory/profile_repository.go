package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
)

type profileRepository struct {
	db *DB
}

// NewProfileRepository creates a new in-memory profile repository
func NewProfileRepository(db *DB) domainRepo.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetBusinessProfile(ctx context.Context) (*entity.BusinessProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if r.db.businessProfile == nil {
		return nil, nil
	}
	profile := *r.db.businessProfile
	return &profile, nil
}

func (r *profileRepository) SaveBusinessProfile(ctx context.Context, profile *entity.BusinessProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	saved := *profile
	r.db.businessProfile = &saved
	return nil
}

func (r *profileRepository) GetUserProfile(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	profile, ok := r.db.userProfiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (r *profileRepository) SaveUserProfile(ctx context.Context, userID uuid.UUID, profile *entity.UserProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.userProfiles[userID] = *profile
	return nil
}

type roleRepository struct {
	db *DB
}

// NewRoleRepository creates a new in-memory role repository
func NewRoleRepository(db *DB) domainRepo.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetRole(ctx context.Context, userID uuid.UUID) (enum.UserRole, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if role, ok := r.db.roles[userID]; ok {
		return role, nil
	}
	return enum.UserRoleGuest, nil
}

func (r *roleRepository) AssignRole(ctx context.Context, userID uuid.UUID, role enum.UserRole) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.roles[userID] = role
	return nil
}

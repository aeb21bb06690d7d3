package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/receiptbook-api/internal/domain/entity"
	"github.com/sangkips/receiptbook-api/internal/domain/enum"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// the business profile table holds a single row
const businessProfileID = 1

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domainRepo.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetBusinessProfile(ctx context.Context) (*entity.BusinessProfile, error) {
	var rec BusinessProfileRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", businessProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.BusinessProfile{Name: rec.Name, Email: rec.Email, Address: rec.Address, Phone: rec.Phone}, nil
}

func (r *profileRepository) SaveBusinessProfile(ctx context.Context, profile *entity.BusinessProfile) error {
	rec := BusinessProfileRecord{
		ID:      businessProfileID,
		Name:    profile.Name,
		Email:   profile.Email,
		Address: profile.Address,
		Phone:   profile.Phone,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

func (r *profileRepository) GetUserProfile(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	var rec UserProfileRecord
	err := r.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.UserProfile{Name: rec.Name, Email: rec.Email}, nil
}

func (r *profileRepository) SaveUserProfile(ctx context.Context, userID uuid.UUID, profile *entity.UserProfile) error {
	rec := UserProfileRecord{UserID: userID, Name: profile.Name, Email: profile.Email}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) domainRepo.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetRole(ctx context.Context, userID uuid.UUID) (enum.UserRole, error) {
	var rec UserRoleRecord
	err := r.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return enum.UserRoleGuest, nil
	}
	if err != nil {
		return "", err
	}
	return rec.Role, nil
}

func (r *roleRepository) AssignRole(ctx context.Context, userID uuid.UUID, role enum.UserRole) error {
	rec := UserRoleRecord{UserID: userID, Role: role}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&rec).Error
}

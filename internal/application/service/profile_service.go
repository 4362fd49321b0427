package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
)

// ProfileService handles customer contact profiles
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// UpsertProfileInput represents the input for saving a profile
type UpsertProfileInput struct {
	UserID   uuid.UUID
	FullName string
	Gender   string
	Address  string
	Avatar   string
}

// UpsertProfile creates or replaces the customer's profile
func (s *ProfileService) UpsertProfile(ctx context.Context, input *UpsertProfileInput) (*entity.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	profile := &entity.Profile{
		UserID:   input.UserID,
		FullName: input.FullName,
		Gender:   input.Gender,
		Address:  input.Address,
		Avatar:   input.Avatar,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, input.UserID)
}

// GetProfile retrieves a customer's contact profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	return profile, nil
}

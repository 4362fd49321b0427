package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/apperror"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/utils"
)

// UserService handles user account management
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUserInput represents the input for creating an account
type CreateUserInput struct {
	FullName  string
	Email     string
	Password  string
	CreatedBy uuid.UUID
}

// CreateCustomer creates a customer account on behalf of an admin.
// The creating admin is recorded on the account.
func (s *UserService) CreateCustomer(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	return s.createWithRole(ctx, input, "user")
}

// CreateAdmin creates an admin account. Only super admins reach this.
func (s *UserService) CreateAdmin(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	return s.createWithRole(ctx, input, "admin")
}

func (s *UserService) createWithRole(ctx context.Context, input *CreateUserInput, roleName string) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email is already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	createdBy := input.CreatedBy
	user := &entity.User{
		FullName:         input.FullName,
		Email:            input.Email,
		Password:         hashed,
		Provider:         "local",
		CreatedByAdminID: &createdBy,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role != nil {
		if err := s.userRepo.AssignRole(ctx, user.ID, role.ID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// GetCurrentUser retrieves the authenticated user with roles loaded
func (s *UserService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents the input for updating an account
type UpdateUserInput struct {
	UserID   uuid.UUID
	FullName string
	Photo    *string
}

// UpdateUser updates mutable account fields
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

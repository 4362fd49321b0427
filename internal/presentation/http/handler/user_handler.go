package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/application/service"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/request"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/response"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/middleware"
)

type createAccountFunc func(ctx context.Context, input *service.CreateUserInput) (*entity.User, error)

// UserHandler handles account HTTP requests
type UserHandler struct {
	userService    *service.UserService
	profileService *service.ProfileService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService, profileService *service.ProfileService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		profileService: profileService,
	}
}

// Me returns the authenticated user with roles and permissions
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.userService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", gin.H{
		"id":          user.ID,
		"full_name":   user.FullName,
		"email":       user.Email,
		"photo":       user.Photo,
		"roles":       user.Roles,
		"permissions": user.GetPermissions(),
	})
}

// UpdateMe updates the authenticated user's account fields
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), &service.UpdateUserInput{
		UserID:   userID,
		FullName: req.FullName,
		Photo:    req.Photo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User updated successfully", user)
}

// CreateCustomer creates a customer account on behalf of an admin
func (h *UserHandler) CreateCustomer(c *gin.Context) {
	h.create(c, h.userService.CreateCustomer, "Customer created successfully")
}

// CreateAdmin creates an admin account; restricted to super admins
func (h *UserHandler) CreateAdmin(c *gin.Context) {
	h.create(c, h.userService.CreateAdmin, "Admin created successfully")
}

func (h *UserHandler) create(c *gin.Context, fn createAccountFunc, message string) {
	actorID := middleware.GetUserID(c)
	if actorID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := fn(c.Request.Context(), &service.CreateUserInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		CreatedBy: actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, message, gin.H{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
		"roles":     user.Roles,
	})
}

// GetProfile returns the authenticated user's contact profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}

// UpsertProfile saves the authenticated user's profile
func (h *UserHandler) UpsertProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpsertProfile(c.Request.Context(), &service.UpsertProfileInput{
		UserID:   userID,
		FullName: req.FullName,
		Gender:   req.Gender,
		Address:  req.Address,
		Avatar:   req.Avatar,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile saved successfully", profile)
}

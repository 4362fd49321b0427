package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/application/service"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/request"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/response"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/middleware"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// AdminHandler handles privileged HTTP requests
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) actor(c *gin.Context) service.Actor {
	role := "admin"
	if middleware.IsSuperAdmin(c) {
		role = "super-admin"
	}
	return service.Actor{
		ID:   middleware.GetUserID(c),
		Role: role,
	}
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()
	return params
}

// ListUsers handles listing accounts with pagination and search
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, meta, err := h.adminService.ListUsers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Users retrieved successfully",
		pagination.NewPaginatedResult(users, meta))
}

// ListUsersWithItems lists customers holding at least one financed item
func (h *AdminHandler) ListUsersWithItems(c *gin.Context) {
	users, meta, err := h.adminService.ListUsersWithItems(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully",
		pagination.NewPaginatedResult(users, meta))
}

// DeleteUser removes an account and all of its records
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.ReasonRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.adminService.DeleteUser(c.Request.Context(), userID, h.actor(c), req.Reason); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}

// LoginStats returns active session counts per role
func (h *AdminHandler) LoginStats(c *gin.Context) {
	stats, err := h.adminService.LoginStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login stats retrieved successfully", stats)
}

// ListAuditLogs returns audit entries, optionally filtered by action
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	logs, meta, err := h.adminService.ListAuditLogs(c.Request.Context(), pageParams(c), c.Query("action"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Audit logs retrieved successfully",
		pagination.NewPaginatedResult(logs, meta))
}

// PreviewNextDueDate shows what a due date override would change
func (h *AdminHandler) PreviewNextDueDate(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.PreviewNextDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	proposed, err := time.Parse(time.RFC3339, req.NextDueDate)
	if err != nil {
		response.BadRequest(c, "next_due_date must be RFC 3339")
		return
	}

	preview, err := h.adminService.PreviewNextDueDate(c.Request.Context(), userID, proposed)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next due date preview", preview)
}

// UpdateNextDueDate shifts a customer's whole schedule to a new due date
func (h *AdminHandler) UpdateNextDueDate(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateNextDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	target, err := time.Parse(time.RFC3339, req.NextDueDate)
	if err != nil {
		response.BadRequest(c, "next_due_date must be RFC 3339")
		return
	}

	result, err := h.adminService.UpdateNextDueDate(c.Request.Context(), &service.UpdateNextDueDateInput{
		UserID:      userID,
		NextDueDate: target,
		Actor:       h.actor(c),
		Reason:      req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next due date updated successfully", result)
}

// OverrideItemCreatedAt rewrites when an item was financed
func (h *AdminHandler) OverrideItemCreatedAt(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.OverrideDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	createdAt, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		response.BadRequest(c, "date must be RFC 3339")
		return
	}

	item, err := h.adminService.OverrideItemCreatedAt(c.Request.Context(), &service.OverrideItemCreatedAtInput{
		ItemID:    itemID,
		CreatedAt: createdAt,
		Actor:     h.actor(c),
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item created date updated successfully", item)
}

// OverrideReceiptUploadedAt rewrites when a receipt was uploaded
func (h *AdminHandler) OverrideReceiptUploadedAt(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.OverrideDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	uploadedAt, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		response.BadRequest(c, "date must be RFC 3339")
		return
	}

	receipt, err := h.adminService.OverrideReceiptUploadedAt(c.Request.Context(), &service.OverrideReceiptUploadedAtInput{
		ReceiptID:  receiptID,
		UploadedAt: uploadedAt,
		Actor:      h.actor(c),
		Reason:     req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt upload date updated successfully", receipt)
}

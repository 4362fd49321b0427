package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/application/service"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/response"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/middleware"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get returns the billing snapshot for the authenticated customer.
// Admins may pass ?user_id= to view a customer's dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if target := c.Query("user_id"); target != "" && middleware.IsAdmin(c) {
		parsed, err := uuid.Parse(target)
		if err != nil {
			response.BadRequest(c, "Invalid user_id")
			return
		}
		userID = parsed
	}

	snapshot, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", snapshot)
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/application/service"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/request"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/response"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/middleware"
)

// PlanHandler handles installment plan HTTP requests
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Create opens an installment plan for a customer
func (h *PlanHandler) Create(c *gin.Context) {
	var req request.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user_id")
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		startDate, err = time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			response.BadRequest(c, "start_date must be RFC 3339")
			return
		}
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), &service.CreatePlanInput{
		UserID:      targetID,
		TotalAmount: req.TotalAmount,
		StartDate:   startDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Plan created successfully", plan)
}

// GetActive returns the authenticated customer's open plan
func (h *PlanHandler) GetActive(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Plan retrieved successfully", plan)
}

// CreatePayment records a payment against the customer's open plan
func (h *PlanHandler) CreatePayment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var paidAt time.Time
	if req.PaidAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			response.BadRequest(c, "paid_at must be RFC 3339")
			return
		}
		paidAt = parsed
	}

	payment, err := h.planService.CreatePayment(c.Request.Context(), &service.CreatePaymentInput{
		UserID: userID,
		Amount: req.Amount,
		Method: req.Method,
		PaidAt: paidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListPayments returns the authenticated customer's payment records
func (h *PlanHandler) ListPayments(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	payments, err := h.planService.ListPayments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

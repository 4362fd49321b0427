package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/application/service"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/request"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/response"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/middleware"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// ReceiptHandler handles receipt HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Upload accepts a multipart proof-of-payment: an "amount" field and a
// "receipt" file (image or PDF).
func (h *ReceiptHandler) Upload(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	amountStr := c.PostForm("amount")
	if amountStr == "" {
		response.BadRequest(c, "amount is required")
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		response.BadRequest(c, "amount must be a number")
		return
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		response.BadRequest(c, "Receipt file is required")
		return
	}

	receipt, err := h.receiptService.UploadReceipt(c.Request.Context(), &service.UploadReceiptInput{
		UserID: userID,
		Amount: amount,
		File:   file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt uploaded successfully and awaiting approval", receipt)
}

// ListMine returns the authenticated customer's receipts
func (h *ReceiptHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var status *enum.ReceiptStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := enum.ParseReceiptStatus(raw)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status = &parsed
	}

	receipts, err := h.receiptService.ListUserReceipts(c.Request.Context(), userID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", receipts)
}

// ListPending pages through the review queue, oldest first
func (h *ReceiptHandler) ListPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &pagination.CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}
	params.Validate()

	receipts, meta, err := h.receiptService.ListPendingReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending receipts retrieved successfully",
		pagination.NewCursorPaginatedResult(receipts, meta))
}

// Approve marks a pending receipt approved
func (h *ReceiptHandler) Approve(c *gin.Context) {
	h.review(c, h.receiptService.ApproveReceipt, "Payment approved successfully")
}

// Reject marks a pending receipt rejected
func (h *ReceiptHandler) Reject(c *gin.Context) {
	h.review(c, h.receiptService.RejectReceipt, "Receipt rejected")
}

func (h *ReceiptHandler) review(
	c *gin.Context,
	fn func(ctx context.Context, input *service.ReviewReceiptInput) (*entity.Receipt, error),
	message string,
) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.ReviewReceiptRequest
	_ = c.ShouldBindJSON(&req)

	roles := middleware.GetUserRoles(c)
	role := "admin"
	if middleware.IsSuperAdmin(c) {
		role = "super-admin"
	} else if len(roles) > 0 {
		role = roles[0]
	}

	receipt, err := fn(c.Request.Context(), &service.ReviewReceiptInput{
		ReceiptID: receiptID,
		ActorID:   middleware.GetUserID(c),
		ActorRole: role,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, gin.H{
		"receipt_id":     receipt.ID,
		"receipt_status": receipt.Status,
	})
}

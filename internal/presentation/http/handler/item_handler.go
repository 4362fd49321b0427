package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/application/service"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/request"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/dto/response"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/presentation/http/middleware"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// ItemHandler handles financed item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create finances a phone for a customer
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user_id")
		return
	}

	output, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		UserID:        targetID,
		PhoneModel:    req.PhoneModel,
		Plan:          req.Plan,
		WeeklyCycles:  req.WeeklyCycles,
		MonthlyCycles: req.MonthlyCycles,
		PhonePrice:    req.PhonePrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item financed successfully", gin.H{
		"item":          output.Item,
		"down_payment":  output.DownPayment,
		"loaned_amount": output.LoanedAmount,
	})
}

// List handles listing financed items with pagination and search
func (h *ItemHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()

	items, meta, err := h.itemService.ListItems(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Items retrieved successfully",
		pagination.NewPaginatedResult(items, meta))
}

// ListMine returns the authenticated customer's financed items
func (h *ItemHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	items, err := h.itemService.ListUserItems(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved successfully", items)
}

// Get retrieves one financed item
func (h *ItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Customers can only read their own items.
	if !middleware.IsAdmin(c) && item.UserID != middleware.GetUserID(c) {
		response.Forbidden(c, "Access denied")
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Delete removes a financed item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}

// Catalog returns the supported phone models and their financing rules
func (h *ItemHandler) Catalog(c *gin.Context) {
	response.OK(c, "Catalog retrieved successfully", h.itemService.Catalog())
}

package request

// CreatePlanRequest represents a request to open an installment plan
type CreatePlanRequest struct {
	UserID      string  `json:"user_id" binding:"required,uuid"`
	TotalAmount float64 `json:"total_amount" binding:"required"`
	StartDate   string  `json:"start_date"`
}

// CreatePaymentRequest represents a request to record a plan payment
type CreatePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"payment_method" binding:"required"`
	PaidAt string  `json:"paid_at"`
}

package request

// CreateItemRequest represents a request to finance a phone for a customer
type CreateItemRequest struct {
	UserID        string  `json:"user_id" binding:"required,uuid"`
	PhoneModel    string  `json:"phone_model" binding:"required"`
	Plan          string  `json:"plan" binding:"required"`
	WeeklyCycles  int     `json:"weekly_plan"`
	MonthlyCycles int     `json:"monthly_plan"`
	PhonePrice    float64 `json:"phone_price" binding:"required"`
}

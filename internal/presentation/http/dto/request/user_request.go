package request

// CreateUserRequest represents a request to create an account on behalf of a customer
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest represents a request to update the current account
type UpdateUserRequest struct {
	FullName string  `json:"full_name"`
	Photo    *string `json:"photo"`
}

// UpsertProfileRequest represents a request to save profile details
type UpsertProfileRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=255"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
}

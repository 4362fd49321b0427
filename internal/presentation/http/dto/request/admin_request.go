package request

// PreviewNextDueDateRequest represents a request to preview a due date change
type PreviewNextDueDateRequest struct {
	NextDueDate string `json:"next_due_date" binding:"required"`
}

// UpdateNextDueDateRequest represents a request to shift a customer's schedule
type UpdateNextDueDateRequest struct {
	NextDueDate string `json:"next_due_date" binding:"required"`
	Reason      string `json:"reason"`
}

// OverrideDateRequest represents a request to rewrite a record's timestamp
type OverrideDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// ReviewReceiptRequest represents a request to approve or reject a receipt
type ReviewReceiptRequest struct {
	Reason string `json:"reason"`
}

// ReasonRequest carries an optional justification for a destructive action
type ReasonRequest struct {
	Reason string `json:"reason"`
}

package models

// CreateUnitRequest represents the request body for proposing a unit
type CreateUnitRequest struct {
	UCUMCode string `json:"ucumCode" binding:"required,max=64"`
	Title    string `json:"title" binding:"required,max=255"`
}

// ApprovalRequest toggles the approval flag of a unit
type ApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

package models

import "unitly-be/internal/schema"

// ValidationErrorResponse is returned with 422 when a payload fails its schema
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Entity string              `json:"entity"`
	Index  *int                `json:"index,omitempty"` // Position of the failing record in a batch
	Fields []schema.FieldError `json:"fields"`
}

// NewValidationErrorResponse converts a schema error into a response body
func NewValidationErrorResponse(err *schema.ValidationError) ValidationErrorResponse {
	return ValidationErrorResponse{
		Error:  err.Error(),
		Entity: err.Entity,
		Fields: err.Fields,
	}
}

package entities

import "time"

// Unit represents a unit of measure identified by its UCUM code
type Unit struct {
	UCUMCode  string    `json:"ucumCode" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package entities

import "time"

// BaseEntity carries the fields shared by every record a user owns
type BaseEntity struct {
	ID        string    `json:"id" validate:"uuid_canonical"`     // UUID
	UserID    string    `json:"userId" validate:"uuid_canonical"` // UUID of the owning user
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

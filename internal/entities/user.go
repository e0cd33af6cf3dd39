package entities

import "time"

// User represents a user record as exchanged with clients
type User struct {
	ID        string    `json:"id" validate:"uuid_canonical"` // UUID
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty" validate:"omitnil,email"`
}

package models

import "unitly-be/internal/entities"

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  *entities.User `json:"user"`
	Token string         `json:"token"` // JWT token
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string       `json:"message"`
	Auth    AuthResponse `json:"auth"`
}

package models

// RegisterRequest is the body of POST /api/v1/auth/register. Passwords are
// capped at 72 bytes, the most bcrypt will hash.
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Name     *string `json:"name,omitempty" binding:"omitnil,max=120"`
}

// LoginRequest is the body of POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

package api

import "github.com/kalendo/kalendo/internal/domain"

// Request DTOs

type RegisterRequest struct {
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword         string `json:"current_password" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required"`
}

// Response DTOs

// AuthResponse is returned by register and login. Token is the plaintext
// bearer credential; it is not recoverable afterwards.
type AuthResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

package dto

import (
	"time"

	"github.com/livara/chat-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	TeamID   *int64 `json:"team_id"`
}

// ProfileUpdateRequest carries the self-service editable fields.
type ProfileUpdateRequest struct {
	Name         *string `json:"name"`
	ProfileColor *string `json:"profile_color"`
}

// PasswordResetRequest payload for initiating reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for confirming reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	TeamID       *int64     `json:"team_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	ProfileColor *string    `json:"profile_color,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// NewUserResponse maps a user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		TeamID:       user.TeamID,
		IsActive:     user.IsActive,
		ProfileColor: user.ProfileColor,
		CreatedAt:    user.CreatedAt,
		LastLogin:    user.LastLogin,
	}
}

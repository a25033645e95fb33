package dto

import "time"

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminUserCreateRequest payload for admin account creation.
type AdminUserCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	TeamID   *int64 `json:"team_id"`
	IsActive *bool  `json:"is_active"`
}

// AdminUserUpdateRequest payload for admin account changes. ClearTeam
// detaches the user from their team.
type AdminUserUpdateRequest struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	TeamID    *int64  `json:"team_id"`
	ClearTeam bool    `json:"clear_team"`
	IsActive  *bool   `json:"is_active"`
}

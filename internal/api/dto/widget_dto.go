package dto

import (
	"time"

	"github.com/livara/chat-service/internal/domain"
)

// WidgetKeyCreateRequest payload.
type WidgetKeyCreateRequest struct {
	TeamID *int64 `json:"team_id"`
	Name   string `json:"name"`
}

// WidgetKeyUpdateRequest payload.
type WidgetKeyUpdateRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// WidgetKeyResponse exposes a key with its masked form for listings.
type WidgetKeyResponse struct {
	ID         int64      `json:"id"`
	TeamID     int64      `json:"team_id"`
	APIKey     string     `json:"api_key"`
	FullKey    string     `json:"full_key"`
	Name       string     `json:"name"`
	IsActive   bool       `json:"is_active"`
	UsageCount int64      `json:"usage_count"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewWidgetKeyResponse maps a key, masking all but the edges of the secret.
func NewWidgetKeyResponse(key *domain.WidgetKey) WidgetKeyResponse {
	masked := key.APIKey
	if len(masked) > 12 {
		masked = masked[:8] + "..." + masked[len(masked)-4:]
	}
	return WidgetKeyResponse{
		ID:         key.ID,
		TeamID:     key.TeamID,
		APIKey:     masked,
		FullKey:    key.APIKey,
		Name:       key.KeyName,
		IsActive:   key.IsActive,
		UsageCount: key.UsageCount,
		LastUsed:   key.LastUsed,
		CreatedAt:  key.CreatedAt,
	}
}

// WidgetConfigRequest payload for saving widget configuration.
type WidgetConfigRequest struct {
	TeamID           *int64 `json:"team_id"`
	WidgetTitle      string `json:"widget_title"`
	WidgetSubtitle   string `json:"widget_subtitle"`
	PrimaryColor     string `json:"primary_color"`
	SecondaryColor   string `json:"secondary_color"`
	WelcomeMessage   string `json:"welcome_message"`
	InputPlaceholder string `json:"input_placeholder"`
	WidgetPosition   string `json:"widget_position"`
	ShowAvatar       *bool  `json:"show_avatar"`
	ShowPoweredBy    *bool  `json:"show_powered_by"`
}

// WidgetConfigResponse is the public view of widget configuration.
type WidgetConfigResponse struct {
	TeamID           int64  `json:"team_id"`
	WidgetTitle      string `json:"widget_title"`
	WidgetSubtitle   string `json:"widget_subtitle,omitempty"`
	PrimaryColor     string `json:"primary_color"`
	SecondaryColor   string `json:"secondary_color"`
	WelcomeMessage   string `json:"welcome_message"`
	InputPlaceholder string `json:"input_placeholder"`
	WidgetPosition   string `json:"widget_position"`
	ShowAvatar       bool   `json:"show_avatar"`
	ShowPoweredBy    bool   `json:"show_powered_by"`
}

// NewWidgetConfigResponse maps a config to its public view.
func NewWidgetConfigResponse(cfg *domain.WidgetConfig) WidgetConfigResponse {
	return WidgetConfigResponse{
		TeamID:           cfg.TeamID,
		WidgetTitle:      cfg.WidgetTitle,
		WidgetSubtitle:   cfg.WidgetSubtitle,
		PrimaryColor:     cfg.PrimaryColor,
		SecondaryColor:   cfg.SecondaryColor,
		WelcomeMessage:   cfg.WelcomeMessage,
		InputPlaceholder: cfg.InputPlaceholder,
		WidgetPosition:   cfg.WidgetPosition,
		ShowAvatar:       cfg.ShowAvatar,
		ShowPoweredBy:    cfg.ShowPoweredBy,
	}
}

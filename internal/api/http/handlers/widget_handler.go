package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/livara/chat-service/internal/api/dto"
	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/service"
	apperrors "github.com/livara/chat-service/pkg/util"
)

const widgetKeyHeader = "X-Widget-Api-Key"

// WidgetHandler exposes dashboard widget management plus the public,
// key-authenticated widget surface (config, chat, contact capture).
type WidgetHandler struct {
	widgets  *service.WidgetService
	chat     *service.ChatService
	contacts *service.ContactService
}

// NewWidgetHandler constructs handler.
func NewWidgetHandler(widgetService *service.WidgetService, chatService *service.ChatService, contactService *service.ContactService) *WidgetHandler {
	return &WidgetHandler{widgets: widgetService, chat: chatService, contacts: contactService}
}

// ListKeys handles GET /api/widget/keys.
func (h *WidgetHandler) ListKeys(c *fiber.Ctx) error {
	teamID, err := h.teamFromRequest(c, c.QueryInt("team_id"))
	if err != nil {
		return err
	}
	keys, err := h.widgets.ListKeys(c.Context(), teamID)
	if err != nil {
		return err
	}
	resp := make([]dto.WidgetKeyResponse, 0, len(keys))
	for i := range keys {
		resp = append(resp, dto.NewWidgetKeyResponse(&keys[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"keys": resp}})
}

// CreateKey handles POST /api/widget/keys. The full key is only returned
// here; listings mask it.
func (h *WidgetHandler) CreateKey(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var req dto.WidgetKeyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	teamID, err := service.ResolveTeamID(claims, req.TeamID)
	if err != nil {
		return err
	}

	key, err := h.widgets.CreateKey(c.Context(), teamID, req.Name, claims.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewWidgetKeyResponse(key)})
}

// UpdateKey handles PUT /api/widget/keys/:id.
func (h *WidgetHandler) UpdateKey(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req dto.WidgetKeyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	key, err := h.widgets.UpdateKey(c.Context(), claims, id, req.Name, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewWidgetKeyResponse(key)})
}

// DeleteKey handles DELETE /api/widget/keys/:id.
func (h *WidgetHandler) DeleteKey(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.widgets.DeleteKey(c.Context(), claims, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "widget key revoked"})
}

// GetConfig handles GET /api/widget/config for the dashboard.
func (h *WidgetHandler) GetConfig(c *fiber.Ctx) error {
	teamID, err := h.teamFromRequest(c, c.QueryInt("team_id"))
	if err != nil {
		return err
	}
	cfg, err := h.widgets.GetConfig(c.Context(), teamID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewWidgetConfigResponse(cfg)})
}

// SaveConfig handles PUT /api/widget/config.
func (h *WidgetHandler) SaveConfig(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var req dto.WidgetConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	teamID, err := service.ResolveTeamID(claims, req.TeamID)
	if err != nil {
		return err
	}

	cfg := &domain.WidgetConfig{
		TeamID:           teamID,
		WidgetTitle:      req.WidgetTitle,
		WidgetSubtitle:   req.WidgetSubtitle,
		PrimaryColor:     req.PrimaryColor,
		SecondaryColor:   req.SecondaryColor,
		WelcomeMessage:   req.WelcomeMessage,
		InputPlaceholder: req.InputPlaceholder,
		WidgetPosition:   req.WidgetPosition,
	}
	if req.ShowAvatar != nil {
		cfg.ShowAvatar = *req.ShowAvatar
	}
	if req.ShowPoweredBy != nil {
		cfg.ShowPoweredBy = *req.ShowPoweredBy
	}

	if err := h.widgets.SaveConfig(c.Context(), cfg); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewWidgetConfigResponse(cfg)})
}

// PublicConfig handles GET /api/public/widget/config?key=... for the
// embedded widget. No session auth; the key alone gates access.
func (h *WidgetHandler) PublicConfig(c *fiber.Ctx) error {
	apiKey := c.Query("key")
	if apiKey == "" {
		return apperrors.NewUnauthorized("widget api key required")
	}
	cfg, err := h.widgets.GetConfigByKey(c.Context(), apiKey)
	if err != nil {
		if errors.Is(err, service.ErrWidgetKeyInvalid) {
			return apperrors.NewForbidden("invalid widget api key")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewWidgetConfigResponse(cfg)})
}

// PublicChat handles POST /api/public/widget/chat: one visitor message in,
// one generated reply out.
func (h *WidgetHandler) PublicChat(c *fiber.Ctx) error {
	apiKey := c.Get(widgetKeyHeader)
	if apiKey == "" {
		return apperrors.NewUnauthorized("widget api key required")
	}
	var req dto.WidgetChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Message == "" || req.SessionID == "" {
		return fiber.NewError(http.StatusBadRequest, "message and session_id required")
	}

	conv, err := h.chat.HandleWidgetMessage(c.Context(), apiKey, req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrWidgetKeyInvalid) {
			return apperrors.NewForbidden("invalid widget api key")
		}
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"response":   conv.AIResponse,
			"session_id": conv.SessionID,
		},
	})
}

// PublicContact handles POST /api/public/widget/contact.
func (h *WidgetHandler) PublicContact(c *fiber.Ctx) error {
	apiKey := c.Get(widgetKeyHeader)
	if apiKey == "" {
		return apperrors.NewUnauthorized("widget api key required")
	}
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	contact := &domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.contacts.CreateFromWidget(c.Context(), apiKey, contact); err != nil {
		if errors.Is(err, service.ErrWidgetKeyInvalid) {
			return apperrors.NewForbidden("invalid widget api key")
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "message": "contact saved"})
}

// teamFromRequest resolves the target team from claims and an optional
// query parameter.
func (h *WidgetHandler) teamFromRequest(c *fiber.Ctx, queried int) (int64, error) {
	claims, _ := auth.ClaimsFromContext(c)
	var requested *int64
	if queried > 0 {
		id := int64(queried)
		requested = &id
	}
	return service.ResolveTeamID(claims, requested)
}

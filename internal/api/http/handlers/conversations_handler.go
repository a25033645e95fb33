package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/livara/chat-service/internal/api/dto"
	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/service"
)

// ConversationsHandler exposes transcript and lead browsing for the
// dashboard.
type ConversationsHandler struct {
	chat     *service.ChatService
	contacts *service.ContactService
}

// NewConversationsHandler constructs handler.
func NewConversationsHandler(chatService *service.ChatService, contactService *service.ContactService) *ConversationsHandler {
	return &ConversationsHandler{chat: chatService, contacts: contactService}
}

// Chat handles POST /api/chat: the dashboard-side relay. The exchange is
// saved under the caller's team and user id.
func (h *ConversationsHandler) Chat(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "message required")
	}

	conv, err := h.chat.HandleDashboardMessage(c.Context(), claims.TeamID, claims.UserID, req.SessionID, req.Message)
	if err != nil {
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

// List handles GET /api/conversations. Session lookups are pinned to the
// caller's team unless the caller is admin-tier.
func (h *ConversationsHandler) List(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	if sessionID := c.Query("session_id"); sessionID != "" {
		var teamFilter *int64
		if !claims.Role.AdminTier() {
			teamFilter = claims.TeamID
		}
		convs, err := h.chat.ListBySession(c.Context(), sessionID, teamFilter)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"conversations": conversationResponses(convs)}})
	}

	teamID, err := resolveTeamQuery(c)
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit", 100)
	convs, err := h.chat.ListByTeam(c.Context(), teamID, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"conversations": conversationResponses(convs)}})
}

// Stats handles GET /api/conversations/stats.
func (h *ConversationsHandler) Stats(c *fiber.Ctx) error {
	teamID, err := resolveTeamQuery(c)
	if err != nil {
		return err
	}
	stats, err := h.chat.Stats(c.Context(), teamID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"team_id":         stats.TeamID,
			"session_count":   stats.SessionCount,
			"message_count":   stats.MessageCount,
			"last_message_at": stats.LastMessageAt,
		},
	})
}

// Contacts handles GET /api/contacts. Admins see every team's leads when no
// team is given.
func (h *ConversationsHandler) Contacts(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var teamID *int64
	if queried := c.QueryInt("team_id"); queried > 0 {
		id := int64(queried)
		teamID = &id
	}
	if !claims.Role.AdminTier() {
		teamID = claims.TeamID
	}

	contacts, err := h.contacts.List(c.Context(), teamID)
	if err != nil {
		return err
	}
	resp := make([]fiber.Map, 0, len(contacts))
	for i := range contacts {
		ct := &contacts[i]
		resp = append(resp, fiber.Map{
			"id":         ct.ID,
			"name":       ct.Name,
			"email":      ct.Email,
			"phone":      ct.Phone,
			"message":    ct.Message,
			"team_id":    ct.TeamID,
			"created_at": ct.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"contacts": resp}})
}

func conversationResponses(convs []domain.Conversation) []dto.ConversationResponse {
	resp := make([]dto.ConversationResponse, 0, len(convs))
	for i := range convs {
		resp = append(resp, dto.NewConversationResponse(&convs[i]))
	}
	return resp
}

func resolveTeamQuery(c *fiber.Ctx) (int64, error) {
	claims, _ := auth.ClaimsFromContext(c)
	var requested *int64
	if queried := c.QueryInt("team_id"); queried > 0 {
		id := int64(queried)
		requested = &id
	}
	return service.ResolveTeamID(claims, requested)
}

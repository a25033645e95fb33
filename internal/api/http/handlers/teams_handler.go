package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/livara/chat-service/internal/api/dto"
	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/service"
)

// TeamsHandler exposes admin team management endpoints.
type TeamsHandler struct {
	teams *service.TeamService
}

// NewTeamsHandler constructs handler.
func NewTeamsHandler(teamService *service.TeamService) *TeamsHandler {
	return &TeamsHandler{teams: teamService}
}

// List handles GET /api/admin/teams.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	teams, err := h.teams.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		resp = append(resp, dto.NewTeamResponse(&teams[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"teams": resp}})
}

// Create handles POST /api/admin/teams.
func (h *TeamsHandler) Create(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == nil || *req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "team name required")
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	team, err := h.teams.Create(c.Context(), *req.Name, description, claims.UserID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewTeamResponse(team)})
}

// Get handles GET /api/admin/teams/:id.
func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	team, err := h.teams.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewTeamResponse(team)})
}

// Update handles PUT /api/admin/teams/:id.
func (h *TeamsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	team, err := h.teams.Update(c.Context(), id, req.Name, req.Description, req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewTeamResponse(team)})
}

// Delete handles DELETE /api/admin/teams/:id.
func (h *TeamsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	if err := h.teams.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "team deleted"})
}

package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/livara/chat-service/pkg/util"
)

// RequireAuthenticated passes any request carrying valid claims. It is the
// no-op tier kept for explicit route wiring alongside the admin and
// team-scoped gates.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ClaimsFromContext(c); !ok {
			return apperrors.NewUnauthorized(MsgInvalidToken)
		}
		return c.Next()
	}
}

// RequireAdmin passes only admin-tier roles (admin or super_admin).
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgInvalidToken)
		}
		if !claims.Role.AdminTier() {
			return apperrors.NewForbidden(MsgForbidden)
		}
		return c.Next()
	}
}

// RequireTeamScoped passes admin-tier roles regardless of team, and any
// other role only when a team assignment is present.
func RequireTeamScoped() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgInvalidToken)
		}
		if !claims.Role.AdminTier() && claims.TeamID == nil {
			return apperrors.NewForbidden(MsgForbidden)
		}
		return c.Next()
	}
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/livara/chat-service/pkg/util"
)

const claimsKey = "auth_claims"

// Client-facing messages. Exactly two exist: every authentication failure
// maps to the first, every authorization failure to the second.
const (
	MsgInvalidToken = "invalid or expired token"
	MsgForbidden    = "insufficient permissions"
)

// Middleware authenticates requests by validating bearer tokens. It performs
// no database I/O: the decoded claims are the full session state.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate extracts the bearer token, verifies it, and stores the claims
// in the request context. A missing or malformed Authorization header is
// rejected before the verifier runs.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized(MsgInvalidToken)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized(MsgInvalidToken)
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized(MsgInvalidToken)
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/observability"
)

type errBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func newGatedApp(t *testing.T, tokens *auth.TokenManager) *fiber.App {
	t.Helper()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second)

	mw := auth.NewMiddleware(tokens)
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	}
	app.Get("/authenticated", mw.Authenticate, auth.RequireAuthenticated(), ok)
	app.Get("/admin", mw.Authenticate, auth.RequireAdmin(), ok)
	app.Get("/scoped", mw.Authenticate, auth.RequireTeamScoped(), ok)
	return app
}

func issueFor(t *testing.T, tokens *auth.TokenManager, role domain.Role, teamID *int64) string {
	t.Helper()
	tokenStr, _, err := tokens.Issue(auth.NewClaims(&domain.User{
		ID:     1,
		Email:  "agent@example.com",
		Name:   "Agent",
		Role:   role,
		TeamID: teamID,
	}))
	require.NoError(t, err)
	return tokenStr
}

func doGet(t *testing.T, app *fiber.App, path, token string) (int, errBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body errBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorMiddlewareShapesFiberErrors(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second)
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	})

	status, body := doGet(t, app, "/bad", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	assert.Equal(t, "invalid payload", body.Error)
}

func TestGatesRejectMissingToken(t *testing.T) {
	tokens := auth.NewTokenManager("gate-secret", time.Hour)
	app := newGatedApp(t, tokens)

	for _, path := range []string{"/authenticated", "/admin", "/scoped"} {
		status, body := doGet(t, app, path, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.False(t, body.Success)
		assert.Equal(t, auth.MsgInvalidToken, body.Error)
	}
}

func TestGatesRejectGarbageToken(t *testing.T) {
	tokens := auth.NewTokenManager("gate-secret", time.Hour)
	app := newGatedApp(t, tokens)

	status, body := doGet(t, app, "/authenticated", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgInvalidToken, body.Error)
}

func TestGatesRejectMalformedHeader(t *testing.T) {
	tokens := auth.NewTokenManager("gate-secret", time.Hour)
	app := newGatedApp(t, tokens)
	token := issueFor(t, tokens, domain.RoleAdmin, nil)

	req := httptest.NewRequest(http.MethodGet, "/authenticated", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateTiers(t *testing.T) {
	tokens := auth.NewTokenManager("gate-secret", time.Hour)
	app := newGatedApp(t, tokens)
	teamID := int64(7)

	cases := []struct {
		name          string
		role          domain.Role
		teamID        *int64
		authenticated int
		admin         int
		scoped        int
	}{
		{
			name:          "user without team",
			role:          domain.RoleUser,
			authenticated: http.StatusOK,
			admin:         http.StatusForbidden,
			scoped:        http.StatusForbidden,
		},
		{
			name:          "user with team",
			role:          domain.RoleUser,
			teamID:        &teamID,
			authenticated: http.StatusOK,
			admin:         http.StatusForbidden,
			scoped:        http.StatusOK,
		},
		{
			name:          "admin without team",
			role:          domain.RoleAdmin,
			authenticated: http.StatusOK,
			admin:         http.StatusOK,
			scoped:        http.StatusOK,
		},
		{
			name:          "super admin without team",
			role:          domain.RoleSuperAdmin,
			authenticated: http.StatusOK,
			admin:         http.StatusOK,
			scoped:        http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := issueFor(t, tokens, tc.role, tc.teamID)

			status, _ := doGet(t, app, "/authenticated", token)
			assert.Equal(t, tc.authenticated, status)

			status, body := doGet(t, app, "/admin", token)
			assert.Equal(t, tc.admin, status)
			if tc.admin == http.StatusForbidden {
				assert.Equal(t, auth.MsgForbidden, body.Error)
			}

			status, body = doGet(t, app, "/scoped", token)
			assert.Equal(t, tc.scoped, status)
			if tc.scoped == http.StatusForbidden {
				assert.Equal(t, auth.MsgForbidden, body.Error)
			}
		})
	}
}

func TestGateRejectsTokenFromOtherSecret(t *testing.T) {
	tokens := auth.NewTokenManager("gate-secret", time.Hour)
	foreign := auth.NewTokenManager("other-secret", time.Hour)
	app := newGatedApp(t, tokens)

	token := issueFor(t, foreign, domain.RoleSuperAdmin, nil)
	status, body := doGet(t, app, "/admin", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgInvalidToken, body.Error)
}

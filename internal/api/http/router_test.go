package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/api/http/handlers"
	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/observability"
	"github.com/livara/chat-service/internal/service"
)

type stubKeyRepo struct {
	byID    map[int64]*domain.WidgetKey
	updated []int64
	deleted []int64
}

func (r *stubKeyRepo) Create(ctx context.Context, key *domain.WidgetKey) error { return nil }

func (r *stubKeyRepo) Update(ctx context.Context, key *domain.WidgetKey) error {
	r.updated = append(r.updated, key.ID)
	return nil
}

func (r *stubKeyRepo) Delete(ctx context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	delete(r.byID, id)
	return nil
}

func (r *stubKeyRepo) GetByID(ctx context.Context, id int64) (*domain.WidgetKey, error) {
	if key, ok := r.byID[id]; ok {
		copied := *key
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubKeyRepo) GetActiveByAPIKey(ctx context.Context, apiKey string) (*domain.WidgetKey, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubKeyRepo) ListByTeam(ctx context.Context, teamID int64) ([]domain.WidgetKey, error) {
	return nil, nil
}

func (r *stubKeyRepo) IncrementUsage(ctx context.Context, apiKey string) error { return nil }

type stubConversationRepo struct {
	teamFilters []*int64
}

func (r *stubConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	return nil
}

func (r *stubConversationRepo) ListByTeam(ctx context.Context, teamID int64, limit int) ([]domain.Conversation, error) {
	return nil, nil
}

func (r *stubConversationRepo) ListBySession(ctx context.Context, sessionID string, teamID *int64) ([]domain.Conversation, error) {
	r.teamFilters = append(r.teamFilters, teamID)
	return nil, nil
}

func (r *stubConversationRepo) StatsByTeam(ctx context.Context, teamID int64) (*domain.SessionStats, error) {
	return &domain.SessionStats{TeamID: teamID}, nil
}

func newScopedApp(t *testing.T, tokens *auth.TokenManager, keys *stubKeyRepo, convs *stubConversationRepo) *fiber.App {
	t.Helper()

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second)

	widgetSvc := service.NewWidgetService(keys, nil, nil, events.NewInMemoryDispatcher(), zap.NewNop())
	chatSvc := service.NewChatService(widgetSvc, nil, convs, events.NewInMemoryDispatcher(), zap.NewNop())
	widgetHandler := handlers.NewWidgetHandler(widgetSvc, chatSvc, nil)
	convHandler := handlers.NewConversationsHandler(chatSvc, nil)

	mw := auth.NewMiddleware(tokens)
	scoped := app.Group("/api", mw.Authenticate, auth.RequireTeamScoped())
	scoped.Put("/widget/keys/:id", widgetHandler.UpdateKey)
	scoped.Delete("/widget/keys/:id", widgetHandler.DeleteKey)
	scoped.Get("/conversations", convHandler.List)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWidgetKeyRoutesRejectForeignTeam(t *testing.T) {
	tokens := auth.NewTokenManager("route-secret", time.Hour)
	keys := &stubKeyRepo{byID: map[int64]*domain.WidgetKey{
		1: {ID: 1, TeamID: 9, KeyName: "prod", APIKey: "lw_abc"},
	}}
	app := newScopedApp(t, tokens, keys, &stubConversationRepo{})
	ownTeam := int64(5)
	token := issueFor(t, tokens, domain.RoleUser, &ownTeam)

	resp := do(t, app, http.MethodPut, "/api/widget/keys/1", token, `{"name":"hijacked"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, keys.updated)
	assert.Equal(t, "prod", keys.byID[1].KeyName)

	resp = do(t, app, http.MethodDelete, "/api/widget/keys/1", token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, keys.deleted)
	assert.Contains(t, keys.byID, int64(1))
}

func TestWidgetKeyRoutesAllowAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("route-secret", time.Hour)
	keys := &stubKeyRepo{byID: map[int64]*domain.WidgetKey{
		1: {ID: 1, TeamID: 9, KeyName: "prod", APIKey: "lw_abc"},
	}}
	app := newScopedApp(t, tokens, keys, &stubConversationRepo{})
	token := issueFor(t, tokens, domain.RoleAdmin, nil)

	resp := do(t, app, http.MethodPut, "/api/widget/keys/1", token, `{"name":"renamed"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Equal(t, []int64{1}, keys.updated)
}

func TestSessionLookupPinnedToCallerTeam(t *testing.T) {
	tokens := auth.NewTokenManager("route-secret", time.Hour)
	convs := &stubConversationRepo{}
	app := newScopedApp(t, tokens, &stubKeyRepo{byID: map[int64]*domain.WidgetKey{}}, convs)
	ownTeam := int64(5)

	memberToken := issueFor(t, tokens, domain.RoleUser, &ownTeam)
	resp := do(t, app, http.MethodGet, "/api/conversations?session_id=sess-1", memberToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	adminToken := issueFor(t, tokens, domain.RoleAdmin, nil)
	resp = do(t, app, http.MethodGet, "/api/conversations?session_id=sess-1", adminToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, convs.teamFilters, 2)
	require.NotNil(t, convs.teamFilters[0])
	assert.Equal(t, ownTeam, *convs.teamFilters[0])
	assert.Nil(t, convs.teamFilters[1])
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/config"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
)

type fakeConversationRepo struct {
	created       []*domain.Conversation
	sessionCalls  []string
	teamFilters   []*int64
	byTeamResults []domain.Conversation
}

func (r *fakeConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	conv.ID = int64(len(r.created) + 1)
	r.created = append(r.created, conv)
	return nil
}

func (r *fakeConversationRepo) ListByTeam(ctx context.Context, teamID int64, limit int) ([]domain.Conversation, error) {
	return r.byTeamResults, nil
}

func (r *fakeConversationRepo) ListBySession(ctx context.Context, sessionID string, teamID *int64) ([]domain.Conversation, error) {
	r.sessionCalls = append(r.sessionCalls, sessionID)
	r.teamFilters = append(r.teamFilters, teamID)
	return nil, nil
}

func (r *fakeConversationRepo) StatsByTeam(ctx context.Context, teamID int64) (*domain.SessionStats, error) {
	return &domain.SessionStats{TeamID: teamID}, nil
}

type fakeLLMSettingsRepo struct {
	settings *domain.LLMSettings
}

func (r *fakeLLMSettingsRepo) Get(ctx context.Context) (*domain.LLMSettings, error) {
	return r.settings, nil
}

func (r *fakeLLMSettingsRepo) Save(ctx context.Context, settings *domain.LLMSettings) error {
	r.settings = settings
	return nil
}

// newOllamaStub serves the /api/generate shape with a canned reply.
func newOllamaStub(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"response": reply})
	}))
}

func newTestChatService(t *testing.T, convs *fakeConversationRepo, llmURL string) *ChatService {
	t.Helper()
	llm := NewLLMService(config.LLMConfig{RequestTimeoutSeconds: 5}, &fakeLLMSettingsRepo{
		settings: &domain.LLMSettings{
			Provider:    domain.LLMProviderOllama,
			OllamaURL:   llmURL,
			OllamaModel: "test-model",
		},
	}, events.NewInMemoryDispatcher(), zap.NewNop())
	return NewChatService(nil, llm, convs, events.NewInMemoryDispatcher(), zap.NewNop())
}

func TestHandleDashboardMessage(t *testing.T) {
	server := newOllamaStub(t, "Sure, happy to help.")
	defer server.Close()

	convs := &fakeConversationRepo{}
	svc := newTestChatService(t, convs, server.URL)
	teamID := int64(5)

	conv, err := svc.HandleDashboardMessage(context.Background(), &teamID, 42, "sess-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Sure, happy to help.", conv.AIResponse)
	assert.Equal(t, "sess-1", conv.SessionID)

	require.Len(t, convs.created, 1)
	saved := convs.created[0]
	require.NotNil(t, saved.TeamID)
	assert.Equal(t, teamID, *saved.TeamID)
	require.NotNil(t, saved.UserID)
	assert.Equal(t, int64(42), *saved.UserID)
}

func TestHandleDashboardMessageMintsSessionID(t *testing.T) {
	server := newOllamaStub(t, "Hello there.")
	defer server.Close()

	svc := newTestChatService(t, &fakeConversationRepo{}, server.URL)

	conv, err := svc.HandleDashboardMessage(context.Background(), nil, 42, "", "hello")
	require.NoError(t, err)
	require.NotEmpty(t, conv.SessionID)
	_, parseErr := uuid.Parse(conv.SessionID)
	assert.NoError(t, parseErr)
}

func TestListBySessionAppliesTeamFilter(t *testing.T) {
	convs := &fakeConversationRepo{}
	svc := NewChatService(nil, nil, convs, events.NewInMemoryDispatcher(), zap.NewNop())
	teamID := int64(5)

	_, err := svc.ListBySession(context.Background(), "sess-1", &teamID)
	require.NoError(t, err)
	_, err = svc.ListBySession(context.Background(), "sess-1", nil)
	require.NoError(t, err)

	require.Len(t, convs.teamFilters, 2)
	require.NotNil(t, convs.teamFilters[0])
	assert.Equal(t, teamID, *convs.teamFilters[0])
	assert.Nil(t, convs.teamFilters[1])
}

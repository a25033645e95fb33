package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/repository"
)

// ChatService handles the public widget chat path: key validation, LLM relay,
// and conversation persistence.
type ChatService struct {
	widgets       *WidgetService
	llm           *LLMService
	conversations repository.ConversationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewChatService constructs the service.
func NewChatService(widgets *WidgetService, llm *LLMService, conversations repository.ConversationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ChatService {
	return &ChatService{
		widgets:       widgets,
		llm:           llm,
		conversations: conversations,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// HandleWidgetMessage validates the API key, relays the message, and records
// the exchange. Returns ErrWidgetKeyInvalid for unknown or disabled keys.
func (s *ChatService) HandleWidgetMessage(ctx context.Context, apiKey, sessionID, message string) (*domain.Conversation, error) {
	key, err := s.widgets.ValidateKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	s.widgets.RecordUsage(ctx, key)

	reply, err := s.llm.GenerateReply(ctx, message)
	if err != nil {
		return nil, err
	}

	conv := &domain.Conversation{
		SessionID:   sessionID,
		UserMessage: message,
		AIResponse:  reply,
		TeamID:      &key.TeamID,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		// The reply already happened; losing the transcript row is logged,
		// not surfaced to the widget.
		s.logger.Error("conversation save failed",
			zap.String("session_id", sessionID),
			zap.Int64("team_id", key.TeamID),
			zap.Error(err))
	} else if s.dispatcher != nil {
		payload := events.ConversationSavedPayload{SessionID: sessionID, TeamID: conv.TeamID}
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventConversationSaved, events.Actor{}, payload))
	}

	return conv, nil
}

// ListByTeam returns recent conversations for a team.
func (s *ChatService) ListByTeam(ctx context.Context, teamID int64, limit int) ([]domain.Conversation, error) {
	return s.conversations.ListByTeam(ctx, teamID, limit)
}

// HandleDashboardMessage relays a message for an authenticated dashboard
// user and records the exchange under the caller's team. A fresh session id
// is minted when the caller does not supply one.
func (s *ChatService) HandleDashboardMessage(ctx context.Context, teamID *int64, userID int64, sessionID, message string) (*domain.Conversation, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := s.llm.GenerateReply(ctx, message)
	if err != nil {
		return nil, err
	}

	conv := &domain.Conversation{
		SessionID:   sessionID,
		UserMessage: message,
		AIResponse:  reply,
		TeamID:      teamID,
		UserID:      &userID,
	}
	if err := s.conversations.Create(ctx, conv); err != nil {
		s.logger.Error("conversation save failed",
			zap.String("session_id", sessionID),
			zap.Int64("user_id", userID),
			zap.Error(err))
	} else if s.dispatcher != nil {
		payload := events.ConversationSavedPayload{SessionID: sessionID, TeamID: teamID}
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventConversationSaved, events.Actor{UserID: &userID}, payload))
	}

	return conv, nil
}

// ListBySession returns a session transcript in order, restricted to the
// given team when one is set.
func (s *ChatService) ListBySession(ctx context.Context, sessionID string, teamID *int64) ([]domain.Conversation, error) {
	return s.conversations.ListBySession(ctx, sessionID, teamID)
}

// Stats aggregates widget activity for a team.
func (s *ChatService) Stats(ctx context.Context, teamID int64) (*domain.SessionStats, error) {
	return s.conversations.StatsByTeam(ctx, teamID)
}

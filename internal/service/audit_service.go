package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/repository"
)

// AuditService consumes domain events and appends them to the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	audit      repository.AuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, audit repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		audit:      audit,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to the audited event types.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.record("login"))
	a.dispatcher.Subscribe(events.EventUserLoggedOut, a.record("logout"))
	a.dispatcher.Subscribe(events.EventUserRegistered, a.record("register"))
	a.dispatcher.Subscribe(events.EventWidgetKeyCreated, a.record("create_widget_key"))
	a.dispatcher.Subscribe(events.EventWidgetKeyUpdated, a.record("update_widget_key"))
	a.dispatcher.Subscribe(events.EventWidgetKeyRevoked, a.record("revoke_widget_key"))
	a.dispatcher.Subscribe(events.EventDocumentUploaded, a.record("upload_document"))
	a.dispatcher.Subscribe(events.EventDocumentReviewed, a.record("review_document"))
	a.dispatcher.Subscribe(events.EventLLMSettingsSaved, a.record("save_llm_settings"))
}

func (a *AuditService) record(action string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		entry := &domain.AuditEvent{
			UserID:    event.Actor.UserID,
			Action:    action,
			IPAddress: event.Actor.IPAddress,
			UserAgent: event.Actor.UserAgent,
		}
		switch payload := event.Payload.(type) {
		case events.WidgetKeyPayload:
			entry.EntityType = "widget_key"
			entry.EntityID = &payload.KeyID
			entry.Details = map[string]any{"team_id": payload.TeamID, "key_name": payload.KeyName}
		case events.DocumentReviewedPayload:
			entry.EntityType = "document"
			entry.EntityID = &payload.DocumentID
			entry.Details = map[string]any{"status": string(payload.Status)}
		}

		if err := a.audit.Create(ctx, entry); err != nil {
			a.logger.Error("audit write failed",
				zap.String("action", action),
				zap.String("event_id", event.ID),
				zap.Error(err))
			return err
		}
		return nil
	}
}

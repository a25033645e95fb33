package service

import (
	"context"

	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

// DocumentService manages knowledge-base document metadata and its approval
// workflow. Document content storage lives elsewhere; only metadata is
// tracked here.
type DocumentService struct {
	documents  repository.DocumentRepository
	dispatcher events.Dispatcher
}

// NewDocumentService constructs the service.
func NewDocumentService(documents repository.DocumentRepository, dispatcher events.Dispatcher) *DocumentService {
	return &DocumentService{documents: documents, dispatcher: dispatcher}
}

// Upload records a pending document.
func (s *DocumentService) Upload(ctx context.Context, teamID *int64, fileName, contentType string, sizeBytes int64, uploadedBy int64) (*domain.Document, error) {
	if fileName == "" {
		return nil, apperrors.NewValidationError("file name required", nil)
	}
	doc := &domain.Document{
		TeamID:      teamID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		Status:      domain.DocumentStatusPending,
		UploadedBy:  uploadedBy,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventDocumentUploaded, doc, uploadedBy)
	return doc, nil
}

// List returns documents, optionally scoped to a team.
func (s *DocumentService) List(ctx context.Context, teamID *int64) ([]domain.Document, error) {
	return s.documents.List(ctx, teamID)
}

// Review approves or rejects a pending document.
func (s *DocumentService) Review(ctx context.Context, id int64, status domain.DocumentStatus, reviewedBy int64) (*domain.Document, error) {
	if status != domain.DocumentStatusApproved && status != domain.DocumentStatusRejected {
		return nil, apperrors.NewValidationError("status must be approved or rejected", nil)
	}
	if err := s.documents.UpdateStatus(ctx, id, status, reviewedBy); err != nil {
		return nil, err
	}
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventDocumentReviewed, doc, reviewedBy)
	return doc, nil
}

func (s *DocumentService) publish(ctx context.Context, eventType events.EventType, doc *domain.Document, actorID int64) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{UserID: &actorID}
	payload := events.DocumentReviewedPayload{DocumentID: doc.ID, Status: doc.Status}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, actor, payload))
}

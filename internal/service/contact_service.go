package service

import (
	"context"

	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

// ContactService stores leads captured from the embedded widget.
type ContactService struct {
	contacts repository.ContactRepository
	widgets  *WidgetService
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository, widgets *WidgetService) *ContactService {
	return &ContactService{contacts: contacts, widgets: widgets}
}

// CreateFromWidget records a contact submitted through the widget; the API
// key ties it to the owning team.
func (s *ContactService) CreateFromWidget(ctx context.Context, apiKey string, contact *domain.Contact) error {
	key, err := s.widgets.ValidateKey(ctx, apiKey)
	if err != nil {
		return err
	}
	if contact.Email == "" && contact.Phone == "" {
		return apperrors.NewValidationError("email or phone required", nil)
	}
	contact.TeamID = &key.TeamID
	return s.contacts.Create(ctx, contact)
}

// List returns contacts for a team, or every contact when teamID is nil.
func (s *ContactService) List(ctx context.Context, teamID *int64) ([]domain.Contact, error) {
	if teamID != nil {
		return s.contacts.ListByTeam(ctx, *teamID)
	}
	return s.contacts.ListAll(ctx)
}

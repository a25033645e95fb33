package service

import (
	"context"

	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

// TeamService manages teams. Admin-tier access is enforced by the route
// gates; the service only records provenance.
type TeamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
}

// NewTeamService constructs the service.
func NewTeamService(teams repository.TeamRepository, users repository.UserRepository) *TeamService {
	return &TeamService{teams: teams, users: users}
}

// List returns all teams, newest first.
func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	return s.teams.List(ctx)
}

// Get returns a single team.
func (s *TeamService) Get(ctx context.Context, id int64) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

// Create adds a new team owned by the acting admin.
func (s *TeamService) Create(ctx context.Context, name, description string, createdBy int64) (*domain.Team, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("team name required", nil)
	}
	team := &domain.Team{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedBy:   createdBy,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Update applies name/description/active changes.
func (s *TeamService) Update(ctx context.Context, id int64, name, description *string, isActive *bool) (*domain.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil && *name != "" {
		team.Name = *name
	}
	if description != nil {
		team.Description = *description
	}
	if isActive != nil {
		team.IsActive = *isActive
	}
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// Delete removes a team. Members keep their accounts; their team assignment
// is cleared by the foreign key.
func (s *TeamService) Delete(ctx context.Context, id int64) error {
	return s.teams.Delete(ctx, id)
}

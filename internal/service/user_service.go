package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

// UserService manages dashboard accounts on behalf of admins.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// List returns accounts, optionally filtered by team.
func (s *UserService) List(ctx context.Context, teamID *int64) ([]domain.User, error) {
	return s.users.List(ctx, teamID)
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UserCreateInput carries admin-supplied account fields.
type UserCreateInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
	TeamID   *int64
	IsActive bool
}

// Create adds an account with a hashed password.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.Role == "" {
		input.Role = domain.RoleUser
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", nil)
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         input.Role,
		TeamID:       input.TeamID,
		IsActive:     input.IsActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserUpdateInput carries optional account changes.
type UserUpdateInput struct {
	Name      *string
	Role      *domain.Role
	TeamID    *int64
	ClearTeam bool
	IsActive  *bool
}

// Update applies admin changes to an account. Role or team changes do not
// touch live tokens; they take effect when the user next logs in.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", nil)
		}
		user.Role = *input.Role
	}
	if input.ClearTeam {
		user.TeamID = nil
	} else if input.TeamID != nil {
		user.TeamID = input.TeamID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate soft-deletes an account. The row stays; authentication stops.
func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	return s.users.Update(ctx, user)
}

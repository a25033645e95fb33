package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/config"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

// ClientMeta carries request metadata recorded in audit events.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// AuthService coordinates login, registration and account flows. It owns the
// side effects the credential verifier deliberately leaves out: last-login
// refresh and audit events.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	verifier   *auth.CredentialVerifier
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		verifier:   auth.NewCredentialVerifier(deps.UserRepo),
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Login authenticates a user and issues a session token. Every credential
// failure surfaces the same generic message; the internal reason is logged
// and goes no further.
func (s *AuthService) Login(ctx context.Context, email, password string, meta ClientMeta) (*domain.User, string, time.Time, error) {
	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		var credErr *auth.CredentialError
		if errors.As(err, &credErr) {
			s.logger.Info("login rejected",
				zap.String("email", email),
				zap.String("reason", string(credErr.Reason)))
			return nil, "", time.Time{}, apperrors.NewUnauthorized(credErr.Error())
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(auth.NewClaims(user))
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("last login update failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	s.publish(ctx, events.EventUserLoggedIn, user.ID, meta, nil)

	return user, token, exp, nil
}

// Register creates a new account and issues a session token for it. Public
// registration only mints admin or user accounts; super_admin is reserved
// for provisioning.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role, teamID *int64, meta ClientMeta) (*domain.User, string, time.Time, error) {
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, "", time.Time{}, apperrors.NewValidationError("invalid role", nil)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		TeamID:       teamID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(auth.NewClaims(user))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.publish(ctx, events.EventUserRegistered, user.ID, meta, nil)
	return user, token, exp, nil
}

// Logout records the event. Tokens are stateless and cannot be revoked; they
// stay valid until expiry.
func (s *AuthService) Logout(ctx context.Context, userID int64, meta ClientMeta) error {
	s.publish(ctx, events.EventUserLoggedOut, userID, meta, nil)
	return nil
}

// GetProfile loads the live user record behind a set of claims.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies the self-service subset of account fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, name *string, profileColor *string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		user.Name = *name
	}
	if profileColor != nil {
		user.ProfileColor = profileColor
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// RequestPasswordReset persists a reset token for the account email. An
// unknown email returns no token and no error, so the endpoint cannot be
// used to probe which accounts exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info("password reset requested for unknown email")
			return nil, nil
		}
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// VerifyToken exposes standalone token verification (the whoami endpoint).
func (s *AuthService) VerifyToken(tokenStr string) (*auth.Claims, error) {
	return s.tokenMgr.Verify(tokenStr)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID int64, meta ClientMeta, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{UserID: &userID, IPAddress: meta.IPAddress, UserAgent: meta.UserAgent}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, actor, payload))
}

package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/livara/chat-service/internal/domain"
)

// FailureReason records why credential verification failed. Reasons are for
// server-side diagnostics; every reason carries the same client-facing
// message so callers cannot distinguish unknown accounts from bad passwords
// or deactivated accounts.
type FailureReason string

const (
	ReasonUnknownEmail FailureReason = "unknown_email"
	ReasonInactive     FailureReason = "inactive_account"
	ReasonBadPassword  FailureReason = "bad_password"
)

// CredentialError is the typed failure returned by CredentialVerifier.
type CredentialError struct {
	Reason FailureReason
}

func (e *CredentialError) Error() string {
	return "invalid credentials"
}

// UserStore is the read-only collaborator supplying credential records.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialVerifier checks email/password pairs against stored hashes.
type CredentialVerifier struct {
	users UserStore
}

// NewCredentialVerifier constructs a verifier.
func NewCredentialVerifier(users UserStore) *CredentialVerifier {
	return &CredentialVerifier{users: users}
}

// Verify looks up the account by exact email match and compares the password
// against the stored bcrypt hash. Deactivated accounts cannot authenticate.
// Store errors other than a missing row pass through opaque for the caller
// to map.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &CredentialError{Reason: ReasonUnknownEmail}
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, &CredentialError{Reason: ReasonInactive}
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return nil, &CredentialError{Reason: ReasonBadPassword}
	}
	return user, nil
}

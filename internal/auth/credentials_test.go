package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livara/chat-service/internal/domain"
)

type stubUserStore struct {
	user *domain.User
	err  error
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{
		ID:           1,
		Email:        "agent@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
}

func TestVerifyCredentialsSuccess(t *testing.T) {
	store := &stubUserStore{user: activeUser(t, "hunter2")}
	v := NewCredentialVerifier(store)

	user, err := v.Verify(context.Background(), "agent@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestVerifyCredentialsFailures(t *testing.T) {
	cases := []struct {
		name   string
		store  *stubUserStore
		pass   string
		reason FailureReason
	}{
		{
			name:   "unknown email",
			store:  &stubUserStore{err: pgx.ErrNoRows},
			pass:   "hunter2",
			reason: ReasonUnknownEmail,
		},
		{
			name: "inactive account",
			store: func() *stubUserStore {
				s := &stubUserStore{user: activeUser(t, "hunter2")}
				s.user.IsActive = false
				return s
			}(),
			pass:   "hunter2",
			reason: ReasonInactive,
		},
		{
			name:   "wrong password",
			store:  &stubUserStore{user: activeUser(t, "hunter2")},
			pass:   "wrong",
			reason: ReasonBadPassword,
		},
	}

	var messages []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewCredentialVerifier(tc.store)
			user, err := v.Verify(context.Background(), "agent@example.com", tc.pass)
			assert.Nil(t, user)

			var credErr *CredentialError
			require.ErrorAs(t, err, &credErr)
			assert.Equal(t, tc.reason, credErr.Reason)
			messages = append(messages, credErr.Error())
		})
	}

	// Every failure reads identically to the caller.
	for _, msg := range messages {
		assert.Equal(t, "invalid credentials", msg)
	}
}

func TestVerifyCredentialsStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	v := NewCredentialVerifier(&stubUserStore{err: storeErr})

	_, err := v.Verify(context.Background(), "agent@example.com", "hunter2")
	require.Error(t, err)

	var credErr *CredentialError
	assert.False(t, errors.As(err, &credErr))
	assert.ErrorIs(t, err, storeErr)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "S3cret"))
	assert.Error(t, ComparePassword("not-a-hash", "s3cret"))
}

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/config"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

type fakeUserRepo struct {
	byEmail   map[string]*domain.User
	nextID    int64
	lastLogin []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context, teamID *int64) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	r.lastLogin = append(r.lastLogin, id)
	return nil
}

type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	token.ID = int64(len(r.tokens) + 1)
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeResetRepo) GetByToken(ctx context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	if t, ok := r.tokens[tokenStr]; ok {
		return t, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) MarkUsed(ctx context.Context, id int64) error {
	for _, t := range r.tokens {
		if t.ID == id {
			now := t.ExpiresAt
			t.UsedAt = &now
		}
	}
	return nil
}

func newTestAuthService(t *testing.T, users *fakeUserRepo) *AuthService {
	t.Helper()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "service-test-secret",
			TokenTTLHours:           1,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
	}
	return NewAuthService(cfg, AuthDependencies{
		UserRepo:          users,
		PasswordResetRepo: newFakeResetRepo(),
		Dispatcher:        events.NewInMemoryDispatcher(),
		Logger:            zap.NewNop(),
	})
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	user := &domain.User{
		Email:        email,
		Name:         "Seeded",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     active,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepo()
	seeded := seedUser(t, users, "agent@example.com", "hunter2", true)
	svc := newTestAuthService(t, users)

	user, token, _, err := svc.Login(context.Background(), "agent@example.com", "hunter2", ClientMeta{})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
	assert.Contains(t, users.lastLogin, seeded.ID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "agent@example.com", "hunter2", true)
	seedUser(t, users, "gone@example.com", "hunter2", false)
	svc := newTestAuthService(t, users)

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"unknown email", "nobody@example.com", "hunter2"},
		{"inactive account", "gone@example.com", "hunter2"},
		{"wrong password", "agent@example.com", "wrong"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tc.email, tc.pass, ClientMeta{})
			require.Error(t, err)

			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
			assert.Equal(t, "invalid credentials", domainErr.Message)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "agent@example.com", "hunter2", true)
	svc := newTestAuthService(t, users)

	_, _, _, err := svc.Register(context.Background(), "Agent", "agent@example.com", "hunter2", domain.RoleUser, nil, ClientMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, _, _, err := svc.Register(context.Background(), "Agent", "new@example.com", "hunter2", domain.Role("owner"), nil, ClientMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRegisterRejectsSuperAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(t, users)

	_, _, _, err := svc.Register(context.Background(), "Mallory", "m@example.com", "pw", domain.RoleSuperAdmin, nil, ClientMeta{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
	_, getErr := users.GetByEmail(context.Background(), "m@example.com")
	assert.ErrorIs(t, getErr, pgx.ErrNoRows)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	token, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestRequestPasswordResetKnownEmail(t *testing.T) {
	users := newFakeUserRepo()
	seeded := seedUser(t, users, "agent@example.com", "hunter2", true)
	svc := newTestAuthService(t, users)

	token, err := svc.RequestPasswordReset(context.Background(), "agent@example.com")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, seeded.ID, token.UserID)
	assert.NotEmpty(t, token.Token)
}

func TestRegisterIssuesWorkingToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(t, users)
	teamID := int64(4)

	user, token, _, err := svc.Register(context.Background(), "Agent", "new@example.com", "hunter2", domain.RoleUser, &teamID, ClientMeta{})
	require.NoError(t, err)

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	require.NotNil(t, claims.TeamID)
	assert.Equal(t, teamID, *claims.TeamID)
}

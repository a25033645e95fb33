package service

import (
	"context"
	"encoding/hex"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	apperrors "github.com/livara/chat-service/pkg/util"
)

type fakeWidgetKeyRepo struct {
	byID    map[int64]*domain.WidgetKey
	updated []int64
	deleted []int64
}

func newFakeWidgetKeyRepo(keys ...*domain.WidgetKey) *fakeWidgetKeyRepo {
	repo := &fakeWidgetKeyRepo{byID: make(map[int64]*domain.WidgetKey)}
	for _, key := range keys {
		repo.byID[key.ID] = key
	}
	return repo
}

func (r *fakeWidgetKeyRepo) Create(ctx context.Context, key *domain.WidgetKey) error {
	r.byID[key.ID] = key
	return nil
}

func (r *fakeWidgetKeyRepo) Update(ctx context.Context, key *domain.WidgetKey) error {
	r.updated = append(r.updated, key.ID)
	r.byID[key.ID] = key
	return nil
}

func (r *fakeWidgetKeyRepo) Delete(ctx context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	delete(r.byID, id)
	return nil
}

func (r *fakeWidgetKeyRepo) GetByID(ctx context.Context, id int64) (*domain.WidgetKey, error) {
	if key, ok := r.byID[id]; ok {
		copied := *key
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeWidgetKeyRepo) GetActiveByAPIKey(ctx context.Context, apiKey string) (*domain.WidgetKey, error) {
	for _, key := range r.byID {
		if key.APIKey == apiKey && key.IsActive {
			copied := *key
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeWidgetKeyRepo) ListByTeam(ctx context.Context, teamID int64) ([]domain.WidgetKey, error) {
	var out []domain.WidgetKey
	for _, key := range r.byID {
		if key.TeamID == teamID {
			out = append(out, *key)
		}
	}
	return out, nil
}

func (r *fakeWidgetKeyRepo) IncrementUsage(ctx context.Context, apiKey string) error {
	return nil
}

func TestGenerateAPIKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		key, err := GenerateAPIKey()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(key, "lw_"))
		hexPart := strings.TrimPrefix(key, "lw_")
		assert.Len(t, hexPart, 64)
		_, err = hex.DecodeString(hexPart)
		assert.NoError(t, err)

		assert.False(t, seen[key], "duplicate key generated")
		seen[key] = true
	}
}

func TestResolveTeamID(t *testing.T) {
	ownTeam := int64(3)
	otherTeam := int64(9)

	t.Run("admin may target any team", func(t *testing.T) {
		claims := &auth.Claims{Role: domain.RoleAdmin}
		teamID, err := ResolveTeamID(claims, &otherTeam)
		require.NoError(t, err)
		assert.Equal(t, otherTeam, teamID)
	})

	t.Run("super admin may target any team", func(t *testing.T) {
		claims := &auth.Claims{Role: domain.RoleSuperAdmin, TeamID: &ownTeam}
		teamID, err := ResolveTeamID(claims, &otherTeam)
		require.NoError(t, err)
		assert.Equal(t, otherTeam, teamID)
	})

	t.Run("member pinned to own team", func(t *testing.T) {
		claims := &auth.Claims{Role: domain.RoleUser, TeamID: &ownTeam}
		teamID, err := ResolveTeamID(claims, &otherTeam)
		require.NoError(t, err)
		assert.Equal(t, ownTeam, teamID)
	})

	t.Run("admin without request falls back to own team", func(t *testing.T) {
		claims := &auth.Claims{Role: domain.RoleAdmin, TeamID: &ownTeam}
		teamID, err := ResolveTeamID(claims, nil)
		require.NoError(t, err)
		assert.Equal(t, ownTeam, teamID)
	})

	t.Run("no team anywhere fails", func(t *testing.T) {
		claims := &auth.Claims{Role: domain.RoleUser}
		_, err := ResolveTeamID(claims, &otherTeam)
		assert.Error(t, err)
	})
}

func claimsFor(role domain.Role, teamID *int64) *auth.Claims {
	return &auth.Claims{UserID: 1, Role: role, TeamID: teamID}
}

func TestUpdateKeyRejectsForeignTeam(t *testing.T) {
	repo := newFakeWidgetKeyRepo(&domain.WidgetKey{ID: 1, TeamID: 9, KeyName: "prod"})
	svc := NewWidgetService(repo, nil, nil, events.NewInMemoryDispatcher(), zap.NewNop())
	ownTeam := int64(5)
	newName := "renamed"

	_, err := svc.UpdateKey(context.Background(), claimsFor(domain.RoleUser, &ownTeam), 1, &newName, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
	assert.Empty(t, repo.updated)
	assert.Equal(t, "prod", repo.byID[1].KeyName)
}

func TestDeleteKeyRejectsForeignTeam(t *testing.T) {
	repo := newFakeWidgetKeyRepo(&domain.WidgetKey{ID: 1, TeamID: 9, KeyName: "prod"})
	svc := NewWidgetService(repo, nil, nil, events.NewInMemoryDispatcher(), zap.NewNop())
	ownTeam := int64(5)

	err := svc.DeleteKey(context.Background(), claimsFor(domain.RoleUser, &ownTeam), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
	assert.Empty(t, repo.deleted)
	assert.Contains(t, repo.byID, int64(1))
}

func TestUpdateKeyAllowsOwnTeam(t *testing.T) {
	repo := newFakeWidgetKeyRepo(&domain.WidgetKey{ID: 1, TeamID: 5, KeyName: "prod"})
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.EventType
	dispatcher.Subscribe(events.EventWidgetKeyUpdated, func(ctx context.Context, event events.Event) error {
		published = append(published, event.Type)
		return nil
	})
	svc := NewWidgetService(repo, nil, nil, dispatcher, zap.NewNop())
	ownTeam := int64(5)
	newName := "renamed"

	key, err := svc.UpdateKey(context.Background(), claimsFor(domain.RoleUser, &ownTeam), 1, &newName, nil)
	require.NoError(t, err)
	assert.Equal(t, "renamed", key.KeyName)
	assert.Equal(t, []int64{1}, repo.updated)
	assert.Equal(t, []events.EventType{events.EventWidgetKeyUpdated}, published)
}

func TestDeleteKeyAllowsAdminAcrossTeams(t *testing.T) {
	repo := newFakeWidgetKeyRepo(&domain.WidgetKey{ID: 1, TeamID: 9, KeyName: "prod"})
	svc := NewWidgetService(repo, nil, nil, events.NewInMemoryDispatcher(), zap.NewNop())

	err := svc.DeleteKey(context.Background(), claimsFor(domain.RoleAdmin, nil), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestApplyConfigDefaults(t *testing.T) {
	cfg := &domain.WidgetConfig{TeamID: 5}
	applyConfigDefaults(cfg)

	assert.Equal(t, "Chat with us", cfg.WidgetTitle)
	assert.Equal(t, "#2563eb", cfg.PrimaryColor)
	assert.Equal(t, "bottom-right", cfg.WidgetPosition)

	custom := &domain.WidgetConfig{TeamID: 5, WidgetTitle: "Support", PrimaryColor: "#000000"}
	applyConfigDefaults(custom)
	assert.Equal(t, "Support", custom.WidgetTitle)
	assert.Equal(t, "#000000", custom.PrimaryColor)
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

const (
	apiKeyPrefix     = "lw_"
	keyCacheTTL      = time.Minute
	keyCachePrefix   = "widget:key:"
	statsCachePrefix = "widget:messages:"
)

// ErrWidgetKeyInvalid is returned when an API key is unknown, disabled, or
// belongs to a disabled team.
var ErrWidgetKeyInvalid = errors.New("invalid widget api key")

// WidgetService manages widget API keys and per-team widget configuration.
// Validated keys are cached in Redis briefly to keep the public chat path off
// the database.
type WidgetService struct {
	keys       repository.WidgetKeyRepository
	configs    repository.WidgetConfigRepository
	cache      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewWidgetService constructs the service. The cache client may be nil, in
// which case every validation hits Postgres.
func NewWidgetService(keys repository.WidgetKeyRepository, configs repository.WidgetConfigRepository, cache *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *WidgetService {
	return &WidgetService{
		keys:       keys,
		configs:    configs,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// GenerateAPIKey returns a fresh widget key string.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return apiKeyPrefix + hex.EncodeToString(buf), nil
}

// ResolveTeamID picks the team a request operates on: admins may target any
// team, everyone else is pinned to their own.
func ResolveTeamID(claims *auth.Claims, requested *int64) (int64, error) {
	if claims.Role.AdminTier() && requested != nil {
		return *requested, nil
	}
	if claims.TeamID != nil {
		return *claims.TeamID, nil
	}
	return 0, apperrors.NewValidationError("no team specified", nil)
}

// CreateKey mints and stores a new API key for the team.
func (s *WidgetService) CreateKey(ctx context.Context, teamID int64, keyName string, createdBy int64) (*domain.WidgetKey, error) {
	if keyName == "" {
		return nil, apperrors.NewValidationError("api key name required", nil)
	}
	apiKey, err := GenerateAPIKey()
	if err != nil {
		return nil, err
	}
	key := &domain.WidgetKey{
		TeamID:    teamID,
		APIKey:    apiKey,
		KeyName:   keyName,
		IsActive:  true,
		CreatedBy: &createdBy,
	}
	if err := s.keys.Create(ctx, key); err != nil {
		return nil, err
	}
	s.publishKeyEvent(ctx, events.EventWidgetKeyCreated, key, createdBy)
	return key, nil
}

// ListKeys returns the team's keys.
func (s *WidgetService) ListKeys(ctx context.Context, teamID int64) ([]domain.WidgetKey, error) {
	return s.keys.ListByTeam(ctx, teamID)
}

// UpdateKey renames or toggles a key. Non-admin callers may only touch keys
// belonging to their own team. The cache entry is dropped so a deactivation
// takes effect within one request.
func (s *WidgetService) UpdateKey(ctx context.Context, claims *auth.Claims, id int64, keyName *string, isActive *bool) (*domain.WidgetKey, error) {
	key, err := s.keys.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeKeyAccess(claims, key); err != nil {
		return nil, err
	}
	if keyName != nil && *keyName != "" {
		key.KeyName = *keyName
	}
	if isActive != nil {
		key.IsActive = *isActive
	}
	if err := s.keys.Update(ctx, key); err != nil {
		return nil, err
	}
	s.invalidateKey(ctx, key.APIKey)
	s.publishKeyEvent(ctx, events.EventWidgetKeyUpdated, key, claims.UserID)
	return key, nil
}

// DeleteKey removes a key and drops its cache entry. The same team ownership
// rule as UpdateKey applies.
func (s *WidgetService) DeleteKey(ctx context.Context, claims *auth.Claims, id int64) error {
	key, err := s.keys.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeKeyAccess(claims, key); err != nil {
		return err
	}
	if err := s.keys.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateKey(ctx, key.APIKey)
	s.publishKeyEvent(ctx, events.EventWidgetKeyRevoked, key, claims.UserID)
	return nil
}

// authorizeKeyAccess rejects non-admin callers operating on a key outside
// their own team.
func authorizeKeyAccess(claims *auth.Claims, key *domain.WidgetKey) error {
	if claims.Role.AdminTier() {
		return nil
	}
	if claims.TeamID == nil || *claims.TeamID != key.TeamID {
		return apperrors.NewForbidden(auth.MsgForbidden)
	}
	return nil
}

// ValidateKey resolves an API key to its widget key record, consulting the
// Redis cache first. Unknown and inactive keys both return
// ErrWidgetKeyInvalid.
func (s *WidgetService) ValidateKey(ctx context.Context, apiKey string) (*domain.WidgetKey, error) {
	if apiKey == "" {
		return nil, ErrWidgetKeyInvalid
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, keyCachePrefix+apiKey).Bytes(); err == nil {
			var key domain.WidgetKey
			if err := json.Unmarshal(cached, &key); err == nil {
				return &key, nil
			}
		}
	}

	key, err := s.keys.GetActiveByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWidgetKeyInvalid
		}
		return nil, err
	}

	if s.cache != nil {
		if buf, err := json.Marshal(key); err == nil {
			if err := s.cache.Set(ctx, keyCachePrefix+apiKey, buf, keyCacheTTL).Err(); err != nil {
				s.logger.Debug("widget key cache set failed", zap.Error(err))
			}
		}
	}
	return key, nil
}

// RecordUsage bumps the key's usage counter and the team's Redis message
// counter.
func (s *WidgetService) RecordUsage(ctx context.Context, key *domain.WidgetKey) {
	if err := s.keys.IncrementUsage(ctx, key.APIKey); err != nil {
		s.logger.Warn("usage increment failed", zap.Int64("key_id", key.ID), zap.Error(err))
	}
	if s.cache != nil {
		counter := fmt.Sprintf("%s%d", statsCachePrefix, key.TeamID)
		if err := s.cache.Incr(ctx, counter).Err(); err != nil {
			s.logger.Debug("message counter incr failed", zap.Error(err))
		}
	}
}

// GetConfig returns the team's widget configuration.
func (s *WidgetService) GetConfig(ctx context.Context, teamID int64) (*domain.WidgetConfig, error) {
	return s.configs.GetByTeam(ctx, teamID)
}

// GetConfigByKey resolves the public widget configuration for an embed key.
func (s *WidgetService) GetConfigByKey(ctx context.Context, apiKey string) (*domain.WidgetConfig, error) {
	key, err := s.ValidateKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	config, err := s.configs.GetByTeam(ctx, key.TeamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultWidgetConfig(key.TeamID), nil
		}
		return nil, err
	}
	return config, nil
}

// SaveConfig creates or updates the team's widget configuration.
func (s *WidgetService) SaveConfig(ctx context.Context, config *domain.WidgetConfig) error {
	if config.TeamID == 0 {
		return apperrors.NewValidationError("team_id required", nil)
	}
	applyConfigDefaults(config)
	return s.configs.Upsert(ctx, config)
}

func defaultWidgetConfig(teamID int64) *domain.WidgetConfig {
	config := &domain.WidgetConfig{TeamID: teamID}
	applyConfigDefaults(config)
	return config
}

func applyConfigDefaults(config *domain.WidgetConfig) {
	if config.WidgetTitle == "" {
		config.WidgetTitle = "Chat with us"
	}
	if config.PrimaryColor == "" {
		config.PrimaryColor = "#2563eb"
	}
	if config.SecondaryColor == "" {
		config.SecondaryColor = "#f1f5f9"
	}
	if config.WelcomeMessage == "" {
		config.WelcomeMessage = "Hi! How can we help you today?"
	}
	if config.InputPlaceholder == "" {
		config.InputPlaceholder = "Type your message..."
	}
	if config.WidgetPosition == "" {
		config.WidgetPosition = "bottom-right"
	}
}

func (s *WidgetService) invalidateKey(ctx context.Context, apiKey string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keyCachePrefix+apiKey).Err(); err != nil {
		s.logger.Debug("widget key cache del failed", zap.Error(err))
	}
}

func (s *WidgetService) publishKeyEvent(ctx context.Context, eventType events.EventType, key *domain.WidgetKey, actorID int64) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{UserID: &actorID}
	payload := events.WidgetKeyPayload{KeyID: key.ID, TeamID: key.TeamID, KeyName: key.KeyName}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, actor, payload))
}

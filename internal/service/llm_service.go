package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/livara/chat-service/internal/config"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/events"
	"github.com/livara/chat-service/internal/repository"
	apperrors "github.com/livara/chat-service/pkg/util"
)

const defaultSystemPrompt = "You are a helpful customer support assistant. Keep answers short and to the point, and only answer questions about the company's products and services."

// LLMService stores provider settings and relays chat messages to the
// configured provider (OpenAI or a local Ollama server).
type LLMService struct {
	settings repository.LLMSettingsRepository
	client   *http.Client
	logger   *zap.Logger
	dispatch events.Dispatcher
}

// NewLLMService constructs the service.
func NewLLMService(cfg config.LLMConfig, settings repository.LLMSettingsRepository, dispatcher events.Dispatcher, logger *zap.Logger) *LLMService {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &LLMService{
		settings: settings,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		dispatch: dispatcher,
	}
}

// GetSettings returns the stored provider settings.
func (s *LLMService) GetSettings(ctx context.Context) (*domain.LLMSettings, error) {
	return s.settings.Get(ctx)
}

// SaveSettings stores new provider settings.
func (s *LLMService) SaveSettings(ctx context.Context, settings *domain.LLMSettings, updatedBy int64) error {
	switch settings.Provider {
	case domain.LLMProviderOpenAI, domain.LLMProviderOllama:
	default:
		return apperrors.NewValidationError("provider must be openai or ollama", nil)
	}
	settings.UpdatedBy = &updatedBy
	if err := s.settings.Save(ctx, settings); err != nil {
		return err
	}
	if s.dispatch != nil {
		actor := events.Actor{UserID: &updatedBy}
		_ = s.dispatch.Publish(ctx, events.NewEvent(events.EventLLMSettingsSaved, actor, nil))
	}
	return nil
}

// GenerateReply relays a user message to the configured provider and returns
// the assistant reply. Provider failures surface as opaque upstream errors.
func (s *LLMService) GenerateReply(ctx context.Context, message string) (string, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}

	switch settings.Provider {
	case domain.LLMProviderOpenAI:
		return s.generateOpenAI(ctx, settings, message)
	case domain.LLMProviderOllama:
		return s.generateOllama(ctx, settings, message)
	default:
		return "", apperrors.NewValidationError("llm provider not configured", nil)
	}
}

func (s *LLMService) systemPrompt(settings *domain.LLMSettings) string {
	if strings.TrimSpace(settings.CustomInstructions) != "" {
		return settings.CustomInstructions
	}
	return defaultSystemPrompt
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

func (s *LLMService) generateOpenAI(ctx context.Context, settings *domain.LLMSettings, message string) (string, error) {
	if settings.OpenAIAPIKey == "" {
		return "", apperrors.NewValidationError("openai api key not configured", nil)
	}
	model := settings.OpenAIModel
	if model == "" {
		model = "gpt-4o-mini"
	}

	payload := openAIRequest{
		Model: model,
		Messages: []openAIMessage{
			{Role: "system", Content: s.systemPrompt(settings)},
			{Role: "user", Content: message},
		},
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	}

	var result openAIResponse
	if err := s.postJSON(ctx, "https://api.openai.com/v1/chat/completions", settings.OpenAIAPIKey, payload, &result); err != nil {
		return "", apperrors.NewBadGateway("llm provider request failed", err)
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", apperrors.NewBadGateway("empty response from llm provider", nil)
	}
	return result.Choices[0].Message.Content, nil
}

type ollamaOptions struct {
	NumCtx      int     `json:"num_ctx,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (s *LLMService) generateOllama(ctx context.Context, settings *domain.LLMSettings, message string) (string, error) {
	baseURL := settings.OllamaURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := settings.OllamaModel
	if model == "" {
		model = "qwen2.5:14b-instruct-q4_K_M"
	}

	payload := ollamaRequest{
		Model:  model,
		Prompt: fmt.Sprintf("%s\n\nHuman: %s\n\nAssistant:", s.systemPrompt(settings), message),
		Stream: false,
		Options: ollamaOptions{
			NumCtx:      settings.MaxTokens,
			Temperature: settings.Temperature,
		},
	}

	var result ollamaResponse
	if err := s.postJSON(ctx, strings.TrimRight(baseURL, "/")+"/api/generate", "", payload, &result); err != nil {
		return "", apperrors.NewBadGateway("llm provider request failed", err)
	}
	if result.Response == "" {
		return "", apperrors.NewBadGateway("empty response from llm provider", nil)
	}
	return strings.TrimSpace(result.Response), nil
}

func (s *LLMService) postJSON(ctx context.Context, url, bearer string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Warn("llm provider error",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

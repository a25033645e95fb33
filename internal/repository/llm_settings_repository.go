package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/livara/chat-service/internal/domain"
)

// LLMSettingsRepository stores the provider settings used by the chat relay.
type LLMSettingsRepository interface {
	Get(ctx context.Context) (*domain.LLMSettings, error)
	Save(ctx context.Context, settings *domain.LLMSettings) error
}

type llmSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewLLMSettingsRepository constructs repository.
func NewLLMSettingsRepository(pool *pgxpool.Pool) LLMSettingsRepository {
	return &llmSettingsRepository{pool: pool}
}

// Get returns the most recent settings row, or defaults pointing at a local
// Ollama server when none has been saved yet.
func (r *llmSettingsRepository) Get(ctx context.Context) (*domain.LLMSettings, error) {
	const query = `
        SELECT id, provider, openai_api_key, openai_model, ollama_url, ollama_model,
               max_tokens, temperature, custom_instructions, updated_by, updated_at
        FROM llm_settings ORDER BY id DESC LIMIT 1`
	var settings domain.LLMSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.Provider,
		&settings.OpenAIAPIKey,
		&settings.OpenAIModel,
		&settings.OllamaURL,
		&settings.OllamaModel,
		&settings.MaxTokens,
		&settings.Temperature,
		&settings.CustomInstructions,
		&settings.UpdatedBy,
		&settings.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.LLMSettings{
			Provider:    domain.LLMProviderOllama,
			OllamaURL:   "http://localhost:11434",
			OllamaModel: "qwen2.5:14b-instruct-q4_K_M",
			MaxTokens:   2048,
			Temperature: 0.7,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *llmSettingsRepository) Save(ctx context.Context, settings *domain.LLMSettings) error {
	const query = `
        INSERT INTO llm_settings
            (provider, openai_api_key, openai_model, ollama_url, ollama_model,
             max_tokens, temperature, custom_instructions, updated_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, updated_at`
	return r.pool.QueryRow(ctx, query,
		settings.Provider,
		settings.OpenAIAPIKey,
		settings.OpenAIModel,
		settings.OllamaURL,
		settings.OllamaModel,
		settings.MaxTokens,
		settings.Temperature,
		settings.CustomInstructions,
		settings.UpdatedBy,
	).Scan(&settings.ID, &settings.UpdatedAt)
}

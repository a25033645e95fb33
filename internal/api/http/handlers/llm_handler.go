package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/livara/chat-service/internal/api/dto"
	"github.com/livara/chat-service/internal/auth"
	"github.com/livara/chat-service/internal/domain"
	"github.com/livara/chat-service/internal/service"
)

// LLMHandler exposes admin LLM provider configuration.
type LLMHandler struct {
	llm *service.LLMService
}

// NewLLMHandler constructs handler.
func NewLLMHandler(llmService *service.LLMService) *LLMHandler {
	return &LLMHandler{llm: llmService}
}

// GetSettings handles GET /api/admin/llm-settings. The OpenAI key is
// masked; only its presence is reported.
func (h *LLMHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.llm.GetSettings(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"provider":            settings.Provider,
			"openai_api_key_set":  settings.OpenAIAPIKey != "",
			"openai_model":        settings.OpenAIModel,
			"ollama_url":          settings.OllamaURL,
			"ollama_model":        settings.OllamaModel,
			"max_tokens":          settings.MaxTokens,
			"temperature":         settings.Temperature,
			"custom_instructions": settings.CustomInstructions,
			"updated_at":          settings.UpdatedAt,
		},
	})
}

// SaveSettings handles PUT /api/admin/llm-settings.
func (h *LLMHandler) SaveSettings(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)

	var req dto.LLMSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	settings := &domain.LLMSettings{
		Provider:           domain.LLMProvider(req.Provider),
		OpenAIAPIKey:       req.OpenAIAPIKey,
		OpenAIModel:        req.OpenAIModel,
		OllamaURL:          req.OllamaURL,
		OllamaModel:        req.OllamaModel,
		MaxTokens:          req.MaxTokens,
		Temperature:        req.Temperature,
		CustomInstructions: req.CustomInstructions,
	}
	if err := h.llm.SaveSettings(c.Context(), settings, claims.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "llm settings saved"})
}

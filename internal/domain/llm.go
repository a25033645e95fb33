package domain

import "time"

// LLMProvider identifies the backing model provider.
type LLMProvider string

const (
	LLMProviderOpenAI LLMProvider = "openai"
	LLMProviderOllama LLMProvider = "ollama"
)

// LLMSettings configures the provider used to generate widget replies.
type LLMSettings struct {
	ID                 int64
	Provider           LLMProvider
	OpenAIAPIKey       string
	OpenAIModel        string
	OllamaURL          string
	OllamaModel        string
	MaxTokens          int
	Temperature        float64
	CustomInstructions string
	UpdatedBy          *int64
	UpdatedAt          time.Time
}

// DocumentStatus tracks the approval workflow for uploaded documents.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Document is the metadata record for a knowledge-base upload.
type Document struct {
	ID          int64
	TeamID      *int64
	FileName    string
	ContentType string
	SizeBytes   int64
	Status      DocumentStatus
	UploadedBy  int64
	ReviewedBy  *int64
	ReviewedAt  *time.Time
	CreatedAt   time.Time
}

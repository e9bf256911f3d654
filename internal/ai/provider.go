package ai

import (
	"context"
	"time"
)

// Provider abstracts a completion backend (OpenAI, Anthropic).
type Provider interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	Embed(ctx context.Context, model string, input []string) (*Embedding, error)
	Name() string
	Models() []string
}

// Gateway routes drafting calls across providers with retry and fallback.
type Gateway interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
	Embed(ctx context.Context, input []string) (*Embedding, error)
	Provider(name string) (Provider, error)
	ListModels() []ModelInfo
}

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// Request is the input for a drafting completion.
type Request struct {
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
}

// Completion is the output of a drafting call.
type Completion struct {
	ID           string  `json:"id"`
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	Content      string  `json:"content"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	LatencyMs    int64   `json:"latency_ms"`
}

// Embedding is the output of an embedding call.
type Embedding struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Vectors  [][]float32 `json:"vectors"`
	Tokens   int         `json:"tokens"`
	CostUSD  float64     `json:"cost_usd"`
}

// ModelInfo describes an available model.
type ModelInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// UsageRecord tracks a single provider call for cost reporting.
type UsageRecord struct {
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD     float64
	LatencyMs   int64
	Endpoint    string
	Timestamp   time.Time
}

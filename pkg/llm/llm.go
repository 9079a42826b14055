package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// Concrete providers live in subpackages.
type ChatModel interface {
	Complete(ctx context.Context, req Request) (Completion, error)
	// Model is the identifier sent when Request.Model is empty.
	Model() string
}

type Request struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type Completion struct {
	Content string
	Model   string
	Usage   Usage
}

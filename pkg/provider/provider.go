// Package provider defines the inference provider interface and common types.
package provider

import "context"

// Message represents a conversation message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage tracks token consumption as reported by the remote service.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Consistent reports whether the total equals prompt plus completion.
// The remote service owns this arithmetic; callers only observe it.
func (u Usage) Consistent() bool {
	return u.TotalTokens == u.PromptTokens+u.CompletionTokens
}

// ChatRequest is the input to a provider.
type ChatRequest struct {
	Model    string
	Messages []Message
	// ToolTags are capability tags such as "web_search", sent as
	// {"type": tag} entries in the request's tools array.
	ToolTags []string
}

// ChatResponse is the output from a provider.
type ChatResponse struct {
	Content string
	Usage   Usage
}

// Provider is the interface every inference back end implements.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Name() string
}

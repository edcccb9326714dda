package provider

import (
	"fmt"
	"time"
)

// Back-end names accepted by NewFromConfig.
const (
	APIChat      = "chat"
	APIResponses = "responses"
)

// Config holds provider configuration.
type Config struct {
	API     string // APIChat or APIResponses
	APIKey  string
	Model   string
	BaseURL string        // Optional: custom endpoint for OpenAI-compatible APIs
	Timeout time.Duration // Optional: per-request bound
}

// New creates a Provider by API name.
func New(api, apiKey, model string) (Provider, error) {
	return NewFromConfig(Config{API: api, APIKey: apiKey, Model: model})
}

// NewFromConfig creates a Provider from a full Config.
// An empty API name selects the Chat Completions back end.
func NewFromConfig(cfg Config) (Provider, error) {
	var opts []OpenAIOption
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}

	switch cfg.API {
	case APIChat, "chat_completions", "":
		return NewOpenAIChat(cfg.APIKey, cfg.Model, opts...), nil
	case APIResponses:
		return NewOpenAIResponses(cfg.APIKey, cfg.Model, opts...), nil
	default:
		return nil, &Error{
			Kind:     KindConfig,
			Provider: "openai",
			Message:  fmt.Sprintf("unknown api: %q (supported: %s, %s)", cfg.API, APIChat, APIResponses),
		}
	}
}

// DefaultModel returns the model used by the named back end when none is
// configured.
func DefaultModel(api string) string {
	if api == APIResponses {
		return DefaultResponsesModel
	}
	return DefaultChatModel
}

// DefaultToolTags returns the web search tags for the named back end.
func DefaultToolTags(api string) []string {
	if api == APIResponses {
		return []string{DefaultResponsesTool}
	}
	return []string{DefaultChatToolTag}
}

package provider

import (
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Defaults used when the caller leaves the model or tool tags empty.
// The search tool tag differs between the two endpoints.
const (
	DefaultChatModel      = "gpt-4-turbo"
	DefaultChatToolTag    = "web_search"
	DefaultResponsesModel = "gpt-4o"
	DefaultResponsesTool  = "web_search_preview"
)

// OpenAIOption configures an OpenAI back end.
type OpenAIOption func(*openaiBase)

// WithBaseURL sets a custom API base URL (for compatible providers).
func WithBaseURL(url string) OpenAIOption {
	return func(o *openaiBase) { o.baseURL = url }
}

// WithTimeout bounds each request. Zero keeps the client default.
func WithTimeout(d time.Duration) OpenAIOption {
	return func(o *openaiBase) { o.timeout = d }
}

// openaiBase holds what both OpenAI back ends share: the credential, the
// default model and one SDK client built at construction time.
type openaiBase struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  openai.Client
}

func newOpenAIBase(apiKey, model string, opts []OpenAIOption) openaiBase {
	b := openaiBase{apiKey: apiKey, model: model}
	for _, opt := range opts {
		opt(&b)
	}
	b.client = openai.NewClient(b.clientOptions()...)
	return b
}

func (b *openaiBase) clientOptions() []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(b.apiKey),
		// Failures surface to the caller as-is; nothing is retried.
		option.WithMaxRetries(0),
	}
	if b.baseURL != "" {
		opts = append(opts, option.WithBaseURL(b.baseURL))
	}
	if b.timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(b.timeout))
	}
	return opts
}

func (b *openaiBase) resolveModel(model string) string {
	if model != "" {
		return model
	}
	return b.model
}

// toolOptions writes the tools array directly into the request body. The
// tag names differ between API revisions, so they are passed through
// verbatim instead of going through the SDK's typed tool unions.
func toolOptions(tags []string) []option.RequestOption {
	if len(tags) == 0 {
		return nil
	}
	tools := make([]map[string]string, 0, len(tags))
	for _, tag := range tags {
		tools = append(tools, map[string]string{"type": tag})
	}
	return []option.RequestOption{option.WithJSONSet("tools", tools)}
}

package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIChat implements Provider over the Chat Completions API
// (POST {base}/chat/completions).
type OpenAIChat struct {
	openaiBase
}

// NewOpenAIChat creates a Chat Completions provider.
// model defaults to DefaultChatModel if empty.
func NewOpenAIChat(apiKey, model string, opts ...OpenAIOption) *OpenAIChat {
	if model == "" {
		model = DefaultChatModel
	}
	return &OpenAIChat{openaiBase: newOpenAIBase(apiKey, model, opts)}
}

func (o *OpenAIChat) Name() string { return "openai-chat" }

func (o *OpenAIChat) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if o.apiKey == "" {
		return nil, newError(KindConfig, o.Name(), ErrMissingCredential)
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(o.resolveModel(req.Model)),
		Messages: chatMessages(req.Messages),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params, toolOptions(req.ToolTags)...)
	if err != nil {
		return nil, classify(o.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return nil, newError(KindResponse, o.Name(), fmt.Errorf("%w: empty choices", ErrEmptyResponse))
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, newError(KindResponse, o.Name(), fmt.Errorf("%w: empty message content", ErrEmptyResponse))
	}

	return &ChatResponse{
		Content: content,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func chatMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case "system":
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case "assistant":
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return out
}

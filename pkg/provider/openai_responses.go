package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
)

// OpenAIResponses implements Provider over the Responses API
// (POST {base}/responses).
type OpenAIResponses struct {
	openaiBase
}

// NewOpenAIResponses creates a Responses API provider.
// model defaults to DefaultResponsesModel if empty.
func NewOpenAIResponses(apiKey, model string, opts ...OpenAIOption) *OpenAIResponses {
	if model == "" {
		model = DefaultResponsesModel
	}
	return &OpenAIResponses{openaiBase: newOpenAIBase(apiKey, model, opts)}
}

func (o *OpenAIResponses) Name() string { return "openai-responses" }

func (o *OpenAIResponses) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if o.apiKey == "" {
		return nil, newError(KindConfig, o.Name(), ErrMissingCredential)
	}

	params := responses.ResponseNewParams{
		Model: openai.ChatModel(o.resolveModel(req.Model)),
		Input: responsesInput(req.Messages),
	}

	resp, err := o.client.Responses.New(ctx, params, toolOptions(req.ToolTags)...)
	if err != nil {
		return nil, classify(o.Name(), err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, newError(KindResponse, o.Name(),
			fmt.Errorf("%w: no output text (status=%s)", ErrEmptyResponse, resp.Status))
	}

	return &ChatResponse{
		Content: content,
		Usage: Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// responsesInput sends a lone user message as a plain input string and
// anything longer as a list of input messages.
func responsesInput(msgs []Message) responses.ResponseNewParamsInputUnion {
	if len(msgs) == 1 && msgs[0].Role == "user" {
		return responses.ResponseNewParamsInputUnion{OfString: openai.String(msgs[0].Content)}
	}

	items := make(responses.ResponseInputParam, 0, len(msgs))
	for _, m := range msgs {
		role := responses.EasyInputMessageRoleUser
		switch m.Role {
		case "system":
			role = responses.EasyInputMessageRoleSystem
		case "assistant":
			role = responses.EasyInputMessageRoleAssistant
		}
		items = append(items, responses.ResponseInputItemUnionParam{
			OfMessage: &responses.EasyInputMessageParam{
				Role: role,
				Content: responses.EasyInputMessageContentUnionParam{
					OfString: openai.String(m.Content),
				},
			},
		})
	}
	return responses.ResponseNewParamsInputUnion{OfInputItemList: items}
}

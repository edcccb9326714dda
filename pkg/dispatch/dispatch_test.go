package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rcliao/headlines/pkg/provider"
	"github.com/rcliao/headlines/pkg/report"
)

// mockProvider implements provider.Provider for testing.
type mockProvider struct {
	response *provider.ChatResponse
	err      error
	calls    []provider.ChatRequest
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Chat(_ context.Context, req provider.ChatRequest) (*provider.ChatResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func newsQuery() Query {
	return Query{
		Prompt:   "Quais são as principais notícias do Brasil hoje?",
		Model:    "gpt-4-turbo",
		ToolTags: []string{"web_search"},
	}
}

// fakeChatService answers every request with a fixed chat completion.
func fakeChatService(t *testing.T, hits *atomic.Int32, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func chatCompletion(answer string, prompt, completion, total int) string {
	return fmt.Sprintf(`{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "gpt-4-turbo",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": %q}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": %d, "completion_tokens": %d, "total_tokens": %d}
	}`, answer, prompt, completion, total)
}

func TestFetchHeadlines_BuildsRequest(t *testing.T) {
	mp := &mockProvider{response: &provider.ChatResponse{
		Content: "Notícias do dia.",
		Usage:   provider.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}}
	out := &bytes.Buffer{}

	if err := New(mp, newsQuery(), out).FetchHeadlines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mp.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mp.calls))
	}
	req := mp.calls[0]
	if req.Model != "gpt-4-turbo" {
		t.Errorf("model = %q", req.Model)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != newsQuery().Prompt {
		t.Errorf("messages = %+v", req.Messages)
	}
	if len(req.ToolTags) != 1 || req.ToolTags[0] != "web_search" {
		t.Errorf("tool tags = %v", req.ToolTags)
	}
}

func TestFetchHeadlines_QueryIsCopied(t *testing.T) {
	mp := &mockProvider{response: &provider.ChatResponse{Content: "ok"}}
	q := newsQuery()
	d := New(mp, q, &bytes.Buffer{})
	q.ToolTags[0] = "mutated"

	if err := d.FetchHeadlines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mp.calls[0].ToolTags[0]; got != "web_search" {
		t.Errorf("tool tag = %q, caller mutation leaked into the dispatcher", got)
	}
}

func TestFetchHeadlines_PrintsAnswerAndCounters(t *testing.T) {
	var hits atomic.Int32
	server := fakeChatService(t, &hits, chatCompletion("Congresso aprova reforma tributária.", 10, 5, 15))

	p := provider.NewOpenAIChat("test-key", "", provider.WithBaseURL(server.URL))
	out := &bytes.Buffer{}
	if err := New(p, newsQuery(), out).FetchHeadlines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Congresso aprova reforma tributária.",
		"Prompt tokens: 10\n",
		"Completion tokens: 5\n",
		"Total tokens: 15\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("service saw %d requests, want 1", hits.Load())
	}
}

func TestFetchHeadlines_MissingCredential(t *testing.T) {
	var hits atomic.Int32
	server := fakeChatService(t, &hits, chatCompletion("unused", 10, 5, 15))

	p := provider.NewOpenAIChat("", "", provider.WithBaseURL(server.URL))
	out := &bytes.Buffer{}
	err := New(p, newsQuery(), out).FetchHeadlines(context.Background())
	if err == nil {
		t.Fatal("expected error for missing credential")
	}
	if !errors.Is(err, provider.ErrMissingCredential) {
		t.Errorf("err = %v, want ErrMissingCredential", err)
	}
	if hits.Load() != 0 {
		t.Errorf("service saw %d requests, want 0", hits.Load())
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

func TestFetchHeadlines_EmptyChoices(t *testing.T) {
	var hits atomic.Int32
	server := fakeChatService(t, &hits,
		`{"id":"x","object":"chat.completion","choices":[],"usage":{"prompt_tokens":10,"completion_tokens":0,"total_tokens":10}}`)

	p := provider.NewOpenAIChat("test-key", "", provider.WithBaseURL(server.URL))
	out := &bytes.Buffer{}
	err := New(p, newsQuery(), out).FetchHeadlines(context.Background())
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
	if provider.KindOf(err) != provider.KindResponse {
		t.Errorf("kind = %q, want %q", provider.KindOf(err), provider.KindResponse)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

func TestFetchHeadlines_TotalIsSum(t *testing.T) {
	tests := []struct{ prompt, completion int }{
		{10, 5},
		{0, 0},
		{1234, 567},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d+%d", tt.prompt, tt.completion), func(t *testing.T) {
			var hits atomic.Int32
			total := tt.prompt + tt.completion
			server := fakeChatService(t, &hits, chatCompletion("ok", tt.prompt, tt.completion, total))

			p := provider.NewOpenAIChat("test-key", "", provider.WithBaseURL(server.URL))
			out := &bytes.Buffer{}
			if err := New(p, newsQuery(), out).FetchHeadlines(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var gotPrompt, gotCompletion, gotTotal int
			for _, line := range strings.Split(out.String(), "\n") {
				fmt.Sscanf(line, "Prompt tokens: %d", &gotPrompt)
				fmt.Sscanf(line, "Completion tokens: %d", &gotCompletion)
				fmt.Sscanf(line, "Total tokens: %d", &gotTotal)
			}
			if gotTotal != gotPrompt+gotCompletion {
				t.Errorf("printed total %d != %d + %d", gotTotal, gotPrompt, gotCompletion)
			}
			if gotTotal != total {
				t.Errorf("printed total = %d, want %d", gotTotal, total)
			}
		})
	}
}

func TestFetchHeadlines_Deterministic(t *testing.T) {
	var hits atomic.Int32
	server := fakeChatService(t, &hits, chatCompletion("Resumo fixo.", 10, 5, 15))

	p := provider.NewOpenAIChat("test-key", "", provider.WithBaseURL(server.URL))
	var first, second bytes.Buffer
	if err := New(p, newsQuery(), &first).FetchHeadlines(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := New(p, newsQuery(), &second).FetchHeadlines(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("outputs differ:\n%q\n%q", first.String(), second.String())
	}
}

func TestFetchHeadlines_ProviderError(t *testing.T) {
	cause := &provider.Error{Kind: provider.KindService, Provider: "mock", StatusCode: 401, Message: "invalid key"}
	mp := &mockProvider{err: cause}
	out := &bytes.Buffer{}

	err := New(mp, newsQuery(), out).FetchHeadlines(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want the provider error wrapped", err)
	}
	if !strings.HasPrefix(err.Error(), "fetch headlines: ") {
		t.Errorf("err = %q", err.Error())
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

func TestFetchHeadlines_JSONFormatter(t *testing.T) {
	mp := &mockProvider{response: &provider.ChatResponse{
		Content: "ok",
		Usage:   provider.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}}
	out := &bytes.Buffer{}

	d := New(mp, newsQuery(), out, WithFormatter(report.NewFormatter(report.FormatJSON)))
	if err := d.FetchHeadlines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"total_tokens": 15`) {
		t.Errorf("output = %q", out.String())
	}
}

func TestFetchHeadlines_WarnsOnInconsistentUsage(t *testing.T) {
	mp := &mockProvider{response: &provider.ChatResponse{
		Content: "ok",
		Usage:   provider.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 16},
	}}
	core, logs := observer.New(zap.WarnLevel)
	out := &bytes.Buffer{}

	d := New(mp, newsQuery(), out, WithLogger(zap.New(core)))
	if err := d.FetchHeadlines(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.Len() != 1 {
		t.Fatalf("got %d warnings, want 1", logs.Len())
	}
	// Counters are printed as received.
	if !strings.Contains(out.String(), "Total tokens: 16\n") {
		t.Errorf("output = %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFetchHeadlines_WriteError(t *testing.T) {
	mp := &mockProvider{response: &provider.ChatResponse{Content: "ok"}}

	err := New(mp, newsQuery(), failingWriter{}).FetchHeadlines(context.Background())
	if err == nil || !strings.Contains(err.Error(), "write report") {
		t.Errorf("err = %v, want write report error", err)
	}
}

// Package dispatch sends the headline query to a provider and prints the
// answer with its token usage.
package dispatch

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rcliao/headlines/pkg/provider"
	"github.com/rcliao/headlines/pkg/report"
)

// Query is the fixed request a Dispatcher sends.
type Query struct {
	Prompt   string
	Model    string
	ToolTags []string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithFormatter sets the output layout. Defaults to text.
func WithFormatter(f report.Formatter) Option {
	return func(d *Dispatcher) { d.formatter = f }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// Dispatcher performs one request/response round trip per call.
type Dispatcher struct {
	provider  provider.Provider
	query     Query
	out       io.Writer
	formatter report.Formatter
	logger    *zap.Logger
}

// New creates a dispatcher that sends q through p and writes to out.
func New(p provider.Provider, q Query, out io.Writer, opts ...Option) *Dispatcher {
	q.ToolTags = append([]string(nil), q.ToolTags...)
	d := &Dispatcher{
		provider:  p,
		query:     q,
		out:       out,
		formatter: &report.TextFormatter{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FetchHeadlines sends the query, waits for the answer and writes it with
// the three usage counters. Nothing is written when the call fails.
func (d *Dispatcher) FetchHeadlines(ctx context.Context) error {
	req := provider.ChatRequest{
		Model:    d.query.Model,
		Messages: []provider.Message{{Role: "user", Content: d.query.Prompt}},
		ToolTags: append([]string(nil), d.query.ToolTags...),
	}

	d.logger.Debug("sending query",
		zap.String("provider", d.provider.Name()),
		zap.String("model", req.Model),
		zap.Strings("tools", req.ToolTags),
	)

	resp, err := d.provider.Chat(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch headlines: %w", err)
	}

	d.logger.Info("query answered",
		zap.Int("answer_chars", len(resp.Content)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
	)
	if !resp.Usage.Consistent() {
		d.logger.Warn("total tokens differ from prompt plus completion",
			zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
			zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
			zap.Int64("total_tokens", resp.Usage.TotalTokens),
		)
	}

	result := report.Result{Answer: resp.Content, Usage: resp.Usage}
	if err := d.formatter.FormatTo(d.out, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

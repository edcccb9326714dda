// Package report renders a dispatcher result for the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rcliao/headlines/pkg/provider"
)

// Format names an output layout.
type Format string

const (
	// FormatText is the labeled answer block followed by one counter per line.
	FormatText Format = "text"
	// FormatJSON is an indented JSON object.
	FormatJSON Format = "json"
)

// Result is what gets printed after a successful call.
type Result struct {
	Answer string         `json:"answer"`
	Usage  provider.Usage `json:"usage"`
}

// Formatter writes a Result.
type Formatter interface {
	FormatTo(w io.Writer, r Result) error
}

// TextFormatter prints the answer under a header line, then the counters.
type TextFormatter struct{}

// FormatTo writes r in text form.
func (f *TextFormatter) FormatTo(w io.Writer, r Result) error {
	_, err := fmt.Fprintf(w,
		"\n🔎 Resultado:\n%s\nPrompt tokens: %d\nCompletion tokens: %d\nTotal tokens: %d\n",
		r.Answer,
		r.Usage.PromptTokens,
		r.Usage.CompletionTokens,
		r.Usage.TotalTokens,
	)
	return err
}

// JSONFormatter prints the Result as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes r in JSON form.
func (f *JSONFormatter) FormatTo(w io.Writer, r Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(r)
}

// NewFormatter returns the formatter for format. Unknown formats fall back
// to text; config validation rejects them earlier.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{}
	}
}

// Valid reports whether s names a known format.
func Valid(s string) bool {
	switch Format(s) {
	case FormatText, FormatJSON:
		return true
	}
	return false
}

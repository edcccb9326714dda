package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rcliao/headlines/pkg/provider"
	"github.com/rcliao/headlines/pkg/report"
)

// ValidationError reports one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// Validate checks every field and returns all problems joined together.
// The credential is not checked here.
func Validate(cfg *Config) error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch cfg.API {
	case provider.APIChat, provider.APIResponses:
	default:
		add("api", "must be %q or %q, got %q", provider.APIChat, provider.APIResponses, cfg.API)
	}

	if strings.TrimSpace(cfg.Model) == "" {
		add("model", "must not be blank")
	}
	for i, tag := range cfg.Tools {
		if strings.TrimSpace(tag) == "" {
			add(fmt.Sprintf("tools[%d]", i), "must not be blank")
		}
	}
	if strings.TrimSpace(cfg.Prompt) == "" {
		add("prompt", "must not be blank")
	}
	if !report.Valid(cfg.Output) {
		add("output", "must be %q or %q, got %q", report.FormatText, report.FormatJSON, cfg.Output)
	}
	if cfg.Timeout < 0 {
		add("timeout", "must not be negative, got %s", cfg.Timeout)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		add("log.level", "must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		add("log.format", "must be console or json, got %q", cfg.Log.Format)
	}

	return errors.Join(errs...)
}

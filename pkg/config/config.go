// Package config loads headlines settings from flags, the environment, an
// optional dotenv file and an optional YAML file.
//
// Precedence, highest first: flags, environment, YAML file, defaults. The
// dotenv file only fills environment variables that are not already set.
package config

import (
	"time"
)

// DefaultPrompt asks for today's main Brazil news via live web search.
const DefaultPrompt = "Quais são as principais notícias do Brasil hoje? " +
	"(Realize uma busca na web e me traga os resultados mais recentes.)"

// NoTools is the tools value that disables every tool tag.
const NoTools = "none"

// Config is the full runtime configuration.
type Config struct {
	// APIKey authenticates outbound calls. It is not required here; the
	// dispatcher refuses to send without it.
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// API selects the back end: "chat" or "responses".
	API   string   `mapstructure:"api" yaml:"api"`
	Model string   `mapstructure:"model" yaml:"model"`
	Tools []string `mapstructure:"tools" yaml:"tools"`

	Prompt  string        `mapstructure:"prompt" yaml:"prompt"`
	Output  string        `mapstructure:"output" yaml:"output"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `mapstructure:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format" yaml:"format"`
}

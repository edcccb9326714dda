package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"api_key":    "OPENAI_API_KEY",
	"base_url":   "OPENAI_BASE_URL",
	"api":        "HEADLINES_API",
	"model":      "HEADLINES_MODEL",
	"tools":      "HEADLINES_TOOLS",
	"prompt":     "HEADLINES_PROMPT",
	"output":     "HEADLINES_OUTPUT",
	"timeout":    "HEADLINES_TIMEOUT",
	"log.level":  "HEADLINES_LOG_LEVEL",
	"log.format": "HEADLINES_LOG_FORMAT",
}

// flagBindings maps config keys to command-line flag names.
var flagBindings = map[string]string{
	"base_url":   "base-url",
	"api":        "api",
	"model":      "model",
	"tools":      "tool",
	"prompt":     "prompt",
	"output":     "output",
	"timeout":    "timeout",
	"log.level":  "log-level",
	"log.format": "log-format",
}

// Options says where Load looks besides the environment.
type Options struct {
	// ConfigFile is an optional YAML file.
	ConfigFile string
	// EnvFile is an optional dotenv file; a missing file is not an error.
	EnvFile string
	// Flags are bound by name; flags that were not set on the command line
	// do not override anything.
	Flags *pflag.FlagSet
}

// Load builds a validated Config.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := LoadEnvFile(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		for key, name := range flagBindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadEnvFile copies KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set keep their value.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	ev := viper.New()
	ev.SetConfigFile(path)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file %q: %w", path, err)
	}

	for _, key := range ev.AllKeys() {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if err := os.Setenv(name, ev.GetString(key)); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	return nil
}

package config

import (
	"github.com/spf13/viper"

	"github.com/rcliao/headlines/pkg/provider"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("api", provider.APIChat)
	v.SetDefault("prompt", DefaultPrompt)
	v.SetDefault("output", "text")
	v.SetDefault("timeout", "0s")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// ApplyDefaults fills the fields whose defaults depend on other fields.
// Model and tool tags follow the selected API.
func ApplyDefaults(cfg *Config) {
	if cfg.API == "" {
		cfg.API = provider.APIChat
	}
	if cfg.Model == "" {
		cfg.Model = provider.DefaultModel(cfg.API)
	}

	switch {
	case len(cfg.Tools) == 0:
		cfg.Tools = provider.DefaultToolTags(cfg.API)
	case len(cfg.Tools) == 1 && cfg.Tools[0] == NoTools:
		cfg.Tools = []string{}
	}

	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

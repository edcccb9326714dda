package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rcliao/headlines/pkg/config"
	"github.com/rcliao/headlines/pkg/dispatch"
	"github.com/rcliao/headlines/pkg/logging"
	"github.com/rcliao/headlines/pkg/provider"
	"github.com/rcliao/headlines/pkg/report"
)

// rootFlags holds flags that are not config keys.
type rootFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "headlines",
		Short: "Ask an LLM with web search for today's main Brazil news",
		Long: `headlines sends one prompt to an OpenAI-compatible API with a web search
tool enabled, then prints the answer and the prompt, completion and total
token counts.

The API key is read from OPENAI_API_KEY, which may also come from a .env file.
Model and tool tags vary between API revisions and are configurable.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML config file path")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded into the environment if present")

	f := cmd.Flags()
	f.String("api", "", "API back end: chat or responses (default chat)")
	f.String("model", "", "model identifier (default depends on --api)")
	f.StringSlice("tool", nil, "tool capability tag, repeatable; \"none\" sends no tools")
	f.String("prompt", "", "override the default prompt")
	f.String("base-url", "", "base URL of an OpenAI-compatible API")
	f.StringP("output", "o", "", "output format: text or json (default text)")
	f.Duration("timeout", 0, "per-request timeout, 0 keeps the client default")
	f.String("log-level", "", "log level: debug, info, warn, error (default warn)")
	f.String("log-format", "", "log format: console or json (default console)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runFetch(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load(config.Options{
		ConfigFile: flags.configFile,
		EnvFile:    flags.envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	p, err := provider.NewFromConfig(provider.Config{
		API:     cfg.API,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return err
	}

	d := dispatch.New(p,
		dispatch.Query{Prompt: cfg.Prompt, Model: cfg.Model, ToolTags: cfg.Tools},
		cmd.OutOrStdout(),
		dispatch.WithFormatter(report.NewFormatter(report.Format(cfg.Output))),
		dispatch.WithLogger(logger),
	)
	return d.FetchHeadlines(cmd.Context())
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

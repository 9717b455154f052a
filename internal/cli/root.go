// Package cli implements the neuralnet command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/born-ml/neuralnet/internal/config"
	"github.com/born-ml/neuralnet/internal/logger"
	"github.com/born-ml/neuralnet/internal/parallel"
	"github.com/born-ml/neuralnet/internal/tensor"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "v0.1.0-dev"

// Execute runs the root command and exits non-zero on failure.
// SIGINT and SIGTERM cancel a running training.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1) //nolint:gocritic // stop already called
	}
}

// app is the state shared by subcommands once flags are parsed.
type app struct {
	settings config.Settings
	log      zerolog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		envFile   string
		logLevel  string
		logFormat string
		a         = &app{log: zerolog.Nop()}
	)

	cmd := &cobra.Command{
		Use:          "neuralnet",
		Short:        "Train and run small feedforward neural networks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadSettings(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				settings.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				settings.LogFormat = logFormat
			}

			log, err := logger.Setup(logger.Config{
				Level:  settings.LogLevel,
				Format: settings.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			tensor.SetParallelConfig(parallel.WithWorkers(settings.Workers))

			a.settings = settings
			a.log = log
			log.Debug().
				Str("level", settings.LogLevel).
				Str("format", settings.LogFormat).
				Int64("seed", settings.Seed).
				Int("workers", tensor.ParallelConfig().NumWorkers).
				Msg("settings loaded")
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File with NEURALNET_* variables (ignored when missing)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: trace|debug|info|warn|error (overrides NEURALNET_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", logger.FormatConsole, "Log format: console|json (overrides NEURALNET_LOG_FORMAT)")

	cmd.AddCommand(
		trainCmd(a),
		predictCmd(a),
		evalCmd(),
		versionCmd(),
	)
	return cmd
}

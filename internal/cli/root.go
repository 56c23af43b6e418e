package cli

import (
	"context"

	"resumelens/internal/config"
	"resumelens/internal/errors"

	"github.com/spf13/cobra"
)

// Unexported key types keep context values private to this package.
type configKeyType struct{}
type loggerKeyType struct{}

var (
	configKey = configKeyType{}
	loggerKey = loggerKeyType{}
)

var rootCmd = &cobra.Command{
	Use:   "resumelens",
	Short: "A CLI tool for ATS keyword matching and bullet point coaching",
	Long: `Resumelens is a command-line tool that scores resumes against job
descriptions the way applicant tracking systems do, and coaches you toward
stronger bullet points by detecting weak phrasing and rebuilding it from
achievement-oriented templates. All analysis runs locally.`,
}

// Execute runs the CLI. Config and logger ride on the command context so
// every subcommand can reach them.
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context")
}

func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context")
}

func init() {
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(bulletCmd)
	rootCmd.AddCommand(statementCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}

package cli

import (
	"context"
	"fmt"

	"resumelens/internal/coach"
	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var bulletCmd = &cobra.Command{
	Use:   "bullet [bullet-file]",
	Short: "Analyze a resume bullet point for strength",
	Long: `Analyze a resume bullet point for strength and weak phrasing.
The command takes one argument: the path to a text file containing the
bullet point. Use --text to pass the bullet inline instead.

The analysis scores the bullet from 0 to 100 based on quantified metrics,
power verbs, outcomes, scope, and technology mentions, and flags weak
phrasing like "responsible for" or "worked on" with a template to rebuild it.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if bulletText == "" && len(args) == 0 {
			return fmt.Errorf("provide a bullet file argument or --text")
		}
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if bulletConfig.OutputFormat == "" {
			bulletConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(bulletConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runBullet,
}

var (
	bulletConfig common.CommandConfig
	bulletText   string
)

func init() {
	bulletCmd.Flags().StringVarP(&bulletConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	bulletCmd.Flags().StringVar(&bulletConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	bulletCmd.Flags().StringVarP(&bulletText, "text", "t", "", "Bullet point text (instead of a file argument)")

	// Add completion for format flag
	_ = bulletCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runBullet(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	service := coach.NewService(logger)
	opConfig := cfg.GetBulletConfig()

	createInput := func(contents []string) (types.AnalyzeBulletInput, error) {
		if bulletText != "" {
			return types.AnalyzeBulletInput{Text: bulletText}, nil
		}
		if len(contents) != 1 {
			return types.AnalyzeBulletInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.AnalyzeBulletInput{Text: contents[0]}, nil
	}

	logDetails := func(input types.AnalyzeBulletInput, cfg common.CommandConfig) {
		logger.Info("Starting bullet analysis",
			"bullet_chars", len(input.Text),
			"output_format", cfg.OutputFormat)
	}

	bulletOperation := func(ctx context.Context, input types.AnalyzeBulletInput) (types.AnalyzeBulletOutput, error) {
		ctx, cancel := context.WithTimeout(ctx, *opConfig.Timeout)
		defer cancel()
		return service.AnalyzeBullet(ctx, input)
	}

	err := common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		bulletConfig,
		args,
		createInput,
		bulletOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze bullet: %w", err)
	}
	logger.Info("Bullet analysis completed successfully")
	return nil
}

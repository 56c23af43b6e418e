package cli

import (
	"context"
	"fmt"

	"resumelens/internal/coach"
	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [job-description-file] [resume-file]",
	Short: "Score a resume against a job description",
	Long: `Score a resume against a job description the way an applicant tracking
system would. The command takes two arguments: the path to the job description
file and the path to your resume file. Both files should be in plain text format.

The report includes matched and missing keywords split into technical skills,
multi-word phrases, and general terms, plus prioritized suggestions.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	service := coach.NewService(logger)
	opConfig := cfg.GetMatchConfig()

	createInput := func(contents []string) (types.MatchResumeInput, error) {
		if len(contents) != 2 {
			return types.MatchResumeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.MatchResumeInput{
			JobDescription: contents[0],
			ResumeText:     contents[1],
		}, nil
	}

	logDetails := func(input types.MatchResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume match",
			"job_chars", len(input.JobDescription),
			"resume_chars", len(input.ResumeText),
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input types.MatchResumeInput) (types.MatchResumeOutput, error) {
		ctx, cancel := context.WithTimeout(ctx, *opConfig.Timeout)
		defer cancel()
		return service.MatchResume(ctx, input)
	}

	err := common.RunAnalysisCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Resume match completed successfully")
	return nil
}

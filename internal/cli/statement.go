package cli

import (
	"context"
	"fmt"
	"strings"

	"resumelens/internal/coach"
	"resumelens/internal/common"
	"resumelens/internal/types"

	"github.com/spf13/cobra"
)

var statementCmd = &cobra.Command{
	Use:   "statement [pattern-id]",
	Short: "Build a strengthened statement from a pattern template",
	Long: `Build a strengthened bullet point from one of the weak phrase pattern
templates. The command takes the pattern ID as its argument and field values
via repeated --set flags.

Example:
  resumelens statement managed_team --set teamSize=8 --set achievement="deliver the migration"

Unfilled required fields appear as bracketed placeholders in the output.
Run "resumelens patterns" to list available patterns and their fields.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if statementConfig.OutputFormat == "" {
			statementConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(statementConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runStatement,
}

var (
	statementConfig common.CommandConfig
	statementValues []string
)

func init() {
	statementCmd.Flags().StringVarP(&statementConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	statementCmd.Flags().StringVar(&statementConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	statementCmd.Flags().StringArrayVar(&statementValues, "set", nil, "Field value as name=value (repeatable)")
}

func runStatement(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	values := make(map[string]string, len(statementValues))
	for _, pair := range statementValues {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return fmt.Errorf("invalid --set value %q, expected name=value", pair)
		}
		values[name] = value
	}

	service := coach.NewService(logger)
	opConfig := cfg.GetStatementConfig()

	input := types.BuildStatementInput{
		PatternID: args[0],
		Values:    values,
	}

	logger.Info("Building statement",
		"pattern_id", input.PatternID,
		"field_count", len(values),
		"output_format", statementConfig.OutputFormat)

	ctx, cancel := context.WithTimeout(cmd.Context(), *opConfig.Timeout)
	defer cancel()

	result, err := service.BuildStatement(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to build statement: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(result, statementConfig)
}

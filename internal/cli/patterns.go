package cli

import (
	"resumelens/internal/coach"
	"resumelens/internal/common"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the weak phrase pattern library",
	Long: `List all weak phrase patterns with their rebuild templates, fields,
and before/after examples. Pattern IDs from this list are accepted by the
"statement" command.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if patternsConfig.OutputFormat == "" {
			patternsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(patternsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runPatterns,
}

var patternsConfig common.CommandConfig

func init() {
	patternsCmd.Flags().StringVarP(&patternsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	patternsCmd.Flags().StringVar(&patternsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
}

func runPatterns(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	service := coach.NewService(logger)
	result := service.ListPatterns()

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(result, patternsConfig)
}

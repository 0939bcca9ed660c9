package cli

import (
	"smartresume/internal/common"

	"github.com/spf13/cobra"
)

var analyzeConfig common.CommandConfig

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume snapshot's quality",
	Long: `Analyze a resume snapshot against its target role: what is strong, what
is missing, and a strength rating from 1 to 10. The resume snapshot is a
JSON file with a targetRole field set.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &analyzeConfig)
	},
	RunE: runAnalyze,
}

func init() {
	addOutputFlags(analyzeCmd, &analyzeConfig)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	g, logger, err := newGenerator(cmd.Context())
	if err != nil {
		return err
	}

	fileProcessor, err := newFileProcessor(cmd.Context())
	if err != nil {
		return err
	}
	data, err := fileProcessor.ReadResumeSnapshot(args[0])
	if err != nil {
		return err
	}

	logger.Info("Starting resume quality analysis", "target_role", data.TargetRole)

	result := g.AnalyzeQuality(cmd.Context(), data)
	return common.NewOutputHandler(logger).HandleOutput(result, analyzeConfig)
}

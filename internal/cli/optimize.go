package cli

import (
	"smartresume/internal/common"

	"github.com/spf13/cobra"
)

var optimizeConfig common.CommandConfig

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file]",
	Short: "Optimize a whole resume snapshot for its target role",
	Long: `Optimize every section of a resume snapshot in one pass: regenerate a
thin summary, turn experience descriptions into bullet points, improve
project descriptions, and suggest missing skills. Sections that fail are
reported individually; the rest of the resume is still optimized.

The resume snapshot is a JSON file with a targetRole field set.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &optimizeConfig)
	},
	RunE: runOptimize,
}

func init() {
	addOutputFlags(optimizeCmd, &optimizeConfig)
}

func runOptimize(cmd *cobra.Command, args []string) error {
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

	logger.Info("Starting resume optimization",
		"target_role", data.TargetRole,
		"experience_entries", len(data.Experience),
		"projects", len(data.Projects))

	result, err := g.OptimizeResume(cmd.Context(), data)
	if err != nil {
		return err
	}

	logger.Info("Resume optimization completed",
		"enhanced_experiences", len(result.Experience),
		"enhanced_projects", len(result.Projects),
		"suggested_skills", len(result.SuggestedSkills),
		"failed_sections", len(result.Failed))

	return common.NewOutputHandler(logger).HandleOutput(result, optimizeConfig)
}

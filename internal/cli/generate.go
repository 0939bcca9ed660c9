package cli

import (
	"context"
	"strings"

	"smartresume/internal/ai"
	"smartresume/internal/common"
	"smartresume/internal/errors"
	"smartresume/internal/generate"
	"smartresume/internal/types"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate individual resume sections with AI",
	Long: `Generate resume content section by section: a professional summary,
bullet points for a work experience, an improved project description,
skill suggestions for a target role, or a polished achievement statement.`,
}

// newGenerator builds the content generator from the ambient config.
func newGenerator(ctx context.Context) (*generate.Generator, *errors.Logger, error) {
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger, err := getLoggerFromContext(ctx)
	if err != nil {
		return nil, nil, err
	}
	client := ai.NewClient(&cfg.AI, logger)
	return generate.NewGenerator(client, logger), logger, nil
}

var summaryConfig common.CommandConfig
var summaryInput types.SummaryInput

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate a professional summary",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &summaryConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		g, logger, err := newGenerator(cmd.Context())
		if err != nil {
			return err
		}

		result := g.Summary(cmd.Context(), summaryInput)
		if result.Success {
			logger.Info("Summary generated", "target_role", summaryInput.TargetRole)
		}
		return common.NewOutputHandler(logger).HandleOutput(result, summaryConfig)
	},
}

var bulletsConfig common.CommandConfig
var bulletsInput types.BulletsInput

var bulletsCmd = &cobra.Command{
	Use:   "bullets",
	Short: "Generate bullet points for a work experience",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &bulletsConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		g, logger, err := newGenerator(cmd.Context())
		if err != nil {
			return err
		}

		result := g.ExperienceBullets(cmd.Context(), bulletsInput)
		if result.Success {
			logger.Info("Bullet points generated",
				"job_title", bulletsInput.JobTitle, "count", len(result.Items))
		}
		return common.NewOutputHandler(logger).HandleOutput(result, bulletsConfig)
	},
}

var projectConfig common.CommandConfig
var projectInput types.ProjectInput

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Improve a project description",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &projectConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		g, logger, err := newGenerator(cmd.Context())
		if err != nil {
			return err
		}

		result := g.EnhanceProject(cmd.Context(), projectInput)
		if result.Success {
			logger.Info("Project description enhanced", "title", projectInput.Title)
		}
		return common.NewOutputHandler(logger).HandleOutput(result, projectConfig)
	},
}

var skillsConfig common.CommandConfig
var skillsRole string
var skillsCurrent string

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Suggest skills for a target role",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &skillsConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		g, logger, err := newGenerator(cmd.Context())
		if err != nil {
			return err
		}

		input := types.SkillsInput{TargetRole: skillsRole}
		if skillsCurrent != "" {
			input.CurrentSkills = generate.SplitSkills(skillsCurrent)
		}

		result := g.SuggestSkills(cmd.Context(), input)
		if result.Success {
			logger.Info("Skills suggested", "target_role", skillsRole, "count", len(result.Items))
		}
		return common.NewOutputHandler(logger).HandleOutput(result, skillsConfig)
	},
}

var achievementConfig common.CommandConfig

var achievementCmd = &cobra.Command{
	Use:   "achievement [text]",
	Short: "Rewrite an achievement as one impactful statement",
	Args:  cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &achievementConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		g, logger, err := newGenerator(cmd.Context())
		if err != nil {
			return err
		}

		result := g.EnhanceAchievement(cmd.Context(), strings.Join(args, " "))
		return common.NewOutputHandler(logger).HandleOutput(result, achievementConfig)
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryInput.TargetRole, "role", "", "Target job role (required)")
	summaryCmd.Flags().StringVar(&summaryInput.Name, "name", "", "Candidate name")
	summaryCmd.Flags().IntVar(&summaryInput.ExperienceYears, "years", 0, "Years of experience")
	summaryCmd.Flags().StringVar(&summaryInput.KeySkills, "skills", "", "Key skills, comma separated")
	summaryCmd.Flags().StringVar(&summaryInput.Education, "education", "", "Education background")
	summaryCmd.Flags().StringVar(&summaryInput.ExistingSummary, "current", "", "Existing summary to improve on")
	addOutputFlags(summaryCmd, &summaryConfig)

	bulletsCmd.Flags().StringVar(&bulletsInput.JobTitle, "title", "", "Job title (required)")
	bulletsCmd.Flags().StringVar(&bulletsInput.Company, "company", "", "Company name")
	bulletsCmd.Flags().StringVar(&bulletsInput.Duration, "duration", "", "Employment duration")
	bulletsCmd.Flags().StringVar(&bulletsInput.Responsibilities, "responsibilities", "", "Responsibilities description (required)")
	addOutputFlags(bulletsCmd, &bulletsConfig)

	projectCmd.Flags().StringVar(&projectInput.Title, "title", "", "Project title (required)")
	projectCmd.Flags().StringVar(&projectInput.Duration, "duration", "", "Project duration")
	projectCmd.Flags().StringVar(&projectInput.Technologies, "technologies", "", "Technologies used")
	projectCmd.Flags().StringVar(&projectInput.Description, "description", "", "Current project description (required)")
	addOutputFlags(projectCmd, &projectConfig)

	skillsCmd.Flags().StringVar(&skillsRole, "role", "", "Target job role (required)")
	skillsCmd.Flags().StringVar(&skillsCurrent, "current", "", "Skills already on the resume, comma separated")
	addOutputFlags(skillsCmd, &skillsConfig)

	addOutputFlags(achievementCmd, &achievementConfig)

	generateCmd.AddCommand(summaryCmd)
	generateCmd.AddCommand(bulletsCmd)
	generateCmd.AddCommand(projectCmd)
	generateCmd.AddCommand(skillsCmd)
	generateCmd.AddCommand(achievementCmd)
}

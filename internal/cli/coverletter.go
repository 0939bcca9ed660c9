package cli

import (
	"fmt"

	"smartresume/internal/common"
	"smartresume/internal/types"

	"github.com/spf13/cobra"
)

var coverLetterConfig common.CommandConfig
var coverLetterInput types.CoverLetterInput
var coverLetterJobFile string
var coverLetterResumeFile string
var coverLetterResumeID uint
var coverLetterSave bool

var coverLetterCmd = &cobra.Command{
	Use:   "coverletter",
	Short: "Generate a tailored cover letter",
	Long: `Generate a cover letter for a specific job posting. Resume context is
optional: pass --resume-file for a snapshot on disk or --resume-id for a
saved resume, and a condensed view of the strongest entries is folded
into the letter. With --save the letter is stored in the database,
linked to the saved resume when one was used.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if coverLetterResumeFile != "" && coverLetterResumeID != 0 {
			return fmt.Errorf("--resume-file and --resume-id are mutually exclusive")
		}
		return resolveOutputFormat(cmd.Context(), &coverLetterConfig)
	},
	RunE: runCoverLetter,
}

func init() {
	coverLetterCmd.Flags().StringVar(&coverLetterInput.JobTitle, "job-title", "", "Job title to apply for (required)")
	coverLetterCmd.Flags().StringVar(&coverLetterInput.Company, "company", "", "Company name")
	coverLetterCmd.Flags().StringVar(&coverLetterJobFile, "job-description", "", "File containing the job description")
	coverLetterCmd.Flags().StringVar(&coverLetterInput.Notes, "notes", "", "Extra points to work into the letter")
	coverLetterCmd.Flags().StringVar(&coverLetterInput.Name, "name", "", "Candidate name")
	coverLetterCmd.Flags().StringVar(&coverLetterInput.Email, "email", "", "Candidate email")
	coverLetterCmd.Flags().StringVar(&coverLetterInput.Phone, "phone", "", "Candidate phone")
	coverLetterCmd.Flags().StringVar(&coverLetterResumeFile, "resume-file", "", "Resume snapshot file for candidate context")
	coverLetterCmd.Flags().UintVar(&coverLetterResumeID, "resume-id", 0, "Saved resume id for candidate context")
	coverLetterCmd.Flags().BoolVar(&coverLetterSave, "save", false, "Save the generated letter to the database")
	addOutputFlags(coverLetterCmd, &coverLetterConfig)
}

func runCoverLetter(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	g, logger, err := newGenerator(ctx)
	if err != nil {
		return err
	}

	fileProcessor, err := newFileProcessor(ctx)
	if err != nil {
		return err
	}
	input := coverLetterInput

	if coverLetterJobFile != "" {
		contents, err := fileProcessor.ValidateAndReadFiles(coverLetterJobFile)
		if err != nil {
			return err
		}
		input.JobDescription = contents[0]
	}

	// Resolve resume context, remembering the saved id for --save linking.
	var linkedResumeID *uint
	switch {
	case coverLetterResumeFile != "":
		data, err := fileProcessor.ReadResumeSnapshot(coverLetterResumeFile)
		if err != nil {
			return err
		}
		input.Resume = &data
	case coverLetterResumeID != 0:
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		rec, err := s.GetResume(coverLetterResumeID)
		closeStore(ctx, s)
		if err != nil {
			return err
		}
		input.Resume = &rec.Data
		linkedResumeID = &rec.ID
	}

	logger.Info("Starting cover letter generation",
		"job_title", input.JobTitle,
		"company", input.Company,
		"has_resume", input.Resume != nil)

	result := g.CoverLetter(ctx, input)

	if result.Success && coverLetterSave {
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		id, err := s.SaveCoverLetter(linkedResumeID, input.Company, input.JobTitle, result.Content, 0)
		closeStore(ctx, s)
		if err != nil {
			return err
		}
		logger.Info("Cover letter saved", "id", id)
	}

	return common.NewOutputHandler(logger).HandleOutput(result, coverLetterConfig)
}

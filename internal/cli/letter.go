package cli

import (
	"fmt"

	"smartresume/internal/common"
	"smartresume/internal/store"

	"github.com/spf13/cobra"
)

var letterCmd = &cobra.Command{
	Use:   "letter",
	Short: "Manage saved cover letters",
	Long: `List, show, and delete cover letters in the local database. Letters are
saved from the coverletter command's --save flag.`,
}

var letterListConfig common.CommandConfig
var letterListResumeID uint

var letterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cover letters, most recently updated first",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &letterListConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := getLoggerFromContext(ctx)
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(ctx, s)

		var letters []store.CoverLetter
		if letterListResumeID != 0 {
			letters, err = s.ListCoverLettersForResume(letterListResumeID)
		} else {
			letters, err = s.ListCoverLetters()
		}
		if err != nil {
			return err
		}
		return common.NewOutputHandler(logger).HandleOutput(letters, letterListConfig)
	},
}

var letterShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a saved cover letter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(ctx, s)

		letter, err := s.GetCoverLetter(id)
		if err != nil {
			return err
		}
		fmt.Println(letter.Content)
		return nil
	},
}

var letterDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved cover letter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(ctx, s)

		if err := s.DeleteCoverLetter(id); err != nil {
			return err
		}
		fmt.Printf("Deleted cover letter #%d\n", id)
		return nil
	},
}

func init() {
	letterListCmd.Flags().UintVar(&letterListResumeID, "resume-id", 0, "Only letters linked to this resume")
	addOutputFlags(letterListCmd, &letterListConfig)

	letterCmd.AddCommand(letterListCmd)
	letterCmd.AddCommand(letterShowCmd)
	letterCmd.AddCommand(letterDeleteCmd)
}

package cli

import (
	"fmt"
	"strconv"

	"smartresume/internal/common"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Manage saved resumes",
	Long: `Save, list, show, and delete resume snapshots in the local database.
Deleting a resume also deletes the cover letters linked to it.`,
}

func parseRecordID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: expected a positive integer", arg)
	}
	return uint(id), nil
}

var resumeSaveName string
var resumeSaveID uint

var resumeSaveCmd = &cobra.Command{
	Use:   "save [resume-file]",
	Short: "Save a resume snapshot to the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fileProcessor, err := newFileProcessor(ctx)
		if err != nil {
			return err
		}

		data, err := fileProcessor.ReadResumeSnapshot(args[0])
		if err != nil {
			return err
		}

		name := resumeSaveName
		if name == "" {
			name = data.Personal.Name
		}
		if name == "" {
			return fmt.Errorf("resume has no name: set personal.name in the snapshot or pass --name")
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(ctx, s)

		id, err := s.SaveResume(name, data.TargetRole, data, resumeSaveID)
		if err != nil {
			return err
		}
		fmt.Printf("Saved resume #%d (%s)\n", id, name)
		return nil
	},
}

var resumeListConfig common.CommandConfig

var resumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved resumes, most recently updated first",
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &resumeListConfig)
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

		summaries, err := s.ListResumes()
		if err != nil {
			return err
		}
		return common.NewOutputHandler(logger).HandleOutput(summaries, resumeListConfig)
	},
}

var resumeShowConfig common.CommandConfig

var resumeShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a saved resume",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveOutputFormat(cmd.Context(), &resumeShowConfig)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := getLoggerFromContext(ctx)
		if err != nil {
			return err
		}
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(ctx, s)

		rec, err := s.GetResume(id)
		if err != nil {
			return err
		}
		return common.NewOutputHandler(logger).HandleOutput(*rec, resumeShowConfig)
	},
}

var resumeDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved resume and its linked cover letters",
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

		if err := s.DeleteResume(id); err != nil {
			return err
		}
		fmt.Printf("Deleted resume #%d\n", id)
		return nil
	},
}

func init() {
	resumeSaveCmd.Flags().StringVar(&resumeSaveName, "name", "", "Display name (default: the snapshot's personal name)")
	resumeSaveCmd.Flags().UintVar(&resumeSaveID, "id", 0, "Existing resume id to update instead of inserting")
	addOutputFlags(resumeListCmd, &resumeListConfig)
	addOutputFlags(resumeShowCmd, &resumeShowConfig)

	resumeCmd.AddCommand(resumeSaveCmd)
	resumeCmd.AddCommand(resumeListCmd)
	resumeCmd.AddCommand(resumeShowCmd)
	resumeCmd.AddCommand(resumeDeleteCmd)
}

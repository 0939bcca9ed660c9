package cli

import (
	"fmt"

	"smartresume/internal/common"

	"github.com/spf13/cobra"
)

var exportOutputFile string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole database as JSON",
	Long: `Export every saved resume and cover letter as one JSON document, with
ids and timestamps preserved so the file can be imported back exactly.`,
	Args: cobra.NoArgs,
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

		data, err := s.ExportAll()
		if err != nil {
			return err
		}

		if exportOutputFile == "" {
			fmt.Println(string(data))
			return nil
		}
		return common.NewFileProcessor(logger).WriteFile(exportOutputFile, string(data))
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the database with an exported snapshot",
	Long: `Import a snapshot produced by the export command. Existing data is
replaced; a malformed file leaves the database untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger, err := getLoggerFromContext(ctx)
		if err != nil {
			return err
		}

		// No size cap here: the file is our own export and may be large.
		content, err := common.NewFileProcessor(logger).ReadFile(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(ctx, s)

		if err := s.ImportAll([]byte(content)); err != nil {
			return err
		}
		fmt.Println("Import completed")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutputFile, "output", "o", "", "Output file path (default: stdout)")
}

package cli

import (
	"context"
	"fmt"

	"smartresume/internal/common"
	"smartresume/internal/config"
	"smartresume/internal/errors"
	"smartresume/internal/store"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "smartresume",
	Short: "An AI toolkit for resumes and cover letters",
	Long: `SmartResume generates and improves resume content with AI: professional
summaries, experience bullet points, project descriptions, skill suggestions,
and tailored cover letters. Resumes and letters can be saved to a local
database and exported for backup.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg, nil
	}
	return nil, fmt.Errorf("config not found in context")
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) (*errors.Logger, error) {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger, nil
	}
	return nil, fmt.Errorf("logger not found in context")
}

// addOutputFlags wires the shared --output/--format flags into a command.
func addOutputFlags(cmd *cobra.Command, cc *common.CommandConfig) {
	cmd.Flags().StringVarP(&cc.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&cc.OutputFormat, "format", "", "Output format: json or text")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveError
		}
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveOutputFormat applies the configured default and validates the
// chosen format. Used from PreRunE on every output-producing command.
func resolveOutputFormat(ctx context.Context, cc *common.CommandConfig) error {
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return err
	}
	if cc.OutputFormat == "" {
		cc.OutputFormat = cfg.App.DefaultFormat
	}
	return common.ValidateOutputFormat(cc.OutputFormat, cfg.App.SupportedFormats)
}

// newFileProcessor builds a file processor honoring the configured
// input size cap.
func newFileProcessor(ctx context.Context) (*common.FileProcessor, error) {
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := getLoggerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return common.NewFileProcessor(logger).WithSizeLimit(cfg.App.MaxFileSize), nil
}

// openStore opens the configured database. The caller must Close it.
func openStore(ctx context.Context) (*store.Store, error) {
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := getLoggerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Storage.Path, logger)
}

// closeStore closes the store, logging instead of failing on error.
func closeStore(ctx context.Context, s *store.Store) {
	if err := s.Close(); err != nil {
		if logger, lerr := getLoggerFromContext(ctx); lerr == nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(coverLetterCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(letterCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

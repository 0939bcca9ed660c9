package cli

import (
	"fmt"

	"smartresume/internal/ai"

	"github.com/spf13/cobra"
)

var (
	// Version information - can be set during build with ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionDiagnostics bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information for smartresume. With --diagnostics, also
report the selected AI provider and circuit breaker state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("smartresume version %s\n", Version)
		fmt.Printf("Git commit: %s\n", GitCommit)
		fmt.Printf("Build date: %s\n", BuildDate)

		if !versionDiagnostics {
			return nil
		}

		cfg, err := getConfigFromContext(cmd.Context())
		if err != nil {
			return err
		}
		logger, err := getLoggerFromContext(cmd.Context())
		if err != nil {
			return err
		}

		client := ai.NewClient(&cfg.AI, logger)
		fmt.Printf("AI provider: %s\n", client.ProviderName())
		for key, value := range client.BreakerStats() {
			fmt.Printf("Circuit breaker %s: %v\n", key, value)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionDiagnostics, "diagnostics", false, "Include AI provider and circuit breaker state")
}

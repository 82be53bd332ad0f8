package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/logship/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a probe record and report the delivery outcome.",
	Long: `Check dispatches a single probe record to the configured endpoint and
waits for its delivery outcome. Normal shipping never surfaces delivery
results; this command exists so operators can verify connectivity,
authentication, and endpoint behavior before wiring logship into a pipeline.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		app.ExecuteCheckCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to register subcommands.
func init() {
	rootCmd.AddCommand(checkCmd)
}

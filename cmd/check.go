package cmd

import (
	"github.com/spf13/cobra"

	"preflight/internal/bootstrap"
)

// checkCmd runs only the reachability probe. Useful for verifying
// firewall and proxy changes without touching the host.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the vendor endpoints without changing anything",
	Long: `Probes every configured vendor endpoint once and prints a
reachability report. Exits non-zero if any endpoint is unreachable.

Unlike the full pipeline, check does not require root and performs no
writes.

Examples:
  preflight check
  preflight check --config ./preflight.yaml`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := bootstrap.New(cfg, assumeYes)
	return p.CheckNetwork(cmd.Context())
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package cmd

import (
	"errors"
	"os"

	"preflight/internal/bootstrap"
	"preflight/internal/config"
	"preflight/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution, including the
	// operator declining to continue past the storage warning.
	ExitCodeSuccess = 0
	// ExitCodeError indicates any fatal condition: missing privileges,
	// unreachable network, config write failure, install failure, or
	// address-discovery failure.
	ExitCodeError = 1
)

var (
	configPath string
	verbose    bool
	assumeYes  bool
)

// rootCmd represents the base command for the preflight application.
// Running it with no arguments executes the full host preparation
// pipeline.
var rootCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Prepare a host for installing the Kestrel platform",
	Long: `preflight verifies network reachability to the Kestrel vendor
endpoints, enforces the kernel parameter the embedded search engine
needs, installs Docker when absent, discovers the container bridge and
host addresses, and hands off to the Kestrel installer.

It must run as root and is safe to re-run: every step checks before it
changes anything.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	RunE:         runBootstrap,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "preflight version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the exit code based on the error. Every fatal
// condition maps to 1; declining the storage warning is a clean exit.
func getExitCode(err error) int {
	if err == nil || errors.Is(err, bootstrap.ErrDeclined) {
		return ExitCodeSuccess
	}
	return ExitCodeError
}

// initLogging configures the logger from the global flags.
func initLogging() {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)
}

// loadConfig loads and validates the effective configuration.
func loadConfig() (config.Config, error) {
	return config.LoadConfig(configPath)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := bootstrap.New(cfg, assumeYes)
	err = p.Run(cmd.Context())
	if errors.Is(err, bootstrap.ErrDeclined) {
		logging.Info("CLI", "Installation declined by operator, exiting")
		return nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is /etc/preflight.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "assume yes for the storage warning prompt")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/craftops/plugaudit/internal/ops"
	"github.com/craftops/plugaudit/pkg/buildinfo"
	"github.com/craftops/plugaudit/pkg/config"
	"github.com/craftops/plugaudit/pkg/exitcode"
	"github.com/craftops/plugaudit/pkg/logger"
)

// newRootCommand creates the root command with its persistent flags, version
// template, and grouped help output.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugaudit",
		Short: "Plugin inventory audits for Minecraft server fleets",
		Long: `Plugaudit cross-checks the plugin inventories of a Minecraft server fleet:
the deployment matrix, baseline config documents, plugin definition docs,
the config variance dump, and the platform categorization file.

Examples:
   plugaudit licenses    # Classify deployment matrix plugins as paid or free
   plugaudit baseline    # Reconcile the matrix against baseline configs
   plugaudit variance    # Summarize per-plugin config variance
   plugaudit servers     # Query registered server instances`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("plugaudit {{.Version}}\n")

	// Grouped help by command group (Audit -> Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Audit Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupAudit) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	return cmd
}

// rootCmd represents the base command when called without any subcommands.
// Subcommands attach themselves in their file's init.
var rootCmd = newRootCommand()

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

// loadConfig resolves runtime configuration for a command, exiting when the
// config file is invalid.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Configuration load failed", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}
	return cfg
}

// flagOverride returns the flag's value when the user set it explicitly,
// the configured fallback otherwise.
func flagOverride(flags *pflag.FlagSet, name, configured string) string {
	if flags.Changed(name) {
		v, _ := flags.GetString(name)
		return v
	}
	return configured
}

// exitLoadFailure terminates the run with the exit code matching a loader
// failure: absent inputs are filesystem errors, unreadable ones permission
// errors, and anything else a malformed document.
func exitLoadFailure(message string, err error) {
	logger.Error(message, logger.Err(err))
	switch {
	case errors.Is(err, os.ErrPermission):
		os.Exit(exitcode.PermissionError)
	case errors.Is(err, os.ErrNotExist):
		os.Exit(exitcode.FileSystemError)
	default:
		os.Exit(exitcode.UnsupportedFormat)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.InfoLevel
	}

	cfg := logger.Config{
		Level:     level,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "plugaudit",
	}

	if err := logger.Initialize(cfg); err != nil {
		// Fallback to stderr
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}

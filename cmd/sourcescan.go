/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftops/plugaudit/internal/ops"
	"github.com/craftops/plugaudit/internal/sourcescan"
)

// sourcescanCmd represents the sourcescan command
var sourcescanCmd = &cobra.Command{
	Use:   "sourcescan",
	Short: "Find hardcoded database references in tooling source",
	Long: `Walks a tooling source tree and flags lines that carry a configured
database name as a quoted literal or a quoted database-name assignment.
These references belong in configuration, not source.`,
	RunE: runSourcescan,
}

func init() {
	rootCmd.AddCommand(sourcescanCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupAudit, ops.CategorySource)
	if err := ops.RegisterCommandWithTaxonomy("sourcescan", ops.GroupAudit, ops.CategorySource, capabilities, sourcescanCmd, "Find hardcoded database references"); err != nil {
		panic(fmt.Sprintf("Failed to register sourcescan command: %v", err))
	}

	sourcescanCmd.Flags().String("source-dir", "", "Source tree to scan (overrides config)")
}

func runSourcescan(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	dir := flagOverride(cmd.Flags(), "source-dir", cfg.GetPathsConfig().SourceDir)

	audit := cfg.GetAuditConfig()
	names := audit.DatabaseNames
	if len(names) == 0 {
		// Nothing configured: hunt for the fleet database the servers
		// command connects to.
		names = []string{cfg.GetDatabaseConfig().Name}
	}
	result, err := sourcescan.New(names, audit.IgnoreGlobs).Scan(dir)
	if err != nil {
		exitLoadFailure("Source tree scan failed", err)
	}

	newRenderer(cmd, cfg).SourceScan(result)
	return nil
}

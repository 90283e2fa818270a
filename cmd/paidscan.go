/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftops/plugaudit/internal/inventory"
	"github.com/craftops/plugaudit/internal/ops"
)

// paidscanCmd represents the paidscan command
var paidscanCmd = &cobra.Command{
	Use:   "paidscan",
	Short: "Scan plugin definition docs for paid indicators",
	Long: `Scans every plugin definition document for paid indicators. Docs with a
metadata block are classified from their notes field; docs without one fall
back to the legacy fixed line window scan.`,
	RunE: runPaidscan,
}

func init() {
	rootCmd.AddCommand(paidscanCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupAudit, ops.CategoryClassification)
	if err := ops.RegisterCommandWithTaxonomy("paidscan", ops.GroupAudit, ops.CategoryClassification, capabilities, paidscanCmd, "Scan definition docs for paid indicators"); err != nil {
		panic(fmt.Sprintf("Failed to register paidscan command: %v", err))
	}

	paidscanCmd.Flags().String("docs-dir", "", "Plugin definition directory (overrides config)")
}

func runPaidscan(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	dir := flagOverride(cmd.Flags(), "docs-dir", cfg.GetPathsConfig().DefinitionsDir)

	defs, skips, err := inventory.LoadDefinitions(dir, newClassifier(cfg))
	if err != nil {
		exitLoadFailure("Definition doc scan failed", err)
	}

	newRenderer(cmd, cfg).PaidScan(defs, skips)
	return nil
}

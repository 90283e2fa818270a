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

// varianceCmd represents the variance command
var varianceCmd = &cobra.Command{
	Use:   "variance",
	Short: "Summarize per-plugin config variance across servers",
	Long: `Reads the config variance dump and prints, per plugin, how many config
keys differ across the servers it is deployed on, with per-key detail capped
to the first few keys.`,
	RunE: runVariance,
}

func init() {
	rootCmd.AddCommand(varianceCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupAudit, ops.CategoryAggregation)
	if err := ops.RegisterCommandWithTaxonomy("variance", ops.GroupAudit, ops.CategoryAggregation, capabilities, varianceCmd, "Summarize per-plugin config variance"); err != nil {
		panic(fmt.Sprintf("Failed to register variance command: %v", err))
	}

	varianceCmd.Flags().String("variance-file", "", "Config variance JSON path (overrides config)")
}

func runVariance(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	path := flagOverride(cmd.Flags(), "variance-file", cfg.GetPathsConfig().VarianceFile)

	records, skips, err := inventory.LoadVariance(path)
	if err != nil {
		exitLoadFailure("Variance dump load failed", err)
	}

	newRenderer(cmd, cfg).Variance(records, skips)
	return nil
}

/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftops/plugaudit/internal/inventory"
	"github.com/craftops/plugaudit/internal/ops"
	"github.com/craftops/plugaudit/internal/reconcile"
)

// baselineCmd represents the baseline command
var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Reconcile the deployment matrix against baseline configs",
	Long: `Cross-checks the plugins listed in the deployment matrix against the
baseline config documents on disk. Reports plugins missing a baseline,
baselines for plugins no longer in the matrix, and the overlap between
the two inventories.`,
	RunE: runBaseline,
}

func init() {
	rootCmd.AddCommand(baselineCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupAudit, ops.CategoryReconciliation)
	if err := ops.RegisterCommandWithTaxonomy("baseline", ops.GroupAudit, ops.CategoryReconciliation, capabilities, baselineCmd, "Reconcile matrix against baseline configs"); err != nil {
		panic(fmt.Sprintf("Failed to register baseline command: %v", err))
	}

	baselineCmd.Flags().String("matrix", "", "Deployment matrix CSV path (overrides config)")
	baselineCmd.Flags().String("baseline-dir", "", "Baseline config directory (overrides config)")
}

func runBaseline(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	paths := cfg.GetPathsConfig()
	paths.DeploymentMatrix = flagOverride(cmd.Flags(), "matrix", paths.DeploymentMatrix)
	paths.BaselineDir = flagOverride(cmd.Flags(), "baseline-dir", paths.BaselineDir)

	sheet, err := inventory.LoadSheet(paths.DeploymentMatrix, matrixSheetConfig(cfg), newClassifier(cfg))
	if err != nil {
		exitLoadFailure("Deployment matrix load failed", err)
	}

	baselines, baselineSkips, err := inventory.LoadBaselines(paths.BaselineDir)
	if err != nil {
		exitLoadFailure("Baseline config scan failed", err)
	}

	matrix := reconcile.NewCollection("deployment matrix", sheet.Names())
	configs := reconcile.NewCollection("baseline configs", baselines)
	result := reconcile.Reconcile(matrix, configs)

	skips := append(sheet.Skips, baselineSkips...)
	newRenderer(cmd, cfg).Baseline(matrix, result, skips)
	return nil
}

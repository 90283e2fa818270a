/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craftops/plugaudit/internal/inventory"
	"github.com/craftops/plugaudit/internal/ops"
	"github.com/craftops/plugaudit/internal/report"
	"github.com/craftops/plugaudit/pkg/config"
)

// licensesCmd represents the licenses command
var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "Classify deployment matrix plugins as paid or free",
	Long: `Reads the fleet's deployment matrix CSV and classifies every plugin as
paid or free from its source column: a leading "$" or any configured paid
phrase marks a plugin paid, everything else is free.`,
	RunE: runLicenses,
}

func init() {
	rootCmd.AddCommand(licensesCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupAudit, ops.CategoryClassification)
	if err := ops.RegisterCommandWithTaxonomy("licenses", ops.GroupAudit, ops.CategoryClassification, capabilities, licensesCmd, "Classify matrix plugins as paid or free"); err != nil {
		panic(fmt.Sprintf("Failed to register licenses command: %v", err))
	}

	licensesCmd.Flags().String("matrix", "", "Deployment matrix CSV path (overrides config)")
}

// matrixSheetConfig maps the configured matrix layout onto the loader.
func matrixSheetConfig(cfg *config.Config) inventory.SheetConfig {
	m := cfg.GetMatrixConfig()
	return inventory.SheetConfig{
		HeaderRows:   m.HeaderRows,
		NameColumn:   m.NameColumn,
		SourceColumn: m.SourceColumn,
	}
}

// newClassifier builds the paid/free classifier from configured phrase lists.
func newClassifier(cfg *config.Config) inventory.Classifier {
	a := cfg.GetAuditConfig()
	return inventory.NewClassifier(a.PaidPhrases, a.FreePhrases)
}

// newRenderer builds the report renderer writing to the command's output.
func newRenderer(cmd *cobra.Command, cfg *config.Config) *report.Renderer {
	return report.NewRenderer(cmd.OutOrStdout(), cfg.GetAuditConfig().MaxDetailKeys)
}

func runLicenses(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	path := flagOverride(cmd.Flags(), "matrix", cfg.GetPathsConfig().DeploymentMatrix)

	sheet, err := inventory.LoadSheet(path, matrixSheetConfig(cfg), newClassifier(cfg))
	if err != nil {
		exitLoadFailure("Deployment matrix load failed", err)
	}

	newRenderer(cmd, cfg).Licenses(sheet)
	return nil
}

/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/craftops/plugaudit/internal/inventory"
	"github.com/craftops/plugaudit/internal/ops"
	"github.com/craftops/plugaudit/pkg/exitcode"
)

// platformsCmd represents the platforms command
var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Validate the platform categorization file",
	Long: `Validates the platform categorization file: every required platform key
must be present (matched byte for byte), every platform must map to a list
of plugin names, and no platform may list a plugin twice. Plugins appearing
on several platforms are reported but do not fail validation.`,
	RunE: runPlatforms,
}

func init() {
	rootCmd.AddCommand(platformsCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupAudit, ops.CategoryValidation)
	if err := ops.RegisterCommandWithTaxonomy("platforms", ops.GroupAudit, ops.CategoryValidation, capabilities, platformsCmd, "Validate platform categorization file"); err != nil {
		panic(fmt.Sprintf("Failed to register platforms command: %v", err))
	}

	platformsCmd.Flags().String("platforms-file", "", "Platform categorization JSON path (overrides config)")
}

func runPlatforms(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	path := flagOverride(cmd.Flags(), "platforms-file", cfg.GetPathsConfig().PlatformsFile)

	rep, err := inventory.LoadPlatforms(path, cfg.GetAuditConfig().PlatformKeys)
	if err != nil {
		exitLoadFailure("Platform categorization load failed", err)
	}

	newRenderer(cmd, cfg).Platforms(rep)
	if !rep.Valid() {
		os.Exit(exitcode.AuditError)
	}
	return nil
}

/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/craftops/plugaudit/internal/ops"
	"github.com/craftops/plugaudit/pkg/ascii"
	"github.com/craftops/plugaudit/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show plugaudit version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupSupport, ops.CategoryInformation)
	if err := ops.RegisterCommandWithTaxonomy("version", ops.GroupSupport, ops.CategoryInformation, capabilities, versionCmd, "Show version information"); err != nil {
		panic(fmt.Sprintf("Failed to register version command: %v", err))
	}

	versionCmd.Flags().Bool("extended", false, "Show detailed build information")
	versionCmd.Flags().Bool("json", false, "Output version information in JSON format")
	versionCmd.Flags().Bool("banner", false, "Frame the version in a banner box")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	banner, _ := cmd.Flags().GetBool("banner")

	out := cmd.OutOrStdout()
	version := buildinfo.BinaryVersion

	if jsonOutput {
		info := map[string]interface{}{
			"version":   version,
			"goVersion": runtime.Version(),
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
		}
		if buildinfo.GitCommit != "" {
			info["gitCommit"] = buildinfo.GitCommit
		}
		if buildinfo.BuildDate != "" {
			info["buildDate"] = buildinfo.BuildDate
		}
		if mv := buildinfo.ModuleVersion(); mv != "" {
			info["moduleVersion"] = mv
		}
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal version info: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if banner {
		lines := []string{"plugaudit " + version}
		if extended {
			lines = append(lines,
				fmt.Sprintf("go %s on %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH))
		}
		fmt.Fprint(out, ascii.Box(lines))
		return nil
	}

	fmt.Fprintf(out, "plugaudit %s\n", version)
	if extended {
		fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		if buildinfo.GitCommit != "" {
			fmt.Fprintf(out, "  commit:     %s\n", buildinfo.GitCommit)
		}
		if buildinfo.BuildDate != "" {
			fmt.Fprintf(out, "  built:      %s\n", buildinfo.BuildDate)
		}
	}
	return nil
}

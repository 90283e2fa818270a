/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/craftops/plugaudit/internal/fleetdb"
	"github.com/craftops/plugaudit/internal/ops"
	"github.com/craftops/plugaudit/pkg/exitcode"
	"github.com/craftops/plugaudit/pkg/logger"
)

// serversCmd represents the servers command
var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Query registered server instances from the fleet database",
	Long: `Connects to the fleet database and reports the registered server
instances: total count, per-server counts, and the full instance listing.
The connection is opened for this run only and closed on completion.`,
	RunE: runServers,
}

func init() {
	rootCmd.AddCommand(serversCmd)

	capabilities := ops.GetDefaultCapabilities(ops.GroupAudit, ops.CategoryDatabase)
	if err := ops.RegisterCommandWithTaxonomy("servers", ops.GroupAudit, ops.CategoryDatabase, capabilities, serversCmd, "Query registered server instances"); err != nil {
		panic(fmt.Sprintf("Failed to register servers command: %v", err))
	}

	serversCmd.Flags().String("database", "", "Database name (overrides config)")
}

func runServers(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	dbCfg := cfg.GetDatabaseConfig()
	dbCfg.Name = flagOverride(cmd.Flags(), "database", dbCfg.Name)

	ctx := cmd.Context()
	store, err := fleetdb.Open(ctx, dbCfg)
	if err != nil {
		logger.Error("Fleet database connection failed", logger.Err(err))
		os.Exit(exitcode.DatabaseError)
	}
	defer func() { _ = store.Close() }()

	summary, err := store.Snapshot(ctx)
	if err != nil {
		logger.Error("Fleet database query failed", logger.Err(err))
		os.Exit(exitcode.DatabaseError)
	}

	newRenderer(cmd, cfg).Servers(summary)
	return nil
}

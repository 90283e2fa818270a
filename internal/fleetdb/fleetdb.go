/*
Copyright © 2026 CraftOps <ops@craftops.dev>
*/

// Package fleetdb queries the fleet's server instance registry over MySQL.
// Connections are short-lived: a command opens one, pings it, runs its
// queries, and closes it. There is no pooling, retry, or transaction scope;
// an unreachable database is fatal to the run.
package fleetdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/craftops/plugaudit/pkg/config"
)

// Instance is one row of the server_instances table.
type Instance struct {
	ID     int64
	Name   string
	Server string
	Port   int
}

// ServerCount is the number of instances registered for one server.
type ServerCount struct {
	Server    string
	Instances int
}

// Summary is the instance inventory snapshot rendered by reports.
type Summary struct {
	Total     int
	PerServer []ServerCount
	Instances []Instance
}

// Store is a read-only handle on the fleet database.
type Store struct {
	db *sql.DB
}

// Open connects to the fleet database and verifies the connection with a
// ping. Callers must Close the store when done.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	dsn := DSN(cfg)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open fleet database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to fleet database at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Store{db: db}, nil
}

// DSN renders the driver connection string for the configured database.
func DSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	return mc.FormatDSN()
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CountInstances returns the total number of registered server instances.
func (s *Store) CountInstances(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM server_instances`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count server instances: %w", err)
	}
	return total, nil
}

// CountByServer returns per-server instance counts ordered by server name.
func (s *Store) CountByServer(ctx context.Context) ([]ServerCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT server_name, COUNT(*)
		FROM server_instances
		GROUP BY server_name
		ORDER BY server_name
	`)
	if err != nil {
		return nil, fmt.Errorf("count instances by server: %w", err)
	}
	defer rows.Close()

	var counts []ServerCount
	for rows.Next() {
		var c ServerCount
		if err := rows.Scan(&c.Server, &c.Instances); err != nil {
			return nil, fmt.Errorf("scan server count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ListInstances returns every registered instance ordered by server name
// then instance name.
func (s *Store) ListInstances(ctx context.Context) ([]Instance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_id, instance_name, server_name, port
		FROM server_instances
		ORDER BY server_name, instance_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list server instances: %w", err)
	}
	defer rows.Close()

	var instances []Instance
	for rows.Next() {
		var inst Instance
		if err := rows.Scan(&inst.ID, &inst.Name, &inst.Server, &inst.Port); err != nil {
			return nil, fmt.Errorf("scan server instance: %w", err)
		}
		instances = append(instances, inst)
	}
	return instances, rows.Err()
}

// Snapshot runs every inventory query over the open connection.
func (s *Store) Snapshot(ctx context.Context) (*Summary, error) {
	total, err := s.CountInstances(ctx)
	if err != nil {
		return nil, err
	}
	perServer, err := s.CountByServer(ctx)
	if err != nil {
		return nil, err
	}
	instances, err := s.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{Total: total, PerServer: perServer, Instances: instances}, nil
}

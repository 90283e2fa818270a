package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for plugaudit
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Matrix   MatrixConfig   `mapstructure:"matrix"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

// DatabaseConfig holds fleet database connection settings. Values come from
// the config file or PLUGAUDIT_DATABASE_* environment variables, never from
// source literals.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// PathsConfig holds the input locations every audit reads from
type PathsConfig struct {
	DeploymentMatrix string `mapstructure:"deployment_matrix"`
	BaselineDir      string `mapstructure:"baseline_dir"`
	DefinitionsDir   string `mapstructure:"definitions_dir"`
	VarianceFile     string `mapstructure:"variance_file"`
	PlatformsFile    string `mapstructure:"platforms_file"`
	SourceDir        string `mapstructure:"source_dir"`
}

// MatrixConfig describes the shape of the deployment matrix CSV export
type MatrixConfig struct {
	HeaderRows   int `mapstructure:"header_rows"`
	NameColumn   int `mapstructure:"name_column"`
	SourceColumn int `mapstructure:"source_column"`
}

// AuditConfig holds classification vocabulary and report tuning
type AuditConfig struct {
	PaidPhrases   []string `mapstructure:"paid_phrases"`
	FreePhrases   []string `mapstructure:"free_phrases"`
	PlatformKeys  []string `mapstructure:"platform_keys"`
	MaxDetailKeys int      `mapstructure:"max_detail_keys"`
	DatabaseNames []string `mapstructure:"database_names"`
	IgnoreGlobs   []string `mapstructure:"ignore_globs"`
}

var defaultConfig = Config{
	Database: DatabaseConfig{
		Host: "127.0.0.1",
		Port: 3306,
		User: "plugaudit",
		Name: "minecraft_fleet",
	},
	Paths: PathsConfig{
		DeploymentMatrix: "inventory/deployment_matrix.csv",
		BaselineDir:      "inventory/baseline_configs",
		DefinitionsDir:   "inventory/plugin_docs",
		VarianceFile:     "inventory/config_variance.json",
		PlatformsFile:    "inventory/platform_categories.json",
		SourceDir:        "config_manager",
	},
	Matrix: MatrixConfig{
		HeaderRows:   2,
		NameColumn:   1,
		SourceColumn: 9,
	},
	Audit: AuditConfig{
		PaidPhrases:   []string{"spigot", "polymart", "builtbybit", "paid", "premium"},
		FreePhrases:   []string{"not paid", "free plugin"},
		PlatformKeys:  []string{"paper", "spigot", "velocity"},
		MaxDetailKeys: 10,
		DatabaseNames: []string{},
		IgnoreGlobs:   []string{},
	},
}

// LoadConfig loads configuration from various sources
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Database defaults
	v.SetDefault("database.host", defaultConfig.Database.Host)
	v.SetDefault("database.port", defaultConfig.Database.Port)
	v.SetDefault("database.user", defaultConfig.Database.User)
	v.SetDefault("database.password", defaultConfig.Database.Password)
	v.SetDefault("database.name", defaultConfig.Database.Name)

	// Input path defaults
	v.SetDefault("paths.deployment_matrix", defaultConfig.Paths.DeploymentMatrix)
	v.SetDefault("paths.baseline_dir", defaultConfig.Paths.BaselineDir)
	v.SetDefault("paths.definitions_dir", defaultConfig.Paths.DefinitionsDir)
	v.SetDefault("paths.variance_file", defaultConfig.Paths.VarianceFile)
	v.SetDefault("paths.platforms_file", defaultConfig.Paths.PlatformsFile)
	v.SetDefault("paths.source_dir", defaultConfig.Paths.SourceDir)

	// Matrix shape defaults
	v.SetDefault("matrix.header_rows", defaultConfig.Matrix.HeaderRows)
	v.SetDefault("matrix.name_column", defaultConfig.Matrix.NameColumn)
	v.SetDefault("matrix.source_column", defaultConfig.Matrix.SourceColumn)

	// Audit defaults
	v.SetDefault("audit.paid_phrases", defaultConfig.Audit.PaidPhrases)
	v.SetDefault("audit.free_phrases", defaultConfig.Audit.FreePhrases)
	v.SetDefault("audit.platform_keys", defaultConfig.Audit.PlatformKeys)
	v.SetDefault("audit.max_detail_keys", defaultConfig.Audit.MaxDetailKeys)
	v.SetDefault("audit.database_names", defaultConfig.Audit.DatabaseNames)
	v.SetDefault("audit.ignore_globs", defaultConfig.Audit.IgnoreGlobs)

	// Configuration file search paths
	v.SetConfigName("plugaudit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	// Add plugaudit home directory if available
	if configDir, err := GetConfigDir(); err == nil {
		v.AddConfigPath(configDir)
	}

	// Environment variables
	v.SetEnvPrefix("PLUGAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when none is found. A file that
	// does load must pass the embedded schema before unmarshal.
	if err := v.ReadInConfig(); err == nil {
		used := v.ConfigFileUsed()
		if data, rerr := os.ReadFile(used); rerr == nil {
			if verr := ValidateConfig(data, CurrentSchemaVersion); verr != nil {
				return nil, fmt.Errorf("config file %s: %w", used, verr)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// GetDatabaseConfig returns fleet database configuration
func (c *Config) GetDatabaseConfig() DatabaseConfig { return c.Database }

// GetPathsConfig returns input path configuration
func (c *Config) GetPathsConfig() PathsConfig { return c.Paths }

// GetMatrixConfig returns deployment matrix shape configuration
func (c *Config) GetMatrixConfig() MatrixConfig { return c.Matrix }

// GetAuditConfig returns audit vocabulary and tuning configuration
func (c *Config) GetAuditConfig() AuditConfig { return c.Audit }

// GetPlugauditHome returns the plugaudit home directory
func GetPlugauditHome() (string, error) {
	// Check environment variable first
	if home := os.Getenv("PLUGAUDIT_HOME"); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %v", err)
	}

	return filepath.Join(homeDir, ".plugaudit"), nil
}

// EnsurePlugauditHome creates the plugaudit home directory if it doesn't exist
func EnsurePlugauditHome() (string, error) {
	homeDir, err := GetPlugauditHome()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(homeDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create plugaudit home directory: %v", err)
	}

	return homeDir, nil
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	homeDir, err := EnsurePlugauditHome()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, "config")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %v", err)
	}
	return configDir, nil
}

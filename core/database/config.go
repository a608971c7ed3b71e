package database

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DriverSQLite selects the file-backed sqlite3 store.
	DriverSQLite = "sqlite3"
	// DriverPostgres selects a PostgreSQL server.
	DriverPostgres = "postgres"
)

// Config holds database connection settings. Driver selects between a
// file-backed sqlite3 store (Path) and PostgreSQL (Host/Port/...).
type Config struct {
	Driver         string `yaml:"driver" envconfig:"DB_DRIVER"`
	Path           string `yaml:"path" envconfig:"DB_PATH"`
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Normalize validates the driver choice and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil database config")
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "sqlite" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.Path) == "" {
			cfg.Path = "users.db"
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.Host) == "" {
			return fmt.Errorf("database.host is required when database.driver is 'postgres'")
		}
		if strings.TrimSpace(cfg.Name) == "" {
			return fmt.Errorf("database.name is required when database.driver is 'postgres'")
		}
		if strings.TrimSpace(cfg.Port) == "" {
			cfg.Port = "5432"
		}
		if strings.TrimSpace(cfg.SSLMode) == "" {
			cfg.SSLMode = "disable"
		}
	default:
		return fmt.Errorf("invalid database.driver %q; allowed: sqlite3, postgres", cfg.Driver)
	}
	cfg.Driver = driver
	if cfg.MaxConnections <= 0 {
		cfg.MaxConnections = 4
	}
	return nil
}

// DSN returns the driver-specific data source name.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// MigrateURL returns the database URL understood by golang-migrate.
func (c Config) MigrateURL() string {
	if c.Driver == DriverSQLite {
		return "sqlite3://" + c.Path
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.Name, c.SSLMode,
	)
}

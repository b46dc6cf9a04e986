// Package config loads service settings from environment variables and an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

const (
	DefaultPort       = "8080"
	DefaultLogLevel   = "info"
	DefaultDriver     = "postgres"
	DefaultSQLitePath = "ecommerce.db"
	DefaultMySQLPort  = "3306"
	DefaultSSLMode    = "disable"
	DefaultFetchSize  = 100
)

// Config holds the settings of the API service
type Config struct {
	Port     string   `mapstructure:"port"`
	LogLevel string   `mapstructure:"log_level"`
	Database Database `mapstructure:"database"`
}

// Database selects the database driver and holds the connection settings of each driver
type Database struct {
	Driver    string   `mapstructure:"driver"`
	Postgres  Postgres `mapstructure:"postgres"`
	MySQL     MySQL    `mapstructure:"mysql"`
	SQLite    SQLite   `mapstructure:"sqlite"`
	FetchSize int      `mapstructure:"fetch_size"`
}

type Postgres struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	DB       string `mapstructure:"db"`
	SSL      string `mapstructure:"ssl"`
}

type MySQL struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	DB       string `mapstructure:"db"`
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

// environment variables bound to each key
var envBindings = map[string]string{
	"port":                       "PORT",
	"log_level":                  "LOG_LEVEL",
	"database.driver":            "DB_DRIVER",
	"database.fetch_size":        "DB_FETCH_SIZE",
	"database.postgres.user":     "POSTGRES_USER",
	"database.postgres.password": "POSTGRES_PASSWORD",
	"database.postgres.host":     "POSTGRES_HOST",
	"database.postgres.db":       "POSTGRES_DB",
	"database.postgres.ssl":      "POSTGRES_SSL",
	"database.mysql.user":        "MYSQL_USER",
	"database.mysql.password":    "MYSQL_PASSWORD",
	"database.mysql.host":        "MYSQL_HOST",
	"database.mysql.port":        "MYSQL_PORT",
	"database.mysql.db":          "MYSQL_DB",
	"database.sqlite.path":       "SQLITE_PATH",
}

// Load reads the configuration. Environment variables override values from the file at path,
// which may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("database.driver", DefaultDriver)
	v.SetDefault("database.fetch_size", DefaultFetchSize)
	v.SetDefault("database.postgres.ssl", DefaultSSLMode)
	v.SetDefault("database.mysql.port", DefaultMySQLPort)
	v.SetDefault("database.sqlite.path", DefaultSQLitePath)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// DSN returns the connection string of the selected driver
func (d *Database) DSN() (string, error) {
	switch d.Driver {
	case "postgres":
		return d.Postgres.DSN(), nil
	case "mysql":
		return d.MySQL.DSN(), nil
	case "sqlite":
		return d.SQLite.Path, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q, must be one of: postgres, mysql, sqlite", d.Driver)
	}
}

// DSN returns a postgres connection URL
func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.DB,
		p.SSL,
	)
}

// DSN returns a go-sql-driver connection string. Times are parsed into time.Time in UTC.
func (m MySQL) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = m.User
	cfg.Passwd = m.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(m.Host, m.Port)
	cfg.DBName = m.DB
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	return cfg.FormatDSN()
}

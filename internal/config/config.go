package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // report.timezone must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/simaogato/fipify-backend/internal/adapter/fipe"
	"github.com/simaogato/fipify-backend/internal/logging"
)

// Database drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

const defaultAPIToken = "dev-token"

// Config holds all application configuration
type Config struct {
	GRPC struct {
		Addr     string `yaml:"addr"`
		APIToken string `yaml:"api_token"`
	} `yaml:"grpc"`
	HTTP struct {
		Addr            string        `yaml:"addr"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"http"`
	FIPE struct {
		BaseURL           string        `yaml:"base_url"`
		VehicleType       string        `yaml:"vehicle_type"`
		RequestsPerSecond float64       `yaml:"requests_per_second"`
		Burst             int           `yaml:"burst"`
		Timeout           time.Duration `yaml:"timeout"`
	} `yaml:"fipe"`
	Database struct {
		Driver  string `yaml:"driver"`
		ConnStr string `yaml:"conn_str"`
	} `yaml:"database"`
	Log    logging.LogConfig `yaml:"log"`
	Report struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"report"`
}

// Load reads .env (if present), then the YAML file at path (if present),
// then applies environment variable overrides and defaults
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.GRPC.Addr, "GRPC_ADDR")
	setString(&c.GRPC.APIToken, "API_TOKEN")
	setString(&c.HTTP.Addr, "HTTP_ADDR")
	setString(&c.FIPE.BaseURL, "FIPE_BASE_URL")
	setString(&c.FIPE.VehicleType, "FIPE_VEHICLE_TYPE")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Report.Timezone, "REPORT_TIMEZONE")

	if v := os.Getenv("FIPE_REQUESTS_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("FIPE_REQUESTS_PER_SECOND: %w", err)
		}
		c.FIPE.RequestsPerSecond = rps
	}
	if v := os.Getenv("FIPE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FIPE_TIMEOUT: %w", err)
		}
		c.FIPE.Timeout = d
	}

	if connStr := databaseURLFromEnv(); connStr != "" {
		c.Database.ConnStr = connStr
		if c.Database.Driver == "" {
			c.Database.Driver = DriverPostgres
		}
	}
	return nil
}

// databaseURLFromEnv returns DB_CONN_STR, or assembles one from DB_HOST, DB_PORT,
// DB_USER, DB_PASSWORD and DB_NAME when DB_HOST is set (Docker friendly)
func databaseURLFromEnv() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "fipify")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func (c *Config) applyDefaults() {
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":8080"
	}
	if c.GRPC.APIToken == "" {
		c.GRPC.APIToken = defaultAPIToken
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8081"
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.FIPE.BaseURL == "" {
		c.FIPE.BaseURL = fipe.DefaultBaseURL
	}
	if c.FIPE.VehicleType == "" {
		c.FIPE.VehicleType = fipe.DefaultVehicleType
	}
	if c.FIPE.RequestsPerSecond == 0 {
		c.FIPE.RequestsPerSecond = 2
	}
	if c.FIPE.Burst == 0 {
		c.FIPE.Burst = 1
	}
	if c.FIPE.Timeout == 0 {
		c.FIPE.Timeout = 10 * time.Second
	}
	if c.Database.Driver == "" {
		if c.Database.ConnStr != "" {
			c.Database.Driver = DriverPostgres
		} else {
			c.Database.Driver = DriverMemory
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Report.Timezone == "" {
		c.Report.Timezone = "America/Sao_Paulo"
	}
}

// Validate checks that the configuration can start the service
func (c *Config) Validate() error {
	if c.GRPC.Addr == "" {
		return fmt.Errorf("grpc.addr is required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.FIPE.RequestsPerSecond <= 0 {
		return fmt.Errorf("fipe.requests_per_second must be positive")
	}
	if c.FIPE.Burst <= 0 {
		return fmt.Errorf("fipe.burst must be positive")
	}
	if !fipe.ValidVehicleType(c.FIPE.VehicleType) {
		return fmt.Errorf("fipe.vehicle_type %q is not one of %v", c.FIPE.VehicleType, fipe.VehicleTypes)
	}
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.ConnStr == "" {
			return fmt.Errorf("database.conn_str is required for the postgres driver")
		}
	default:
		return fmt.Errorf("database.driver %q must be %q or %q", c.Database.Driver, DriverMemory, DriverPostgres)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves report.timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("report.timezone: %w", err)
	}
	return loc, nil
}

// FIPEConfig converts the fipe section for the client
func (c *Config) FIPEConfig() fipe.Config {
	return fipe.Config{
		BaseURL:           c.FIPE.BaseURL,
		VehicleType:       c.FIPE.VehicleType,
		RequestsPerSecond: c.FIPE.RequestsPerSecond,
		Burst:             c.FIPE.Burst,
		Timeout:           c.FIPE.Timeout,
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

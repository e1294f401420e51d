package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"GRPC_ADDR", "API_TOKEN", "HTTP_ADDR", "FIPE_BASE_URL", "FIPE_VEHICLE_TYPE",
	"FIPE_REQUESTS_PER_SECOND", "FIPE_TIMEOUT", "DB_DRIVER", "DB_CONN_STR",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"LOG_LEVEL", "LOG_FORMAT", "REPORT_TIMEZONE",
}

// clearEnv blanks every variable Load reads; empty values count as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.GRPC.Addr)
	assert.Equal(t, "dev-token", cfg.GRPC.APIToken)
	assert.Equal(t, ":8081", cfg.HTTP.Addr)
	assert.Equal(t, "carros", cfg.FIPE.VehicleType)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "America/Sao_Paulo", cfg.Report.Timezone)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
grpc:
  addr: ":9090"
  api_token: secret
fipe:
  vehicle_type: motos
  requests_per_second: 5
  burst: 3
  timeout: 3s
database:
  driver: postgres
  conn_str: "host=db dbname=fipify"
log:
  level: debug
  format: console
report:
  timezone: UTC
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.GRPC.Addr)
	assert.Equal(t, "secret", cfg.GRPC.APIToken)
	assert.Equal(t, "motos", cfg.FIPE.VehicleType)
	assert.Equal(t, 5.0, cfg.FIPE.RequestsPerSecond)
	assert.Equal(t, 3, cfg.FIPE.Burst)
	assert.Equal(t, 3*time.Second, cfg.FIPE.Timeout)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "grpc:\n  api_token: from-file\n")
	t.Setenv("API_TOKEN", "from-env")
	t.Setenv("FIPE_REQUESTS_PER_SECOND", "0.5")
	t.Setenv("FIPE_TIMEOUT", "250ms")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.GRPC.APIToken)
	assert.Equal(t, 0.5, cfg.FIPE.RequestsPerSecond)
	assert.Equal(t, 250*time.Millisecond, cfg.FIPE.Timeout)
}

func TestLoad_DatabaseFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "host=postgres port=5432 user=postgres password=pw dbname=fipify sslmode=disable", cfg.Database.ConnStr)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "grpc: [unclosed"))
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("FIPE_TIMEOUT", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "FIPE_TIMEOUT")
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown vehicle type", func(c *Config) { c.FIPE.VehicleType = "barcos" }, "vehicle_type"},
		{"non-positive rate", func(c *Config) { c.FIPE.RequestsPerSecond = -1 }, "requests_per_second"},
		{"postgres without conn", func(c *Config) { c.Database.Driver = DriverPostgres }, "conn_str"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "database.driver"},
		{"bad timezone", func(c *Config) { c.Report.Timezone = "Mars/Olympus" }, "timezone"},
		{"empty http addr", func(c *Config) { c.HTTP.Addr = "" }, "http.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_LoadConfig(t *testing.T) {
	path := writeConfig(t, `
version: "1.0"
mode: release
server:
  addr: ":9090"
database:
  driver: mysql
  host: db
  port: 3306
  user: lib
  password: secret
  dbname: library
  pool:
    max_open: 10
    conn_max_lifetime: 10m
late_fee:
  rate_per_day: 1.0
timezone: Asia/Tokyo
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 10, cfg.DB.Pool.MaxOpen)
	assert.Equal(t, 10*time.Minute, cfg.DB.Pool.ConnMaxLifetime)
	assert.Equal(t, 1.0, cfg.LateFee.RatePerDay)
	assert.Equal(t, "Asia/Tokyo", cfg.Location().String())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.False(t, cfg.TLSEnabled())
}

func Test_LoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "version: \"1.0\"\n")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Mode)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, 0.50, cfg.LateFee.RatePerDay)
	assert.Equal(t, time.UTC, cfg.Location())
}

func Test_LoadConfig_Invalid(t *testing.T) {
	testCases := map[string]string{
		"bad mode":      "mode: staging\n",
		"negative rate": "late_fee:\n  rate_per_day: -1\n",
		"bad timezone":  "timezone: Mars/Olympus\n",
		"bad driver":    "database:\n  driver: oracle\n",
	}

	for name, body := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

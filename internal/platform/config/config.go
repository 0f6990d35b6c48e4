package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"library-backend/internal/platform/db"
)

const DefaultPath = "config/config.yaml"

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type Server struct {
	Addr string `yaml:"addr"`
	// フロントのビルド出力（空なら配信しない）
	StaticDir string `yaml:"static_dir"`
}

type LateFee struct {
	RatePerDay float64 `yaml:"rate_per_day"`
}

type CORS struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type Config struct {
	Version     string            `yaml:"version"`
	Mode        string            `yaml:"mode"`
	Server      Server            `yaml:"server"`
	DB          db.DatabaseConfig `yaml:"database"`
	Certificate Certs             `yaml:"certificate"`
	LateFee     LateFee           `yaml:"late_fee"`
	Timezone    string            `yaml:"timezone"`
	CORS        CORS              `yaml:"cors"`

	location *time.Location
}

func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込み失敗: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルのパース失敗: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定ファイルの検証失敗: %w", err)
	}
	return cfg, nil
}

// Default values; anything present in the YAML overrides them.
func Default() *Config {
	return &Config{
		Mode:     "dev",
		Server:   Server{Addr: ":8080"},
		DB:       db.DatabaseConfig{Driver: db.DriverSQLite, Path: "library.db"},
		LateFee:  LateFee{RatePerDay: 0.50},
		Timezone: "UTC",
		CORS:     CORS{AllowOrigins: []string{"*"}},
	}
}

func (c *Config) Validate() error {
	if c.Mode != "dev" && c.Mode != "release" {
		return fmt.Errorf("mode must be dev or release, got %q", c.Mode)
	}
	if c.LateFee.RatePerDay < 0 {
		return fmt.Errorf("late_fee.rate_per_day must be >= 0")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	c.location = loc
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"*"}
	}
	return c.DB.Validate()
}

// Location defines what "today" means for due dates and fees.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) TLSEnabled() bool {
	return c.Certificate.Cert != "" && c.Certificate.Key != ""
}

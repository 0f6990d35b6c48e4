package db

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type PoolConfig struct {
	MaxOpen         int           `yaml:"max_open"`
	MaxIdle         int           `yaml:"max_idle"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type DatabaseConfig struct {
	Driver   string     `yaml:"driver"`
	Host     string     `yaml:"host"`
	Port     int        `yaml:"port"`
	Username string     `yaml:"user"`
	Password string     `yaml:"password"`
	DBName   string     `yaml:"dbname"`
	Path     string     `yaml:"path"` // sqlite3
	DSN      string     `yaml:"dsn"`  // 明示指定があれば優先
	Pool     PoolConfig `yaml:"pool"`
}

func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPostgres:
		if c.DSN == "" && (c.Host == "" || c.DBName == "") {
			return fmt.Errorf("database.host and database.dbname are required for %s", c.Driver)
		}
	case DriverSQLite:
		if c.DSN == "" && c.Path == "" {
			return fmt.Errorf("database.path is required for sqlite3")
		}
	default:
		return fmt.Errorf("unknown database.driver %q (mysql|sqlite3|pgx)", c.Driver)
	}
	return nil
}

func (c DatabaseConfig) dataSourceName() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.Username
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		mc.DBName = c.DBName
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Timeout = 3 * time.Second
		mc.ReadTimeout = 5 * time.Second
		mc.WriteTimeout = 5 * time.Second
		return mc.FormatDSN()
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.Username, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=disable&timezone=UTC",
		}
		return u.String()
	default:
		return SQLiteDSN(c.Path)
	}
}

// SQLiteDSN enables foreign keys, WAL and immediate write transactions.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_journal_mode=WAL&_txlock=immediate", path)
}

// DB is the shared pool plus the goqu dialect matching its driver.
type DB struct {
	*sqlx.DB
	dialect goqu.DialectWrapper
}

func New(x *sqlx.DB) *DB {
	return &DB{DB: x, dialect: goqu.Dialect(dialectName(x.DriverName()))}
}

// SQL returns the query builder for dynamic statements.
func (d *DB) SQL() goqu.DialectWrapper { return d.dialect }

func dialectName(driver string) string {
	switch driver {
	case DriverPostgres:
		return "postgres"
	case DriverSQLite:
		return "sqlite3"
	default:
		return "mysql"
	}
}

func Connect(ctx context.Context, c DatabaseConfig) (*DB, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	x, err := sqlx.Open(c.Driver, c.dataSourceName())
	if err != nil {
		return nil, fmt.Errorf("接続準備に失敗: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := x.PingContext(pingCtx); err != nil {
		x.Close()
		return nil, fmt.Errorf("DB接続に失敗: %w", err)
	}

	// 接続プール（合算がサーバ側の max_connections を超えないよう配分する）
	p := c.Pool
	if p.MaxOpen == 0 {
		p.MaxOpen = 80
	}
	if p.MaxIdle == 0 {
		p.MaxIdle = 20
	}
	if p.ConnMaxLifetime == 0 {
		p.ConnMaxLifetime = 30 * time.Minute
	}
	if p.ConnMaxIdleTime == 0 {
		p.ConnMaxIdleTime = 5 * time.Minute
	}
	x.SetMaxOpenConns(p.MaxOpen)
	x.SetMaxIdleConns(p.MaxIdle)
	x.SetConnMaxLifetime(p.ConnMaxLifetime)
	x.SetConnMaxIdleTime(p.ConnMaxIdleTime)

	return New(x), nil
}

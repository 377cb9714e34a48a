package postgres

import (
	"fmt"
	"net/url"
	"time"

	"github.com/lk2023060901/xdooria-progression/pkg/config"
)

// DBConfig 数据库实例配置
type DBConfig struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	User     string `mapstructure:"user" json:"user"`
	Password string `mapstructure:"password" json:"password"`
	DBName   string `mapstructure:"db_name" json:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode" json:"ssl_mode"` // disable, require, verify-ca, verify-full
}

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxConns          int32         `mapstructure:"max_conns" json:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns" json:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime" json:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time" json:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period" json:"health_check_period"`
}

// Config PostgreSQL 配置
type Config struct {
	// DSN 非空时优先使用，忽略 Standalone
	DSN        string    `mapstructure:"dsn" json:"dsn,omitempty"`
	Standalone *DBConfig `mapstructure:"standalone" json:"standalone,omitempty"`

	Pool PoolConfig `mapstructure:"pool" json:"pool"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout" json:"connect_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout" json:"query_timeout"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Standalone: &DBConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			DBName:  "progression",
			SSLMode: "disable",
		},
		Pool: PoolConfig{
			MaxConns:          10,
			MinConns:          1,
			MaxConnLifetime:   time.Hour,
			MaxConnIdleTime:   30 * time.Minute,
			HealthCheckPeriod: time.Minute,
		},
		ConnectTimeout: 5 * time.Second,
		QueryTimeout:   10 * time.Second,
	}
}

// MergeConfig 以默认配置为底合并用户配置
func MergeConfig(dst, src *Config) (*Config, error) {
	return config.MergeConfig(dst, src)
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	if c.DSN == "" {
		db := c.Standalone
		switch {
		case db == nil:
			return fmt.Errorf("%w: dsn or standalone is required", ErrInvalidConfig)
		case db.Host == "":
			return fmt.Errorf("%w: host is empty", ErrInvalidConfig)
		case db.Port <= 0 || db.Port > 65535:
			return fmt.Errorf("%w: invalid port %d", ErrInvalidConfig, db.Port)
		case db.User == "":
			return fmt.Errorf("%w: user is empty", ErrInvalidConfig)
		case db.DBName == "":
			return fmt.Errorf("%w: db_name is empty", ErrInvalidConfig)
		}
	}

	if c.Pool.MaxConns <= 0 {
		return fmt.Errorf("%w: max_conns must be positive", ErrInvalidConfig)
	}
	if c.Pool.MinConns < 0 || c.Pool.MinConns > c.Pool.MaxConns {
		return fmt.Errorf("%w: min_conns must be within [0, max_conns]", ErrInvalidConfig)
	}
	return nil
}

// ConnString 构建连接字符串
func (c *Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}

	db := c.Standalone
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.DBName,
	}
	q := u.Query()
	if db.SSLMode != "" {
		q.Set("sslmode", db.SSLMode)
	}
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

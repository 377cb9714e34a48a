package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier 由 Client 与 Tx 共同实现，DAO 通过它在事务内外复用同一份 SQL
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

// Row 单行结果，Scan 时将 pgx.ErrNoRows 转换为 ErrNoRows
type Row interface {
	Scan(dest ...any) error
}

// Client PostgreSQL 客户端
type Client struct {
	pool *pgxpool.Pool
	cfg  *Config
}

var _ Querier = (*Client)(nil)

// New 创建 PostgreSQL 客户端
func New(cfg *Config) (*Client, error) {
	newCfg, err := MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}
	if err := newCfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := createPool(newCfg)
	if err != nil {
		return nil, err
	}
	return &Client{pool: pool, cfg: newCfg}, nil
}

func createPool(cfg *Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = cfg.Pool.MaxConns
	poolConfig.MinConns = cfg.Pool.MinConns
	poolConfig.MaxConnLifetime = cfg.Pool.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Pool.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.Pool.HealthCheckPeriod

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Close 关闭连接池
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Ping 检查数据库连接
func (c *Client) Ping(ctx context.Context) error {
	if err := c.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Stats 获取连接池状态
func (c *Client) Stats() *PoolStats {
	stat := c.pool.Stat()
	return &PoolStats{
		AcquireCount:    stat.AcquireCount(),
		AcquireDuration: stat.AcquireDuration(),
		AcquiredConns:   stat.AcquiredConns(),
		IdleConns:       stat.IdleConns(),
		MaxConns:        stat.MaxConns(),
		TotalConns:      stat.TotalConns(),
	}
}

// applyQueryTimeout 应用查询超时到 context
func (c *Client) applyQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.QueryTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.QueryTimeout)
	}
	return ctx, func() {}
}

// QueryRow 查询单行
func (c *Client) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return row{r: c.pool.QueryRow(ctx, sql, args...)}
}

// Query 查询多行，调用方负责 rows.Close()
func (c *Client) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", translate(err))
	}
	return rows, nil
}

// Exec 执行写操作（INSERT/UPDATE/DELETE）
func (c *Client) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	ctx, cancel := c.applyQueryTimeout(ctx)
	defer cancel()

	result, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", translate(err))
	}
	return result.RowsAffected(), nil
}

// ExecScript 执行多语句脚本（建表等）
func (c *Client) ExecScript(ctx context.Context, script string) error {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	// 简单协议才允许一次发送多条语句
	if _, err := conn.Conn().PgConn().Exec(ctx, script).ReadAll(); err != nil {
		return fmt.Errorf("exec script failed: %w", err)
	}
	return nil
}

type row struct {
	r pgx.Row
}

func (r row) Scan(dest ...any) error {
	return translate(r.r.Scan(dest...))
}

// translate 将驱动错误映射为包内哨兵错误，保留原始错误链
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
	}
	return err
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client Redis 客户端（隐藏 go-redis 类型）
type Client struct {
	rdb goredis.UniversalClient
	cfg *Config
}

// NewClient 创建 Redis 客户端并检测连通性
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &goredis.UniversalOptions{
		MaxIdleConns:    cfg.Pool.MaxIdleConns,
		MaxActiveConns:  cfg.Pool.MaxOpenConns,
		ConnMaxIdleTime: cfg.Pool.ConnMaxIdleTime,
		DialTimeout:     cfg.Pool.DialTimeout,
		ReadTimeout:     cfg.Pool.ReadTimeout,
		WriteTimeout:    cfg.Pool.WriteTimeout,
	}
	if cfg.IsCluster() {
		opts.Addrs = cfg.Cluster.Addrs
		opts.Password = cfg.Cluster.Password
		opts.IsClusterMode = true
	} else {
		opts.Addrs = []string{cfg.Standalone.Addr()}
		opts.Password = cfg.Standalone.Password
		opts.DB = cfg.Standalone.DB
	}

	c := &Client{rdb: goredis.NewUniversalClient(opts), cfg: cfg}
	if err := c.Ping(ctx); err != nil {
		_ = c.rdb.Close()
		return nil, err
	}
	return c, nil
}

// Ping 检查连接
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Get 获取字符串值，键不存在返回 ErrNil
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

// TTL 返回剩余过期时间
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.rdb.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get ttl of %s: %w", key, err)
	}
	return ttl, nil
}

package main

import (
	"context"
	"errors"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/gameconfig"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/manager"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/pkg/config"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/lk2023060901/xdooria-progression/pkg/database/redis"
	"github.com/lk2023060901/xdooria-progression/pkg/idgen"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
	"github.com/lk2023060901/xdooria-progression/pkg/prometheus"
)

// providePrometheusClient 提供 Prometheus 客户端，关闭时按配置推送到 Pushgateway
func providePrometheusClient(cfg *Config, l logger.Logger) (*prometheus.Client, func(), error) {
	promCfg, err := config.MergeConfig(prometheus.DefaultConfig(), &cfg.Prometheus)
	if err != nil {
		return nil, nil, err
	}
	c, err := prometheus.New(promCfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := c.Close(); err != nil && !errors.Is(err, prometheus.ErrClientClosed) {
			l.Warn("failed to push metrics", "error", err)
		}
	}
	return c, cleanup, nil
}

// provideProgressionMetrics 创建业务指标并注册到 Prometheus
func provideProgressionMetrics(cfg *Config, prom *prometheus.Client) (*metrics.ProgressionMetrics, error) {
	m, err := metrics.New(&cfg.Metrics)
	if err != nil {
		return nil, err
	}
	if err := m.Register(prom.Registerer()); err != nil {
		return nil, err
	}
	return m, nil
}

// providePostgresClient 提供 PostgreSQL 客户端
func providePostgresClient(cfg *Config, l logger.Logger) (*postgres.Client, func(), error) {
	c, err := postgres.New(&cfg.Database)
	if err != nil {
		l.Error("failed to connect postgres", "error", err)
		return nil, nil, err
	}
	return c, c.Close, nil
}

// provideRedisClient 启用分布式锁时连接 Redis，否则返回 nil
func provideRedisClient(ctx context.Context, cfg *Config, l logger.Logger) (*redis.Client, func(), error) {
	if !cfg.Lock.Distributed {
		return nil, func() {}, nil
	}
	c, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		l.Error("failed to connect redis", "error", err)
		return nil, nil, err
	}
	cleanup := func() {
		if err := c.Close(); err != nil {
			l.Warn("failed to close redis client", "error", err)
		}
	}
	return c, cleanup, nil
}

// provideNoRedis 内存模式只使用进程内锁
func provideNoRedis() *redis.Client {
	return nil
}

// provideLockConfig 提供角色写锁配置
func provideLockConfig(cfg *Config) (*manager.LockConfig, error) {
	return config.MergeConfig(manager.DefaultLockConfig(), &cfg.Lock)
}

// provideIDGenerator 提供 sonyflake ID 生成器
func provideIDGenerator(cfg *Config) (idgen.Generator, error) {
	return idgen.NewSonyflake(cfg.IDGen)
}

// provideSequence 内存模式使用自增 ID
func provideSequence() idgen.Generator {
	return idgen.NewSequence(1)
}

// provideRules 合并默认规则与配置，再加载外部表
func provideRules(cfg *Config, l logger.Logger) (*gameconfig.Rules, error) {
	rules, err := gameconfig.Build(&cfg.Rules)
	if err != nil {
		return nil, err
	}
	if err := gameconfig.LoadTables(rules, l); err != nil {
		return nil, err
	}
	return rules, nil
}

package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/pkg/database/redis"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// LockConfig 角色写锁配置
type LockConfig struct {
	// Distributed 多进程共享数据库时启用 Redis 锁
	Distributed   bool          `mapstructure:"distributed" json:"distributed"`
	TTL           time.Duration `mapstructure:"ttl" json:"ttl"`
	RetryInterval time.Duration `mapstructure:"retry_interval" json:"retry_interval"`
	MaxRetries    int           `mapstructure:"max_retries" json:"max_retries"`
}

// DefaultLockConfig 默认配置
func DefaultLockConfig() *LockConfig {
	return &LockConfig{
		TTL:           10 * time.Second,
		RetryInterval: 20 * time.Millisecond,
		MaxRetries:    250,
	}
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

// LockManager 按角色 ID 加锁，保证同一角色同一时刻只有一个写者
// 进程内使用带引用计数的互斥表，启用分布式时再叠加 Redis 锁
type LockManager struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
	redis   *redis.Client
	cfg     *LockConfig

	mu    sync.Mutex
	locks map[int64]*lockEntry
}

// NewLockManager 创建锁管理器，rdb 为 nil 时只使用进程内锁
func NewLockManager(l logger.Logger, m *metrics.ProgressionMetrics, rdb *redis.Client, cfg *LockConfig) *LockManager {
	if cfg == nil {
		cfg = DefaultLockConfig()
	}
	if !cfg.Distributed {
		rdb = nil
	}
	return &LockManager{
		logger:  l.Named("manager.lock"),
		metrics: m,
		redis:   rdb,
		cfg:     cfg,
		locks:   make(map[int64]*lockEntry),
	}
}

// LockKey 角色锁在 Redis 中的键
func LockKey(characterID int64) string {
	return fmt.Sprintf("lock:character:%d", characterID)
}

// Lock 获取角色写锁，返回的 unlock 必须调用且只能调用一次
func (m *LockManager) Lock(ctx context.Context, characterID int64) (func(), error) {
	start := time.Now()

	// 1. 进程内锁
	e := m.acquireEntry(characterID)
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		m.releaseEntry(characterID, e)
		return nil, fmt.Errorf("failed to lock character %d: %w", characterID, ctx.Err())
	}
	m.metrics.RecordLockWait("local", time.Since(start))

	if m.redis == nil {
		return func() { m.unlockLocal(characterID, e) }, nil
	}

	// 2. 分布式锁
	start = time.Now()
	rl := redis.NewLock(m.redis, LockKey(characterID), m.cfg.TTL)
	if err := rl.LockWithRetry(ctx, m.cfg.RetryInterval, m.cfg.MaxRetries); err != nil {
		m.unlockLocal(characterID, e)
		return nil, fmt.Errorf("failed to acquire distributed lock for character %d: %w", characterID, err)
	}
	m.metrics.RecordLockWait("redis", time.Since(start))

	return func() {
		if err := rl.Unlock(context.WithoutCancel(ctx)); err != nil {
			m.logger.Warn("failed to release distributed lock",
				"character_id", characterID,
				"key", rl.Key(),
				"error", err,
			)
		}
		m.unlockLocal(characterID, e)
	}, nil
}

// Held 当前持有或等待中的角色锁数量
func (m *LockManager) Held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

func (m *LockManager) acquireEntry(characterID int64) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.locks[characterID]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		m.locks[characterID] = e
	}
	e.refs++
	return e
}

func (m *LockManager) releaseEntry(characterID int64, e *lockEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(m.locks, characterID)
	}
}

func (m *LockManager) unlockLocal(characterID int64, e *lockEntry) {
	<-e.sem
	m.releaseEntry(characterID, e)
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// 默认锁过期时间
const defaultLockTTL = 10 * time.Second

// 只有持有者才能释放或续期
var (
	unlockScript = goredis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`)
	refreshScript = goredis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		else
			return 0
		end
	`)
)

// Lock 分布式锁（单节点 SET NX）
type Lock struct {
	client *Client
	key    string
	value  string // 持有者标识
	ttl    time.Duration
}

// NewLock 创建分布式锁
func NewLock(client *Client, key string, ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.NewString(),
		ttl:    ttl,
	}
}

// Key 返回锁的键
func (l *Lock) Key() string {
	return l.key
}

// TryLock 尝试获取锁（非阻塞）
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	ok, err := l.client.rdb.SetNX(ctx, l.key, l.value, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to try lock %s: %w", l.key, err)
	}
	return ok, nil
}

// LockWithRetry 获取锁，失败后按 retryInterval 重试，最多 maxRetries 次
func (l *Lock) LockWithRetry(ctx context.Context, retryInterval time.Duration, maxRetries int) error {
	for i := 0; i <= maxRetries; i++ {
		ok, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if i == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return ErrLockFailed
}

// Unlock 释放锁
func (l *Lock) Unlock(ctx context.Context) error {
	n, err := unlockScript.Run(ctx, l.client.rdb, []string{l.key}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh 续期
func (l *Lock) Refresh(ctx context.Context) error {
	n, err := refreshScript.Run(ctx, l.client.rdb, []string{l.key}, l.value, l.ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// WithLockRetry 在锁的保护下执行函数，解锁失败通过返回值之外的 onUnlockErr 回调上报
func (c *Client) WithLockRetry(ctx context.Context, key string, ttl, retryInterval time.Duration, maxRetries int,
	fn func() error, onUnlockErr func(error)) error {
	lock := NewLock(c, key, ttl)
	if err := lock.LockWithRetry(ctx, retryInterval, maxRetries); err != nil {
		return err
	}

	defer func() {
		if err := lock.Unlock(context.WithoutCancel(ctx)); err != nil && onUnlockErr != nil {
			onUnlockErr(err)
		}
	}()

	return fn()
}

package redis

import "errors"

var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("redis config is nil")

	// ErrInvalidConfig 配置无效（Standalone/Cluster 必须且只能配置一种）
	ErrInvalidConfig = errors.New("invalid redis config: must specify exactly one of standalone or cluster mode")

	// ErrNil 键不存在
	ErrNil = errors.New("redis: nil")

	// ErrLockFailed 获取锁失败
	ErrLockFailed = errors.New("redis: failed to acquire lock")

	// ErrLockNotHeld 锁未持有（解锁时发现锁不存在或已被其他持有者占用）
	ErrLockNotHeld = errors.New("redis: lock not held")
)

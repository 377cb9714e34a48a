package postgres

import "errors"

var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("postgres: config is nil")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("postgres: invalid config")

	// ErrNoRows 没有查询到数据
	ErrNoRows = errors.New("postgres: no rows in result set")

	// ErrUniqueViolation 唯一约束冲突
	ErrUniqueViolation = errors.New("postgres: unique violation")
)

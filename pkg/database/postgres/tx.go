package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Tx 事务接口
type Tx interface {
	Querier
	// Commit 提交事务
	Commit(ctx context.Context) error
	// Rollback 回滚事务
	Rollback(ctx context.Context) error
}

// txWrapper 事务包装器
type txWrapper struct {
	tx pgx.Tx
}

func (t *txWrapper) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return row{r: t.tx.QueryRow(ctx, sql, args...)}
}

func (t *txWrapper) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", translate(err))
	}
	return rows, nil
}

func (t *txWrapper) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	result, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", translate(err))
	}
	return result.RowsAffected(), nil
}

func (t *txWrapper) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *txWrapper) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// TxIsolationLevel 事务隔离级别
type TxIsolationLevel string

const (
	TxIsolationLevelDefault        TxIsolationLevel = ""
	TxIsolationLevelReadCommitted  TxIsolationLevel = "read committed"
	TxIsolationLevelRepeatableRead TxIsolationLevel = "repeatable read"
	TxIsolationLevelSerializable   TxIsolationLevel = "serializable"
)

// TxAccessMode 事务访问模式
type TxAccessMode string

const (
	TxAccessModeDefault   TxAccessMode = ""
	TxAccessModeReadWrite TxAccessMode = "read write"
	TxAccessModeReadOnly  TxAccessMode = "read only"
)

// TxOptions 事务选项
type TxOptions struct {
	IsoLevel   TxIsolationLevel
	AccessMode TxAccessMode
}

// BeginTx 使用选项开启事务
func (c *Client) BeginTx(ctx context.Context, opts TxOptions) (Tx, error) {
	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.TxIsoLevel(opts.IsoLevel),
		AccessMode: pgx.TxAccessMode(opts.AccessMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &txWrapper{tx: tx}, nil
}

// WithTx 在默认选项的事务中执行函数
func (c *Client) WithTx(ctx context.Context, fn func(Tx) error) error {
	return c.WithTxOptions(ctx, TxOptions{}, fn)
}

// WithTxOptions 在事务中执行函数，fn 返回错误或 panic 时回滚
func (c *Client) WithTxOptions(ctx context.Context, opts TxOptions, fn func(Tx) error) error {
	tx, err := c.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

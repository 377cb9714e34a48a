package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// LedgerDAO 积分流水数据访问对象，只有插入与查询
type LedgerDAO struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
}

// NewLedgerDAO 创建流水 DAO
func NewLedgerDAO(l logger.Logger, m *metrics.ProgressionMetrics) *LedgerDAO {
	return &LedgerDAO{
		logger:  l.Named("dao.ledger"),
		metrics: m,
	}
}

// InsertBatch 批量追加流水
func (d *LedgerDAO) InsertBatch(ctx context.Context, q postgres.Querier, entries []*model.LedgerEntry) (err error) {
	if len(entries) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("insert", err == nil, time.Since(start).Seconds())
	}()

	builder := squirrel.
		Insert(tableLedgerEntries).
		Columns("id", "character_id", "amount", "balance_after", "category", "reason", "actor_id", "created_at").
		PlaceholderFormat(squirrel.Dollar)
	for _, e := range entries {
		builder = builder.Values(
			e.ID, e.CharacterID, e.Amount, e.BalanceAfter,
			e.Category.String(), e.Reason, e.Actor.Ptr(), e.CreatedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = q.Exec(ctx, query, args...); err != nil {
		d.logger.Error("failed to insert ledger entries",
			"character_id", entries[0].CharacterID,
			"count", len(entries),
			"error", err,
		)
		return fmt.Errorf("failed to insert ledger entries: %w", err)
	}
	return nil
}

// ListByCharacter 按时间倒序返回角色的全部流水
func (d *LedgerDAO) ListByCharacter(ctx context.Context, q postgres.Querier, characterID int64) (_ []*model.LedgerEntry, err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", err == nil, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select("id", "character_id", "amount", "balance_after", "category", "reason", "actor_id", "created_at").
		From(tableLedgerEntries).
		Where(squirrel.Eq{"character_id": characterID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		d.logger.Error("failed to list ledger entries",
			"character_id", characterID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.LedgerEntry
	for rows.Next() {
		var (
			e     model.LedgerEntry
			actor *int64
		)
		if err := rows.Scan(
			&e.ID,
			&e.CharacterID,
			&e.Amount,
			&e.BalanceAfter,
			&e.RawCategory,
			&e.Reason,
			&actor,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		e.Actor = model.FromPtr(actor)
		category, parseErr := model.ParseCategory(e.RawCategory)
		e.Category = category
		if parseErr != nil {
			d.logger.Warn("unknown ledger category",
				"entry_id", e.ID,
				"category", e.RawCategory,
			)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, nil
}

// Totals 流水合计与条数，用于余额核对
func (d *LedgerDAO) Totals(ctx context.Context, q postgres.Querier, characterID int64) (sum int64, count int, err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", err == nil, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select("COALESCE(SUM(amount), 0)", "COUNT(*)").
		From(tableLedgerEntries).
		Where(squirrel.Eq{"character_id": characterID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build query: %w", err)
	}

	if err = q.QueryRow(ctx, query, args...).Scan(&sum, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return sum, count, nil
}

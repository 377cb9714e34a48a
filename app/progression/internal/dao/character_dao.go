package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

var characterColumns = []string{
	"id", "account_id", "name", "race", "level", "experience", "balance",
	"active_transformation", "transformations",
	"str", "dex", "con", "wil", "mnd", "spi",
	"active", "version", "created_at", "updated_at",
}

// CharacterDAO 角色数据访问对象
type CharacterDAO struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
}

// NewCharacterDAO 创建角色 DAO
func NewCharacterDAO(l logger.Logger, m *metrics.ProgressionMetrics) *CharacterDAO {
	return &CharacterDAO{
		logger:  l.Named("dao.character"),
		metrics: m,
	}
}

// Insert 插入新角色
func (d *CharacterDAO) Insert(ctx context.Context, q postgres.Querier, c *model.Character) (err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("insert", err == nil, time.Since(start).Seconds())
	}()

	a := c.Attributes
	query, args, err := squirrel.
		Insert(tableCharacters).
		Columns(characterColumns...).
		Values(
			c.ID, c.AccountID, c.Name, c.Race, c.Level, c.Experience, c.Balance,
			c.ActiveTransformation.Ptr(), transformationsOrEmpty(c.Transformations),
			a.STR, a.DEX, a.CON, a.WIL, a.MND, a.SPI,
			c.Active, c.Version, c.CreatedAt, c.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = q.Exec(ctx, query, args...); err != nil {
		d.logger.Error("failed to insert character",
			"character_id", c.ID,
			"error", err,
		)
		return fmt.Errorf("failed to insert character: %w", err)
	}
	return nil
}

// Get 根据 ID 获取角色，forUpdate 时加行锁（仅在事务内有意义）
func (d *CharacterDAO) Get(ctx context.Context, q postgres.Querier, id int64, forUpdate bool) (c *model.Character, err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", err == nil || errors.Is(err, model.ErrCharacterNotFound), time.Since(start).Seconds())
	}()

	builder := squirrel.
		Select(characterColumns...).
		From(tableCharacters).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		ch     model.Character
		active *string
	)
	if err := q.QueryRow(ctx, query, args...).Scan(
		&ch.ID,
		&ch.AccountID,
		&ch.Name,
		&ch.Race,
		&ch.Level,
		&ch.Experience,
		&ch.Balance,
		&active,
		&ch.Transformations,
		&ch.Attributes.STR,
		&ch.Attributes.DEX,
		&ch.Attributes.CON,
		&ch.Attributes.WIL,
		&ch.Attributes.MND,
		&ch.Attributes.SPI,
		&ch.Active,
		&ch.Version,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	); err != nil {
		if errors.Is(err, postgres.ErrNoRows) {
			return nil, fmt.Errorf("character %d: %w", id, model.ErrCharacterNotFound)
		}
		d.logger.Error("failed to get character",
			"character_id", id,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	ch.ActiveTransformation = model.FromPtr(active)
	return &ch, nil
}

// ListIDs 按 ID 升序列出角色，activeOnly 时跳过已退役角色
func (d *CharacterDAO) ListIDs(ctx context.Context, q postgres.Querier, activeOnly bool) (_ []int64, err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", err == nil, time.Since(start).Seconds())
	}()

	builder := squirrel.
		Select("id").
		From(tableCharacters).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan character id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate characters: %w", err)
	}
	return ids, nil
}

// Update 按版本号更新角色，版本不匹配返回 ErrConcurrentModification
// 成功后 c.Version 为新版本
func (d *CharacterDAO) Update(ctx context.Context, q postgres.Querier, c *model.Character) (err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("update", err == nil, time.Since(start).Seconds())
	}()

	a := c.Attributes
	query, args, err := squirrel.
		Update(tableCharacters).
		SetMap(map[string]any{
			"name":                  c.Name,
			"level":                 c.Level,
			"experience":            c.Experience,
			"balance":               c.Balance,
			"active_transformation": c.ActiveTransformation.Ptr(),
			"transformations":       transformationsOrEmpty(c.Transformations),
			"str":                   a.STR,
			"dex":                   a.DEX,
			"con":                   a.CON,
			"wil":                   a.WIL,
			"mnd":                   a.MND,
			"spi":                   a.SPI,
			"active":                c.Active,
			"version":               c.Version + 1,
			"updated_at":            c.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": c.ID, "version": c.Version}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	n, err := q.Exec(ctx, query, args...)
	if err != nil {
		d.logger.Error("failed to update character",
			"character_id", c.ID,
			"error", err,
		)
		return fmt.Errorf("failed to update character: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("character %d version %d: %w", c.ID, c.Version, model.ErrConcurrentModification)
	}

	c.Version++
	return nil
}

func transformationsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

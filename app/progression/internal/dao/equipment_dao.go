package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// EquipmentDAO 装备槽数据访问对象
type EquipmentDAO struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
}

// NewEquipmentDAO 创建装备槽 DAO
func NewEquipmentDAO(l logger.Logger, m *metrics.ProgressionMetrics) *EquipmentDAO {
	return &EquipmentDAO{
		logger:  l.Named("dao.equipment"),
		metrics: m,
	}
}

// Get 获取装备槽，不存在时返回空槽
func (d *EquipmentDAO) Get(ctx context.Context, q postgres.Querier, characterID int64) (_ *model.EquipmentSlot, err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", err == nil, time.Since(start).Seconds())
	}()

	// status 列不读取，状态总是由槽位推导
	query, args, err := squirrel.
		Select("weapon", "armor", "updated_at").
		From(tableEquipmentSlots).
		Where(squirrel.Eq{"character_id": characterID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		weaponJSON, armorJSON []byte
		updatedAt             time.Time
	)
	err = q.QueryRow(ctx, query, args...).Scan(&weaponJSON, &armorJSON, &updatedAt)
	if err != nil {
		if errors.Is(err, postgres.ErrNoRows) {
			return model.NewEquipmentSlot(characterID, time.Time{}), nil
		}
		return nil, fmt.Errorf("failed to get equipment slot: %w", err)
	}

	slot := &model.EquipmentSlot{CharacterID: characterID, UpdatedAt: updatedAt}
	if slot.Weapon, err = decodeItem(weaponJSON); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weapon: %w", err)
	}
	if slot.Armor, err = decodeItem(armorJSON); err != nil {
		return nil, fmt.Errorf("failed to unmarshal armor: %w", err)
	}
	return slot, nil
}

// Save 保存装备槽 (Upsert)，status 由 Status() 写入
func (d *EquipmentDAO) Save(ctx context.Context, q postgres.Querier, slot *model.EquipmentSlot) (err error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("upsert", err == nil, time.Since(start).Seconds())
	}()

	weaponJSON, err := encodeItem(slot.Weapon)
	if err != nil {
		return err
	}
	armorJSON, err := encodeItem(slot.Armor)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(tableEquipmentSlots).
		Columns("character_id", "weapon", "armor", "status", "updated_at").
		Values(slot.CharacterID, weaponJSON, armorJSON, slot.Status().String(), slot.UpdatedAt).
		Suffix("ON CONFLICT (character_id) DO UPDATE SET weapon = EXCLUDED.weapon, armor = EXCLUDED.armor, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = q.Exec(ctx, query, args...); err != nil {
		d.logger.Error("failed to save equipment slot",
			"character_id", slot.CharacterID,
			"error", err,
		)
		return fmt.Errorf("failed to save equipment slot: %w", err)
	}
	return nil
}

// JSONB NULL 对应空槽
func encodeItem(item *model.EquippedItem) ([]byte, error) {
	if item == nil {
		return nil, nil
	}
	data, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal equipped item: %w", err)
	}
	return data, nil
}

func decodeItem(data []byte) (*model.EquippedItem, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var item model.EquippedItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

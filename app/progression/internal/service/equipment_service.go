package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/repository"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// EquipResult 装备变更结果
type EquipResult struct {
	Status model.EquipStatus
	// Item 本次穿上或卸下的物品
	Item *model.EquippedItem
	// Replaced 被替换下的物品，仅 Equip 时可能非空
	Replaced *model.EquippedItem
}

// EquipmentService 武器/护甲槽管理
type EquipmentService struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
	repo    repository.CharacterRepository
}

func NewEquipmentService(l logger.Logger, m *metrics.ProgressionMetrics, repo repository.CharacterRepository) *EquipmentService {
	return &EquipmentService{
		logger:  l.Named("service.equipment"),
		metrics: m,
		repo:    repo,
	}
}

// Equip 穿戴物品，槽位已占用时替换
func (s *EquipmentService) Equip(ctx context.Context, characterID int64, slotType string, item *model.CatalogItem) (_ *EquipResult, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("equip", resultOf(err), start) }()

	// 1. 槽位校验
	slot, err := model.ParseSlotType(slotType)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.Wrapf(model.ErrItemSlotMismatch, "no item for slot %s", slot)
	}
	if item.Slot != slot {
		return nil, errors.Wrapf(model.ErrItemSlotMismatch, "item %d is %s, slot is %s", item.ID, item.Slot, slot)
	}

	// 2. 需求校验并写入
	result := &EquipResult{}
	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		if err := a.Character.EnsureActive(); err != nil {
			return err
		}
		if err := item.CheckRequirements(a.Character); err != nil {
			return err
		}

		now := time.Now()
		equipped := &model.EquippedItem{
			ItemID:     item.ID,
			Name:       item.Name,
			Bonuses:    item.Bonuses,
			EquippedAt: now,
		}
		result.Replaced = a.Equipment.Put(slot, equipped)
		a.Equipment.UpdatedAt = now

		result.Item = equipped
		result.Status = a.Equipment.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item equipped",
		"character_id", characterID,
		"slot", slot.String(),
		"item_id", item.ID,
		"status", result.Status.String(),
		"swapped", result.Replaced != nil,
	)
	return result, nil
}

// Unequip 卸下槽位物品
func (s *EquipmentService) Unequip(ctx context.Context, characterID int64, slotType string) (_ *EquipResult, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("unequip", resultOf(err), start) }()

	slot, err := model.ParseSlotType(slotType)
	if err != nil {
		return nil, err
	}

	result := &EquipResult{}
	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		if err := a.Character.EnsureActive(); err != nil {
			return err
		}
		removed, err := a.Equipment.Remove(slot)
		if err != nil {
			return err
		}
		a.Equipment.UpdatedAt = time.Now()

		result.Item = removed
		result.Status = a.Equipment.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item unequipped",
		"character_id", characterID,
		"slot", slot.String(),
		"item_id", result.Item.ItemID,
		"status", result.Status.String(),
	)
	return result, nil
}

// Equipment 当前装备槽
func (s *EquipmentService) Equipment(ctx context.Context, characterID int64) (*model.EquipmentSlot, error) {
	agg, err := s.repo.Load(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return agg.Equipment, nil
}

// TotalBonus 武器与护甲对指定属性的加成合计
func (s *EquipmentService) TotalBonus(ctx context.Context, characterID int64, attribute string) (int32, error) {
	code, err := model.ParseAttributeCode(attribute)
	if err != nil {
		return 0, err
	}
	agg, err := s.repo.Load(ctx, characterID)
	if err != nil {
		return 0, err
	}
	return agg.Equipment.Bonus(code), nil
}

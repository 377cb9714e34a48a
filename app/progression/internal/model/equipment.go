package model

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// SlotType 装备槽位
type SlotType int8

const (
	SlotWeapon SlotType = iota + 1
	SlotArmor
)

func (s SlotType) String() string {
	switch s {
	case SlotWeapon:
		return "WEAPON"
	case SlotArmor:
		return "ARMOR"
	default:
		return "UNKNOWN"
	}
}

// ParseSlotType 解析槽位（大小写不敏感）
func ParseSlotType(s string) (SlotType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WEAPON":
		return SlotWeapon, nil
	case "ARMOR":
		return SlotArmor, nil
	default:
		return 0, errors.Wrapf(ErrSlotInvalid, "slot %q", s)
	}
}

// EquipStatus 装备状态，只能由槽位占用情况推导
type EquipStatus int8

const (
	EquipNone EquipStatus = iota
	EquipWeaponOnly
	EquipArmorOnly
	EquipBoth
)

func (s EquipStatus) String() string {
	switch s {
	case EquipNone:
		return "NONE"
	case EquipWeaponOnly:
		return "WEAPON_ONLY"
	case EquipArmorOnly:
		return "ARMOR_ONLY"
	case EquipBoth:
		return "BOTH"
	default:
		return "UNKNOWN"
	}
}

// EquippedItem 穿戴时的物品快照
type EquippedItem struct {
	ItemID     int64      `json:"item_id"`
	Name       string     `json:"name"`
	Bonuses    Attributes `json:"bonuses"`
	EquippedAt time.Time  `json:"equipped_at"`
}

// EquipmentSlot 角色装备槽，对应 equipment_slots 表
type EquipmentSlot struct {
	CharacterID int64
	Weapon      *EquippedItem
	Armor       *EquippedItem
	UpdatedAt   time.Time
}

// NewEquipmentSlot 创建空槽
func NewEquipmentSlot(characterID int64, now time.Time) *EquipmentSlot {
	return &EquipmentSlot{CharacterID: characterID, UpdatedAt: now}
}

// Status 由占用情况计算
func (e *EquipmentSlot) Status() EquipStatus {
	switch {
	case e.Weapon != nil && e.Armor != nil:
		return EquipBoth
	case e.Weapon != nil:
		return EquipWeaponOnly
	case e.Armor != nil:
		return EquipArmorOnly
	default:
		return EquipNone
	}
}

// Item 返回槽位中的物品
func (e *EquipmentSlot) Item(slot SlotType) *EquippedItem {
	switch slot {
	case SlotWeapon:
		return e.Weapon
	case SlotArmor:
		return e.Armor
	default:
		return nil
	}
}

// Put 放入物品（已占用则替换），返回被替换的物品
func (e *EquipmentSlot) Put(slot SlotType, item *EquippedItem) *EquippedItem {
	prev := e.Item(slot)
	switch slot {
	case SlotWeapon:
		e.Weapon = item
	case SlotArmor:
		e.Armor = item
	}
	return prev
}

// Remove 清空槽位
func (e *EquipmentSlot) Remove(slot SlotType) (*EquippedItem, error) {
	prev := e.Item(slot)
	if prev == nil {
		return nil, errors.Wrapf(ErrNothingEquipped, "slot %s", slot)
	}
	e.Put(slot, nil)
	return prev, nil
}

// Bonus 指定属性的装备加成合计
func (e *EquipmentSlot) Bonus(code AttributeCode) int32 {
	var total int32
	if e.Weapon != nil {
		total += e.Weapon.Bonuses.Get(code)
	}
	if e.Armor != nil {
		total += e.Armor.Bonuses.Get(code)
	}
	return total
}

// Bonuses 全部属性的装备加成
func (e *EquipmentSlot) Bonuses() Attributes {
	var out Attributes
	for _, code := range AllAttributes {
		out.Set(code, e.Bonus(code))
	}
	return out
}

// Clone 深拷贝
func (e *EquipmentSlot) Clone() *EquipmentSlot {
	out := *e
	if e.Weapon != nil {
		w := *e.Weapon
		out.Weapon = &w
	}
	if e.Armor != nil {
		a := *e.Armor
		out.Armor = &a
	}
	return &out
}

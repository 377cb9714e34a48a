package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipStatusTruthTable(t *testing.T) {
	weapon := &EquippedItem{ItemID: 1, Bonuses: Attributes{STR: 3}}
	armor := &EquippedItem{ItemID: 2, Bonuses: Attributes{CON: 4, STR: 1}}

	tests := []struct {
		weapon, armor *EquippedItem
		want          EquipStatus
	}{
		{nil, nil, EquipNone},
		{weapon, nil, EquipWeaponOnly},
		{nil, armor, EquipArmorOnly},
		{weapon, armor, EquipBoth},
	}
	for _, tt := range tests {
		slot := &EquipmentSlot{Weapon: tt.weapon, Armor: tt.armor}
		assert.Equal(t, tt.want, slot.Status())
	}
}

func TestEquipmentPutRemove(t *testing.T) {
	now := time.Now()
	slot := NewEquipmentSlot(7, now)
	assert.Equal(t, EquipNone, slot.Status())

	sword := &EquippedItem{ItemID: 1, Bonuses: Attributes{STR: 3}}
	axe := &EquippedItem{ItemID: 2, Bonuses: Attributes{STR: 5}}
	plate := &EquippedItem{ItemID: 3, Bonuses: Attributes{CON: 4, STR: 1}}

	assert.Nil(t, slot.Put(SlotWeapon, sword))
	assert.Same(t, sword, slot.Put(SlotWeapon, axe))
	slot.Put(SlotArmor, plate)
	assert.Equal(t, EquipBoth, slot.Status())
	assert.Equal(t, int32(6), slot.Bonus(AttributeSTR))
	assert.Equal(t, Attributes{STR: 6, CON: 4}, slot.Bonuses())

	cp := slot.Clone()
	removed, err := slot.Remove(SlotWeapon)
	require.NoError(t, err)
	assert.Same(t, axe, removed)
	assert.Equal(t, EquipArmorOnly, slot.Status())
	assert.Equal(t, EquipBoth, cp.Status())

	_, err = slot.Remove(SlotWeapon)
	assert.ErrorIs(t, err, ErrNothingEquipped)
}

func TestParseSlotType(t *testing.T) {
	s, err := ParseSlotType("weapon")
	require.NoError(t, err)
	assert.Equal(t, SlotWeapon, s)

	s, err = ParseSlotType("ARMOR")
	require.NoError(t, err)
	assert.Equal(t, SlotArmor, s)

	_, err = ParseSlotType("ring")
	assert.ErrorIs(t, err, ErrSlotInvalid)
}

func TestCheckRequirements(t *testing.T) {
	c := &Character{Level: 4, Attributes: Attributes{STR: 20, DEX: 5}}

	item := &CatalogItem{ID: 9, Requirements: Requirements{}}
	assert.NoError(t, item.CheckRequirements(c))

	item.Requirements = Requirements{
		MinLevel:      Some[int32](5),
		MinAttributes: map[AttributeCode]int32{AttributeSTR: 15, AttributeDEX: 10},
	}
	err := item.CheckRequirements(c)
	require.ErrorIs(t, err, ErrRequirementsNotMet)
	assert.True(t, IsValidation(err))

	var reqErr *RequirementsError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, []UnmetRequirement{
		{Requirement: "LEVEL", Required: 5, Actual: 4},
		{Requirement: "DEX", Required: 10, Actual: 5},
	}, reqErr.Unmet)
	assert.Contains(t, err.Error(), "DEX 5 < 10")
}

package main

import (
	"testing"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsYAML = `
items:
  - id: 1001
    name: Iron Sword
    slot: weapon
    bonuses: {STR: 4, dex: 1}
  - id: 2001
    name: Plate Mail
    slot: ARMOR
    bonuses: {CON: 6}
    requirements:
      min_level: 3
      min_attributes: {con: 12}
`

func TestParseCatalogItem(t *testing.T) {
	item, err := parseCatalogItem([]byte(itemsYAML), 2001)
	require.NoError(t, err)
	assert.Equal(t, "Plate Mail", item.Name)
	assert.Equal(t, model.SlotArmor, item.Slot)
	assert.Equal(t, model.Attributes{CON: 6}, item.Bonuses)

	lvl, ok := item.Requirements.MinLevel.Get()
	require.True(t, ok)
	assert.Equal(t, int32(3), lvl)
	assert.Equal(t, map[model.AttributeCode]int32{model.AttributeCON: 12}, item.Requirements.MinAttributes)

	item, err = parseCatalogItem([]byte(itemsYAML), 1001)
	require.NoError(t, err)
	assert.Equal(t, model.Attributes{STR: 4, DEX: 1}, item.Bonuses)
	assert.False(t, item.Requirements.MinLevel.IsSome())
	assert.Nil(t, item.Requirements.MinAttributes)
}

func TestParseCatalogItemSelection(t *testing.T) {
	_, err := parseCatalogItem([]byte(itemsYAML), 0)
	assert.ErrorContains(t, err, "pass --item")

	_, err = parseCatalogItem([]byte(itemsYAML), 9)
	assert.ErrorContains(t, err, "not found")

	_, err = parseCatalogItem([]byte("items: []"), 0)
	assert.ErrorContains(t, err, "no items")

	single := "items:\n  - {id: 5, name: Cap, slot: ARMOR, bonuses: {MND: 1}}\n"
	item, err := parseCatalogItem([]byte(single), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.ID)
}

func TestParseCatalogItemInvalid(t *testing.T) {
	_, err := parseCatalogItem([]byte("items:\n  - {id: 1, slot: RING}\n"), 1)
	assert.ErrorIs(t, err, model.ErrSlotInvalid)

	_, err = parseCatalogItem([]byte("items:\n  - {id: 1, slot: WEAPON, bonuses: {LUK: 2}}\n"), 1)
	assert.ErrorIs(t, err, model.ErrAttributeInvalid)

	_, err = parseCatalogItem([]byte("items: ["), 1)
	assert.Error(t, err)
}

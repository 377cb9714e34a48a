package service

import (
	"context"
	"testing"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsServiceDeriveStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	stats, err := f.stats.DeriveStats(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, stats.MeleeDamage, 1e-9)
	assert.InDelta(t, 52.0, stats.KiPower, 1e-9)
	assert.InDelta(t, 110.0, stats.Speed, 1e-9)
	assert.InDelta(t, 200.0, stats.MaxHP, 1e-9)

	_, err = f.equipment.Equip(ctx, id, "WEAPON", sword())
	require.NoError(t, err)

	stats, err = f.stats.DeriveStats(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(14), stats.Final.STR)
	assert.InDelta(t, 35.0, stats.MeleeDamage, 1e-9)
	assert.InDelta(t, 111.0, stats.Speed, 1e-9)
}

func TestStatsServiceRaceAndTransformation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.characters.Create(ctx, 1, "Vex", "DEMON")
	require.NoError(t, err)
	f.mutate(t, c.ID, func(c *model.Character) {
		c.Level = 5
		c.UnlockTransformation("FOCUS")
	})
	require.NoError(t, f.transformations.Activate(ctx, c.ID, "focus"))

	stats, err := f.stats.DeriveStats(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.4, stats.RaceModifier)
	assert.Equal(t, 1.2, stats.TransformMult)
	// STR 12 × 2.5 × 1.4 × 1.2
	assert.InDelta(t, 50.4, stats.MeleeDamage, 1e-9)
	// CON 8 × 1.8 × 1.4，防御不受变身影响
	assert.InDelta(t, 20.16, stats.PhysicalDefense, 1e-9)
}

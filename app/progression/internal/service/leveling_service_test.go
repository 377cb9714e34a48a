package service

import (
	"context"
	"math"
	"testing"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/gameconfig"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelingServiceExpRequired(t *testing.T) {
	f := newFixture(t)

	for level, want := range map[int32]int64{1: 100, 2: 110, 3: 121} {
		got, err := f.leveling.ExpRequired(level)
		require.NoError(t, err)
		assert.Equal(t, want, got, "level %d", level)
	}

	prev := int64(0)
	for level := int32(1); level <= f.rules.MaxLevel; level++ {
		got, err := f.leveling.ExpRequired(level)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	_, err := f.leveling.ExpRequired(0)
	assert.ErrorIs(t, err, model.ErrLevelOutOfRange)
	_, err = f.leveling.ExpRequired(f.rules.MaxLevel + 1)
	assert.ErrorIs(t, err, model.ErrLevelOutOfRange)

	total, err := f.leveling.TotalExpForLevel(3)
	require.NoError(t, err)
	assert.Equal(t, int64(210), total)
}

func TestLevelingServiceGainExperience(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	res, err := f.leveling.GainExperience(ctx, id, 250, "boss")
	require.NoError(t, err)
	assert.Equal(t, int32(3), res.Level)
	assert.Equal(t, int64(19), res.Experience)
	assert.Equal(t, int32(2), res.LevelsGained)
	assert.Equal(t, int64(10), res.Reward)

	require.NotNil(t, res.RewardEntry)
	assert.Equal(t, model.CategoryEvent, res.RewardEntry.Category)
	assert.Equal(t, int64(20), res.RewardEntry.BalanceAfter)

	c := f.load(t, id).Character
	assert.Equal(t, int32(3), c.Level)
	assert.Equal(t, int64(19), c.Experience)
	assert.Equal(t, int64(20), c.Balance)

	history, err := f.ledger.History(ctx, id)
	require.NoError(t, err)
	assert.Len(t, history, 2, "multiple level-ups are one credit")
	f.assertBalanced(t, id)
}

func TestLevelingServiceGainExperienceNoLevelUp(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	res, err := f.leveling.GainExperience(context.Background(), id, 50, "walk")
	require.NoError(t, err)
	assert.Zero(t, res.LevelsGained)
	assert.Zero(t, res.Reward)
	assert.Nil(t, res.RewardEntry)
	assert.Equal(t, int64(10), f.load(t, id).Character.Balance)
}

func TestLevelingServiceGainExperienceAtMaxLevel(t *testing.T) {
	f := newFixture(t, func(r *gameconfig.Rules) {
		r.MaxLevel = 5
		delete(r.Transformations, "AWAKENED")
		delete(r.Transformations, "ASCENDED")
	})
	ctx := context.Background()
	id := f.create(t)
	require.NoError(t, f.leveling.SetLevel(ctx, id, 5))

	res, err := f.leveling.GainExperience(ctx, id, 100000, "grind")
	require.NoError(t, err)
	assert.Equal(t, int32(5), res.Level)
	assert.Equal(t, int64(100000), res.Experience)
	assert.Zero(t, res.LevelsGained)
	assert.Equal(t, int64(10), f.load(t, id).Character.Balance)

	p, err := f.leveling.Progress(ctx, id)
	require.NoError(t, err)
	assert.True(t, p.IsMaxLevel)
	assert.Zero(t, p.ExpInLevel)
	assert.Zero(t, p.ExpRequired)
	assert.Equal(t, float64(100), p.Percentage)
}

func TestLevelingServiceGainExperienceNeverOverflows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	first, err := f.leveling.GainExperience(ctx, id, math.MaxInt64, "overflow")
	require.NoError(t, err)
	assert.Equal(t, f.rules.MaxLevel, first.Level)
	assert.Positive(t, first.Experience)

	second, err := f.leveling.GainExperience(ctx, id, math.MaxInt64, "overflow")
	require.NoError(t, err)
	assert.Equal(t, f.rules.MaxLevel, second.Level)
	assert.Equal(t, int64(math.MaxInt64), second.Experience)
	assert.Zero(t, second.LevelsGained)

	c := f.load(t, id).Character
	assert.Equal(t, int64(math.MaxInt64), c.Experience)
	f.assertBalanced(t, id)
}

func TestLevelingServiceZeroRewardFromConfig(t *testing.T) {
	rules, err := gameconfig.Build(&gameconfig.Rules{LevelUpReward: gameconfig.Int64(0)})
	require.NoError(t, err)
	f := newFixture(t, func(r *gameconfig.Rules) { *r = *rules })
	ctx := context.Background()
	id := f.create(t)

	res, err := f.leveling.GainExperience(ctx, id, 250, "quest")
	require.NoError(t, err)
	assert.Equal(t, int32(2), res.LevelsGained)
	assert.Zero(t, res.Reward)
	assert.Nil(t, res.RewardEntry)
	assert.Equal(t, int64(10), f.load(t, id).Character.Balance)
}

func TestLevelingServiceGainExperienceInvalid(t *testing.T) {
	f := newFixture(t)
	id := f.create(t)

	for _, amount := range []int64{0, -10} {
		_, err := f.leveling.GainExperience(context.Background(), id, amount, "bad")
		assert.ErrorIs(t, err, model.ErrInvalidExperienceAmount)
	}
}

func TestLevelingServiceProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	_, err := f.leveling.GainExperience(ctx, id, 55, "quest")
	require.NoError(t, err)

	p, err := f.leveling.Progress(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int32(1), p.Level)
	assert.Equal(t, int64(55), p.ExpInLevel)
	assert.Equal(t, int64(110), p.ExpRequired)
	assert.InDelta(t, 50.0, p.Percentage, 0.001)
	assert.False(t, p.IsMaxLevel)
}

func TestLevelingServiceOperatorOverrides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t)

	_, err := f.leveling.GainExperience(ctx, id, 40, "quest")
	require.NoError(t, err)

	require.NoError(t, f.leveling.SetLevel(ctx, id, 12))
	c := f.load(t, id).Character
	assert.Equal(t, int32(12), c.Level)
	assert.Zero(t, c.Experience)
	assert.Equal(t, int64(10), c.Balance, "no reward for overrides")

	err = f.leveling.SetLevel(ctx, id, 0)
	assert.ErrorIs(t, err, model.ErrLevelOutOfRange)
	err = f.leveling.SetLevel(ctx, id, f.rules.MaxLevel+1)
	assert.ErrorIs(t, err, model.ErrLevelOutOfRange)

	_, err = f.leveling.GainExperience(ctx, id, 30, "quest")
	require.NoError(t, err)
	require.NoError(t, f.leveling.ResetExperience(ctx, id))
	c = f.load(t, id).Character
	assert.Equal(t, int32(12), c.Level)
	assert.Zero(t, c.Experience)
	f.assertBalanced(t, id)
}

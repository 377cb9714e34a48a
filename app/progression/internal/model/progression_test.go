package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpRequired(t *testing.T) {
	curve := NewExpCurve(100)

	for level, want := range map[int32]int64{1: 100, 2: 110, 3: 121, 4: 133} {
		got, err := curve.ExpRequired(level)
		require.NoError(t, err)
		assert.Equal(t, want, got, "level %d", level)
	}

	prev := int64(0)
	for level := int32(1); level <= curve.MaxLevel(); level++ {
		got, err := curve.ExpRequired(level)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	for _, level := range []int32{0, -1, 101} {
		_, err := curve.ExpRequired(level)
		assert.ErrorIs(t, err, ErrLevelOutOfRange)
	}
}

func TestTotalExpForLevel(t *testing.T) {
	curve := NewExpCurve(100)

	total, err := curve.TotalExpForLevel(1)
	require.NoError(t, err)
	assert.Zero(t, total)

	total, err = curve.TotalExpForLevel(4)
	require.NoError(t, err)
	assert.Equal(t, int64(100+110+121), total)

	_, err = curve.TotalExpForLevel(0)
	assert.ErrorIs(t, err, ErrLevelOutOfRange)
}

func TestExpCurveApply(t *testing.T) {
	curve := NewExpCurve(100)

	level, exp, gained := curve.Apply(1, 0, 250)
	assert.Equal(t, int32(3), level)
	assert.Equal(t, int64(19), exp)
	assert.Equal(t, int32(2), gained)

	level, exp, gained = curve.Apply(1, 0, 109)
	assert.Equal(t, int32(1), level)
	assert.Equal(t, int64(109), exp)
	assert.Zero(t, gained)

	// 满级后只累积经验
	small := NewExpCurve(3)
	level, exp, gained = small.Apply(3, 5, 10_000)
	assert.Equal(t, int32(3), level)
	assert.Equal(t, int64(10_005), exp)
	assert.Zero(t, gained)

	level, exp, gained = small.Apply(1, 0, 10_000)
	assert.Equal(t, int32(3), level)
	assert.Equal(t, int64(10_000-110-121), exp)
	assert.Equal(t, int32(2), gained)
}

func TestExpCurveApplySaturates(t *testing.T) {
	small := NewExpCurve(3)

	level, exp, gained := small.Apply(3, math.MaxInt64-10, 100)
	assert.Equal(t, int32(3), level)
	assert.Equal(t, int64(math.MaxInt64), exp)
	assert.Zero(t, gained)

	level, exp, _ = small.Apply(3, math.MaxInt64, math.MaxInt64)
	assert.Equal(t, int32(3), level)
	assert.Equal(t, int64(math.MaxInt64), exp)
}

func TestExpCurveProgress(t *testing.T) {
	curve := NewExpCurve(10)

	p := curve.Progress(1, 55)
	assert.Equal(t, int64(55), p.ExpInLevel)
	assert.Equal(t, int64(110), p.ExpRequired)
	assert.InDelta(t, 50.0, p.Percentage, 1e-9)
	assert.False(t, p.IsMaxLevel)

	p = curve.Progress(10, 999)
	assert.Zero(t, p.ExpInLevel)
	assert.Zero(t, p.ExpRequired)
	assert.Equal(t, 100.0, p.Percentage)
	assert.True(t, p.IsMaxLevel)
}

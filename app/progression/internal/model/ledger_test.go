package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCategory("minigame")
	require.NoError(t, err)
	assert.Equal(t, CategoryMinigame, got)

	_, err = ParseCategory("LOTTERY")
	assert.ErrorIs(t, err, ErrCategoryInvalid)
}

func TestReasonCategory(t *testing.T) {
	tests := []struct {
		reason string
		want   Category
		ok     bool
	}{
		{"EVENT: summer festival", CategoryEvent, true},
		{"[achievement] first blood", CategoryAchievement, true},
		{"  SKILL:fireball", CategorySkill, true},
		{"quest reward", CategoryUnknown, false},
		{"[broken", CategoryUnknown, false},
		{"TIME: 12:00", CategoryUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ReasonCategory(tt.reason)
		assert.Equal(t, tt.ok, ok, tt.reason)
		assert.Equal(t, tt.want, got, tt.reason)
	}
}

func TestSummarize(t *testing.T) {
	entries := []*LedgerEntry{
		{ID: 1, Amount: 10, Category: CategoryEvent, Reason: "starting balance"},
		{ID: 2, Amount: -8, Category: CategoryAllocation, Reason: "allocate STR"},
		{ID: 3, Amount: 5, Category: CategoryMinigame, Reason: "EVENT: mislabelled"},
		{ID: 4, Amount: 7, Category: CategoryUnknown, RawCategory: "BONUS", Reason: "[MASTER] legacy"},
		{ID: 5, Amount: 2, Category: CategoryUnknown, RawCategory: "BONUS", Reason: "legacy"},
	}

	s := Summarize(42, 16, entries)
	assert.Equal(t, int64(42), s.CharacterID)
	assert.Equal(t, int64(16), s.Balance)
	assert.Equal(t, int64(24), s.LifetimeCredited)
	assert.Equal(t, int64(8), s.LifetimeDebited)
	assert.Equal(t, map[Category]int64{
		CategoryEvent:      10,
		CategoryAllocation: -8,
		CategoryMinigame:   5,
		CategoryMaster:     7,
	}, s.ByCategory)
	assert.Equal(t, int64(2), s.Unclassified)
	assert.Equal(t, []int64{3}, s.Mismatches)
}

func TestAggregatePost(t *testing.T) {
	now := time.Now()
	agg := NewAggregate(&Character{ID: 1, Balance: 3}, NewEquipmentSlot(1, now))

	e, err := agg.Post(5, CategoryEvent, "gift", None[int64](), now)
	require.NoError(t, err)
	assert.Equal(t, int64(8), e.BalanceAfter)
	assert.Equal(t, "EVENT", e.RawCategory)

	_, err = agg.Post(-9, CategorySkill, "too much", Some[int64](99), now)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.False(t, IsValidation(err))
	assert.Equal(t, int64(8), agg.Character.Balance)
	assert.Len(t, agg.Pending(), 1)

	cp := agg.Clone()
	cp.Pending()[0].Amount = 100
	assert.Equal(t, int64(5), agg.Pending()[0].Amount)

	agg.ClearPending()
	assert.Empty(t, agg.Pending())
}

func TestAuditReport(t *testing.T) {
	r := &AuditReport{StoredBalance: 10, LedgerSum: 10}
	assert.True(t, r.Consistent())
	r.LedgerSum = 7
	assert.Equal(t, int64(3), r.Drift())
	assert.False(t, r.Consistent())
}

package main

import (
	"time"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/service"
)

// 输出视图，字段名即对外格式

type characterView struct {
	ID                   int64            `json:"id" yaml:"id"`
	AccountID            int64            `json:"account_id" yaml:"account_id"`
	Name                 string           `json:"name" yaml:"name"`
	Race                 string           `json:"race" yaml:"race"`
	Level                int32            `json:"level" yaml:"level"`
	Experience           int64            `json:"experience" yaml:"experience"`
	Balance              int64            `json:"balance" yaml:"balance"`
	Attributes           model.Attributes `json:"attributes" yaml:"attributes"`
	ActiveTransformation *string          `json:"active_transformation,omitempty" yaml:"active_transformation,omitempty"`
	Transformations      []string         `json:"transformations,omitempty" yaml:"transformations,omitempty"`
	Active               bool             `json:"active" yaml:"active"`
	Version              int64            `json:"version" yaml:"version"`
	CreatedAt            time.Time        `json:"created_at" yaml:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" yaml:"updated_at"`
}

func newCharacterView(c *model.Character) characterView {
	return characterView{
		ID:                   c.ID,
		AccountID:            c.AccountID,
		Name:                 c.Name,
		Race:                 c.Race,
		Level:                c.Level,
		Experience:           c.Experience,
		Balance:              c.Balance,
		Attributes:           c.Attributes,
		ActiveTransformation: c.ActiveTransformation.Ptr(),
		Transformations:      c.Transformations,
		Active:               c.Active,
		Version:              c.Version,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

type entryView struct {
	ID           int64     `json:"id" yaml:"id"`
	Amount       int64     `json:"amount" yaml:"amount"`
	BalanceAfter int64     `json:"balance_after" yaml:"balance_after"`
	Category     string    `json:"category" yaml:"category"`
	Reason       string    `json:"reason" yaml:"reason"`
	Actor        *int64    `json:"actor,omitempty" yaml:"actor,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

func newEntryView(e *model.LedgerEntry) *entryView {
	if e == nil {
		return nil
	}
	category := e.Category.String()
	if e.Category == model.CategoryUnknown {
		category = e.RawCategory
	}
	return &entryView{
		ID:           e.ID,
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Category:     category,
		Reason:       e.Reason,
		Actor:        e.Actor.Ptr(),
		CreatedAt:    e.CreatedAt,
	}
}

func newEntryViews(entries []*model.LedgerEntry) []*entryView {
	out := make([]*entryView, len(entries))
	for i, e := range entries {
		out[i] = newEntryView(e)
	}
	return out
}

type summaryView struct {
	CharacterID      int64            `json:"character_id" yaml:"character_id"`
	Balance          int64            `json:"balance" yaml:"balance"`
	LifetimeCredited int64            `json:"lifetime_credited" yaml:"lifetime_credited"`
	LifetimeDebited  int64            `json:"lifetime_debited" yaml:"lifetime_debited"`
	ByCategory       map[string]int64 `json:"by_category" yaml:"by_category"`
	Unclassified     int64            `json:"unclassified,omitempty" yaml:"unclassified,omitempty"`
	Mismatches       []int64          `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

func newSummaryView(s *model.LedgerSummary) summaryView {
	byCategory := make(map[string]int64, len(s.ByCategory))
	for c, total := range s.ByCategory {
		byCategory[c.String()] = total
	}
	return summaryView{
		CharacterID:      s.CharacterID,
		Balance:          s.Balance,
		LifetimeCredited: s.LifetimeCredited,
		LifetimeDebited:  s.LifetimeDebited,
		ByCategory:       byCategory,
		Unclassified:     s.Unclassified,
		Mismatches:       s.Mismatches,
	}
}

type auditView struct {
	CharacterID   int64 `json:"character_id" yaml:"character_id"`
	StoredBalance int64 `json:"stored_balance" yaml:"stored_balance"`
	LedgerSum     int64 `json:"ledger_sum" yaml:"ledger_sum"`
	EntryCount    int   `json:"entry_count" yaml:"entry_count"`
	Drift         int64 `json:"drift" yaml:"drift"`
	Consistent    bool  `json:"consistent" yaml:"consistent"`
}

func newAuditView(r *model.AuditReport) auditView {
	return auditView{
		CharacterID:   r.CharacterID,
		StoredBalance: r.StoredBalance,
		LedgerSum:     r.LedgerSum,
		EntryCount:    r.EntryCount,
		Drift:         r.Drift(),
		Consistent:    r.Consistent(),
	}
}

type allocationView struct {
	Attribute string     `json:"attribute" yaml:"attribute"`
	Value     int32      `json:"value" yaml:"value"`
	Cost      int64      `json:"cost" yaml:"cost"`
	Balance   int64      `json:"balance" yaml:"balance"`
	Entry     *entryView `json:"entry" yaml:"entry"`
}

func newAllocationView(r *service.AllocationResult) allocationView {
	return allocationView{
		Attribute: r.Attribute.String(),
		Value:     r.Value,
		Cost:      r.Cost,
		Balance:   r.Balance,
		Entry:     newEntryView(r.Entry),
	}
}

type experienceView struct {
	Level        int32      `json:"level" yaml:"level"`
	Experience   int64      `json:"experience" yaml:"experience"`
	LevelsGained int32      `json:"levels_gained" yaml:"levels_gained"`
	Reward       int64      `json:"reward" yaml:"reward"`
	RewardEntry  *entryView `json:"reward_entry,omitempty" yaml:"reward_entry,omitempty"`
}

func newExperienceView(r *service.ExperienceResult) experienceView {
	return experienceView{
		Level:        r.Level,
		Experience:   r.Experience,
		LevelsGained: r.LevelsGained,
		Reward:       r.Reward,
		RewardEntry:  newEntryView(r.RewardEntry),
	}
}

type progressView struct {
	Level       int32   `json:"level" yaml:"level"`
	ExpInLevel  int64   `json:"exp_in_level" yaml:"exp_in_level"`
	ExpRequired int64   `json:"exp_required" yaml:"exp_required"`
	Percentage  float64 `json:"percentage" yaml:"percentage"`
	IsMaxLevel  bool    `json:"is_max_level" yaml:"is_max_level"`
}

func newProgressView(p model.Progress) progressView {
	return progressView{
		Level:       p.Level,
		ExpInLevel:  p.ExpInLevel,
		ExpRequired: p.ExpRequired,
		Percentage:  p.Percentage,
		IsMaxLevel:  p.IsMaxLevel,
	}
}

type itemView struct {
	ItemID     int64            `json:"item_id" yaml:"item_id"`
	Name       string           `json:"name" yaml:"name"`
	Bonuses    model.Attributes `json:"bonuses" yaml:"bonuses"`
	EquippedAt time.Time        `json:"equipped_at" yaml:"equipped_at"`
}

func newItemView(item *model.EquippedItem) *itemView {
	if item == nil {
		return nil
	}
	return &itemView{
		ItemID:     item.ItemID,
		Name:       item.Name,
		Bonuses:    item.Bonuses,
		EquippedAt: item.EquippedAt,
	}
}

type equipmentView struct {
	Status string    `json:"status" yaml:"status"`
	Weapon *itemView `json:"weapon,omitempty" yaml:"weapon,omitempty"`
	Armor  *itemView `json:"armor,omitempty" yaml:"armor,omitempty"`
}

func newEquipmentView(e *model.EquipmentSlot) equipmentView {
	return equipmentView{
		Status: e.Status().String(),
		Weapon: newItemView(e.Weapon),
		Armor:  newItemView(e.Armor),
	}
}

type equipResultView struct {
	Status   string    `json:"status" yaml:"status"`
	Item     *itemView `json:"item" yaml:"item"`
	Replaced *itemView `json:"replaced,omitempty" yaml:"replaced,omitempty"`
}

func newEquipResultView(r *service.EquipResult) equipResultView {
	return equipResultView{
		Status:   r.Status.String(),
		Item:     newItemView(r.Item),
		Replaced: newItemView(r.Replaced),
	}
}

type statsView struct {
	Final           model.Attributes `json:"final" yaml:"final"`
	RaceModifier    float64          `json:"race_modifier" yaml:"race_modifier"`
	TransformMult   float64          `json:"transformation_multiplier" yaml:"transformation_multiplier"`
	MeleeDamage     float64          `json:"melee_damage" yaml:"melee_damage"`
	KiPower         float64          `json:"ki_power" yaml:"ki_power"`
	Speed           float64          `json:"speed" yaml:"speed"`
	PhysicalDefense float64          `json:"physical_defense" yaml:"physical_defense"`
	KiDefense       float64          `json:"ki_defense" yaml:"ki_defense"`
	MentalDefense   float64          `json:"mental_defense" yaml:"mental_defense"`
	MaxHP           float64          `json:"max_hp" yaml:"max_hp"`
	MaxKi           float64          `json:"max_ki" yaml:"max_ki"`
	ActionTime      float64          `json:"action_time" yaml:"action_time"`
}

func newStatsView(s *model.DerivedStats) statsView {
	return statsView{
		Final:           s.Final,
		RaceModifier:    s.RaceModifier,
		TransformMult:   s.TransformMult,
		MeleeDamage:     s.MeleeDamage,
		KiPower:         s.KiPower,
		Speed:           s.Speed,
		PhysicalDefense: s.PhysicalDefense,
		KiDefense:       s.KiDefense,
		MentalDefense:   s.MentalDefense,
		MaxHP:           s.MaxHP,
		MaxKi:           s.MaxKi,
		ActionTime:      s.ActionTime,
	}
}

type unlockView struct {
	Transformation  string     `json:"transformation" yaml:"transformation"`
	AlreadyUnlocked bool       `json:"already_unlocked" yaml:"already_unlocked"`
	Cost            int64      `json:"cost" yaml:"cost"`
	Entry           *entryView `json:"entry,omitempty" yaml:"entry,omitempty"`
}

func newUnlockView(r *service.UnlockResult) unlockView {
	return unlockView{
		Transformation:  r.Transformation,
		AlreadyUnlocked: r.AlreadyUnlocked,
		Cost:            r.Cost,
		Entry:           newEntryView(r.Entry),
	}
}

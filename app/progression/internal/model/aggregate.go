package model

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Aggregate 单个角色的一致性单元：角色、装备槽以及本次待追加的流水
// 流水按角色 ID 单独存储，不互相持有指针
type Aggregate struct {
	Character *Character
	Equipment *EquipmentSlot

	pending []*LedgerEntry
}

// NewAggregate 组装聚合
func NewAggregate(c *Character, e *EquipmentSlot) *Aggregate {
	return &Aggregate{Character: c, Equipment: e}
}

// Post 变更余额并记录一条流水，余额不能为负
// 流水 ID 由仓储在提交时分配
func (a *Aggregate) Post(amount int64, category Category, reason string, actor Optional[int64], now time.Time) (*LedgerEntry, error) {
	after := a.Character.Balance + amount
	if after < 0 {
		return nil, errors.Wrapf(ErrInsufficientBalance, "balance %d, required %d", a.Character.Balance, -amount)
	}
	a.Character.Balance = after

	entry := &LedgerEntry{
		CharacterID:  a.Character.ID,
		Amount:       amount,
		BalanceAfter: after,
		Category:     category,
		RawCategory:  category.String(),
		Reason:       reason,
		Actor:        actor,
		CreatedAt:    now,
	}
	a.pending = append(a.pending, entry)
	return entry, nil
}

// Pending 待提交的流水
func (a *Aggregate) Pending() []*LedgerEntry {
	return a.pending
}

// ClearPending 提交后清空
func (a *Aggregate) ClearPending() {
	a.pending = nil
}

// Clone 深拷贝，用于在失败时丢弃修改
func (a *Aggregate) Clone() *Aggregate {
	out := &Aggregate{
		Character: a.Character.Clone(),
		Equipment: a.Equipment.Clone(),
	}
	for _, e := range a.pending {
		cp := *e
		out.pending = append(out.pending, &cp)
	}
	return out
}

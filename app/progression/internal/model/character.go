package model

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
)

// Character 角色成长状态，对应 characters 表
type Character struct {
	ID        int64
	AccountID int64
	Name      string
	Race      string

	// 等级成长
	Level      int32
	Experience int64

	// 可用积分（TP）
	Balance int64

	// 变身
	ActiveTransformation Optional[string]
	Transformations      []string // 已解锁，升序

	Attributes Attributes

	// 退役后不可再修改
	Active bool

	// 乐观锁版本号，每次提交 +1
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCharacter 创建 1 级、0 经验的新角色，余额由开局流水写入
func NewCharacter(accountID int64, name, race string, seed Attributes, now time.Time) *Character {
	return &Character{
		AccountID:  accountID,
		Name:       name,
		Race:       race,
		Level:      1,
		Attributes: seed,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// EnsureActive 退役角色返回 ErrCharacterRetired
func (c *Character) EnsureActive() error {
	if !c.Active {
		return errors.Wrapf(ErrCharacterRetired, "character %d", c.ID)
	}
	return nil
}

// HasTransformation 是否已解锁
func (c *Character) HasTransformation(id string) bool {
	_, found := slices.BinarySearch(c.Transformations, id)
	return found
}

// UnlockTransformation 记录解锁，已解锁返回 false
func (c *Character) UnlockTransformation(id string) bool {
	i, found := slices.BinarySearch(c.Transformations, id)
	if found {
		return false
	}
	c.Transformations = slices.Insert(c.Transformations, i, id)
	return true
}

// Clone 深拷贝
func (c *Character) Clone() *Character {
	out := *c
	out.Transformations = slices.Clone(c.Transformations)
	return &out
}

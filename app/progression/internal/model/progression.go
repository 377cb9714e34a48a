package model

import (
	"math"

	"github.com/cockroachdb/errors"
)

const (
	baseExpRequired = 100
	expGrowthRate   = 1.1
)

// ExpCurve 升级经验曲线：1 级 100，此后每级为上一级 ×1.1 四舍五入
type ExpCurve struct {
	maxLevel int32
	required []int64 // required[i] 对应等级 i+1
}

// NewExpCurve 预计算 [1, maxLevel] 的经验需求
func NewExpCurve(maxLevel int32) *ExpCurve {
	if maxLevel < 1 {
		maxLevel = 1
	}
	required := make([]int64, maxLevel)
	required[0] = baseExpRequired
	for i := 1; i < len(required); i++ {
		required[i] = int64(math.Round(float64(required[i-1]) * expGrowthRate))
	}
	return &ExpCurve{maxLevel: maxLevel, required: required}
}

// MaxLevel 等级上限
func (c *ExpCurve) MaxLevel() int32 {
	return c.maxLevel
}

// ExpRequired 返回 level 对应的经验需求
func (c *ExpCurve) ExpRequired(level int32) (int64, error) {
	if level < 1 || level > c.maxLevel {
		return 0, errors.Wrapf(ErrLevelOutOfRange, "level %d not in [1, %d]", level, c.maxLevel)
	}
	return c.required[level-1], nil
}

// TotalExpForLevel 累计 ExpRequired(1..level-1)
func (c *ExpCurve) TotalExpForLevel(level int32) (int64, error) {
	if level < 1 || level > c.maxLevel {
		return 0, errors.Wrapf(ErrLevelOutOfRange, "level %d not in [1, %d]", level, c.maxLevel)
	}
	var total int64
	for i := int32(0); i < level-1; i++ {
		total += c.required[i]
	}
	return total, nil
}

// Apply 在 (level, exp) 上累加经验，返回新等级、剩余经验和升级次数
// 满级后经验继续累积但不再升级，累计值在 math.MaxInt64 处封顶
func (c *ExpCurve) Apply(level int32, exp, amount int64) (newLevel int32, newExp int64, gained int32) {
	newLevel, newExp = level, saturatingAdd(exp, amount)
	for newLevel < c.maxLevel {
		need := c.required[newLevel] // ExpRequired(newLevel+1)
		if newExp < need {
			break
		}
		newExp -= need
		newLevel++
		gained++
	}
	return newLevel, newExp, gained
}

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Progress 等级进度
type Progress struct {
	Level       int32
	ExpInLevel  int64
	ExpRequired int64
	Percentage  float64
	IsMaxLevel  bool
}

// Progress 计算进度，满级时前两项为 0、百分比为 100
func (c *ExpCurve) Progress(level int32, exp int64) Progress {
	if level >= c.maxLevel {
		return Progress{Level: level, Percentage: 100, IsMaxLevel: true}
	}
	need := c.required[level]
	pct := float64(exp) / float64(need) * 100
	if pct > 100 {
		pct = 100
	}
	return Progress{
		Level:       level,
		ExpInLevel:  exp,
		ExpRequired: need,
		Percentage:  pct,
	}
}

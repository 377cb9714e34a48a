package model

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Category 流水分类，字符串编码对外保持稳定
type Category int8

const (
	// CategoryUnknown 库中存在但无法识别的历史分类
	CategoryUnknown Category = iota
	CategoryAllocation
	CategoryMinigame
	CategoryMaster
	CategoryEvent
	CategoryAchievement
	CategorySkill
	CategoryTransformation
)

// AllCategories 全部已知分类
var AllCategories = []Category{
	CategoryAllocation, CategoryMinigame, CategoryMaster, CategoryEvent,
	CategoryAchievement, CategorySkill, CategoryTransformation,
}

func (c Category) String() string {
	switch c {
	case CategoryAllocation:
		return "ALLOCATION"
	case CategoryMinigame:
		return "MINIGAME"
	case CategoryMaster:
		return "MASTER"
	case CategoryEvent:
		return "EVENT"
	case CategoryAchievement:
		return "ACHIEVEMENT"
	case CategorySkill:
		return "SKILL"
	case CategoryTransformation:
		return "TRANSFORMATION"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory 解析分类（大小写不敏感）
func ParseCategory(s string) (Category, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range AllCategories {
		if c.String() == key {
			return c, nil
		}
	}
	return CategoryUnknown, errors.Wrapf(ErrCategoryInvalid, "category %q", s)
}

// LedgerEntry 积分流水，不可变，只追加
type LedgerEntry struct {
	ID           int64
	CharacterID  int64
	Amount       int64 // 正数为入账，负数为扣减
	BalanceAfter int64
	Category     Category
	// RawCategory 库中原始分类字符串，Category 为 Unknown 时用于排查
	RawCategory string
	Reason      string
	Actor       Optional[int64] // 缺省表示系统发起
	CreatedAt   time.Time
}

// IsCredit 是否为入账
func (e *LedgerEntry) IsCredit() bool {
	return e.Amount > 0
}

// ReasonCategory 解析理由中的历史前缀 "CAT:" 或 "[CAT]"
func ReasonCategory(reason string) (Category, bool) {
	r := strings.TrimSpace(reason)

	var tag string
	switch {
	case strings.HasPrefix(r, "["):
		end := strings.IndexByte(r, ']')
		if end < 0 {
			return CategoryUnknown, false
		}
		tag = r[1:end]
	default:
		end := strings.IndexByte(r, ':')
		if end < 0 {
			return CategoryUnknown, false
		}
		tag = r[:end]
	}

	c, err := ParseCategory(tag)
	if err != nil {
		return CategoryUnknown, false
	}
	return c, true
}

// LedgerSummary 积分汇总
type LedgerSummary struct {
	CharacterID      int64
	Balance          int64
	LifetimeCredited int64
	LifetimeDebited  int64 // 绝对值
	ByCategory       map[Category]int64
	// Unclassified 分类未知且理由无可识别前缀的净额
	Unclassified int64
	// Mismatches 分类与理由前缀不一致的流水 ID，只标记不重新归类
	Mismatches []int64
}

// Summarize 汇总流水，分类字段优先，仅对未知分类使用理由前缀兜底
func Summarize(characterID, balance int64, entries []*LedgerEntry) *LedgerSummary {
	s := &LedgerSummary{
		CharacterID: characterID,
		Balance:     balance,
		ByCategory:  make(map[Category]int64, len(AllCategories)),
	}

	for _, e := range entries {
		if e.Amount >= 0 {
			s.LifetimeCredited += e.Amount
		} else {
			s.LifetimeDebited += -e.Amount
		}

		prefixed, hasPrefix := ReasonCategory(e.Reason)
		switch {
		case e.Category != CategoryUnknown:
			s.ByCategory[e.Category] += e.Amount
			if hasPrefix && prefixed != e.Category {
				s.Mismatches = append(s.Mismatches, e.ID)
			}
		case hasPrefix:
			s.ByCategory[prefixed] += e.Amount
		default:
			s.Unclassified += e.Amount
		}
	}
	return s
}

// AuditReport 余额核对结果
type AuditReport struct {
	CharacterID   int64
	StoredBalance int64
	LedgerSum     int64
	EntryCount    int
}

// Drift 存储余额与流水合计之差，非零即缺陷
func (r *AuditReport) Drift() int64 {
	return r.StoredBalance - r.LedgerSum
}

// Consistent 是否一致
func (r *AuditReport) Consistent() bool {
	return r.Drift() == 0
}

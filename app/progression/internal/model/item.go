package model

import (
	"fmt"
	"strings"
)

// Requirements 物品穿戴需求，未设置的项视为满足
type Requirements struct {
	MinLevel      Optional[int32]
	MinAttributes map[AttributeCode]int32
}

// CatalogItem 由物品目录解析好的物品
type CatalogItem struct {
	ID           int64
	Name         string
	Slot         SlotType
	Bonuses      Attributes
	Requirements Requirements
}

// UnmetRequirement 单项未满足的需求
type UnmetRequirement struct {
	Requirement string // LEVEL 或属性编码
	Required    int32
	Actual      int32
}

func (u UnmetRequirement) String() string {
	return fmt.Sprintf("%s %d < %d", u.Requirement, u.Actual, u.Required)
}

// RequirementsError 列出所有未满足的需求，errors.Is 匹配 ErrRequirementsNotMet
type RequirementsError struct {
	ItemID int64
	Unmet  []UnmetRequirement
}

func (e *RequirementsError) Error() string {
	parts := make([]string, len(e.Unmet))
	for i, u := range e.Unmet {
		parts[i] = u.String()
	}
	return fmt.Sprintf("%s: item %d: %s", ErrRequirementsNotMet, e.ItemID, strings.Join(parts, ", "))
}

func (e *RequirementsError) Is(target error) bool {
	return target == ErrRequirementsNotMet
}

// Check 按角色等级与基础属性校验需求，返回全部未满足项
func (r Requirements) Check(c *Character) []UnmetRequirement {
	var unmet []UnmetRequirement
	if lvl, ok := r.MinLevel.Get(); ok && c.Level < lvl {
		unmet = append(unmet, UnmetRequirement{Requirement: "LEVEL", Required: lvl, Actual: c.Level})
	}
	for _, code := range AllAttributes {
		min, ok := r.MinAttributes[code]
		if !ok {
			continue
		}
		if actual := c.Attributes.Get(code); actual < min {
			unmet = append(unmet, UnmetRequirement{Requirement: code.String(), Required: min, Actual: actual})
		}
	}
	return unmet
}

// CheckRequirements 校验物品需求
func (i *CatalogItem) CheckRequirements(c *Character) error {
	if unmet := i.Requirements.Check(c); len(unmet) > 0 {
		return &RequirementsError{ItemID: i.ID, Unmet: unmet}
	}
	return nil
}

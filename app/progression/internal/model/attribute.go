package model

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// MaxAttributeValue 单项基础属性上限
const MaxAttributeValue int32 = 120

// AttributeCode 六项基础属性
type AttributeCode int8

const (
	AttributeSTR AttributeCode = iota + 1
	AttributeDEX
	AttributeCON
	AttributeWIL
	AttributeMND
	AttributeSPI
)

// AllAttributes 固定顺序的全部属性
var AllAttributes = []AttributeCode{
	AttributeSTR, AttributeDEX, AttributeCON, AttributeWIL, AttributeMND, AttributeSPI,
}

// String 返回规范化（大写）编码
func (c AttributeCode) String() string {
	switch c {
	case AttributeSTR:
		return "STR"
	case AttributeDEX:
		return "DEX"
	case AttributeCON:
		return "CON"
	case AttributeWIL:
		return "WIL"
	case AttributeMND:
		return "MND"
	case AttributeSPI:
		return "SPI"
	default:
		return "UNKNOWN"
	}
}

// Valid 是否为六项之一
func (c AttributeCode) Valid() bool {
	return c >= AttributeSTR && c <= AttributeSPI
}

// ParseAttributeCode 解析属性编码（大小写不敏感）
func ParseAttributeCode(s string) (AttributeCode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STR":
		return AttributeSTR, nil
	case "DEX":
		return AttributeDEX, nil
	case "CON":
		return AttributeCON, nil
	case "WIL":
		return AttributeWIL, nil
	case "MND":
		return AttributeMND, nil
	case "SPI":
		return AttributeSPI, nil
	default:
		return 0, errors.Wrapf(ErrAttributeInvalid, "attribute code %q", s)
	}
}

// Attributes 六项属性值，同时用于基础属性与装备加成
type Attributes struct {
	STR int32 `json:"STR,omitempty" yaml:"STR,omitempty"`
	DEX int32 `json:"DEX,omitempty" yaml:"DEX,omitempty"`
	CON int32 `json:"CON,omitempty" yaml:"CON,omitempty"`
	WIL int32 `json:"WIL,omitempty" yaml:"WIL,omitempty"`
	MND int32 `json:"MND,omitempty" yaml:"MND,omitempty"`
	SPI int32 `json:"SPI,omitempty" yaml:"SPI,omitempty"`
}

// Get 按编码取值，未知编码返回 0
func (a Attributes) Get(code AttributeCode) int32 {
	switch code {
	case AttributeSTR:
		return a.STR
	case AttributeDEX:
		return a.DEX
	case AttributeCON:
		return a.CON
	case AttributeWIL:
		return a.WIL
	case AttributeMND:
		return a.MND
	case AttributeSPI:
		return a.SPI
	default:
		return 0
	}
}

// Set 按编码赋值
func (a *Attributes) Set(code AttributeCode, v int32) {
	switch code {
	case AttributeSTR:
		a.STR = v
	case AttributeDEX:
		a.DEX = v
	case AttributeCON:
		a.CON = v
	case AttributeWIL:
		a.WIL = v
	case AttributeMND:
		a.MND = v
	case AttributeSPI:
		a.SPI = v
	}
}

// Add 逐项相加
func (a Attributes) Add(b Attributes) Attributes {
	var out Attributes
	for _, code := range AllAttributes {
		out.Set(code, a.Get(code)+b.Get(code))
	}
	return out
}

// AllocationUnitCost 属性从 v-1 提升到 v 的单点价格（按提升后的值分档）
func AllocationUnitCost(resulting int32) int64 {
	switch {
	case resulting <= 50:
		return 1
	case resulting <= 80:
		return 2
	default:
		return 3
	}
}

// AllocationCost 从 current 加 points 点的总价，逐点累加，跨档时分别计价
func AllocationCost(current, points int32) int64 {
	var cost int64
	for v := current + 1; v <= current+points; v++ {
		cost += AllocationUnitCost(v)
	}
	return cost
}

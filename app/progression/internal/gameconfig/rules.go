package gameconfig

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/config"
)

// Race 种族配置
type Race struct {
	Modifier float64          `mapstructure:"modifier" json:"modifier" validate:"gt=0,lte=3"`
	Seed     model.Attributes `mapstructure:"seed" json:"seed"`
}

// Transformation 变身配置
type Transformation struct {
	Multiplier float64 `mapstructure:"multiplier" json:"multiplier" validate:"gt=0,lte=10"`
	UnlockCost int64   `mapstructure:"unlock_cost" json:"unlock_cost" validate:"min=0"`
	MinLevel   int32   `mapstructure:"min_level" json:"min_level" validate:"min=1"`
}

// Rules 成长规则，对应配置文件中的 rules 节点
type Rules struct {
	MaxLevel       int32 `mapstructure:"max_level" json:"max_level" validate:"min=1,max=1000"`
	AllocationCap  int32 `mapstructure:"allocation_cap" json:"allocation_cap" validate:"min=1,max=120"`
	CreditCap      int64 `mapstructure:"credit_cap" json:"credit_cap" validate:"min=1"`

	// 指针类型：显式配置为 0 时覆盖默认值，未配置时保留默认值
	StartingPoints *int64 `mapstructure:"starting_points" json:"starting_points" validate:"omitempty,min=0"`
	LevelUpReward  *int64 `mapstructure:"level_up_reward" json:"level_up_reward" validate:"omitempty,min=0"`

	// DataDir 非空时从 races.json / transformations.json 追加表数据
	DataDir string `mapstructure:"data_dir" json:"data_dir"`

	Races           map[string]Race           `mapstructure:"races" json:"races" validate:"required,min=1,dive"`
	Transformations map[string]Transformation `mapstructure:"transformations" json:"transformations" validate:"dive"`
}

// DefaultRules 默认规则
func DefaultRules() *Rules {
	return &Rules{
		MaxLevel:       100,
		AllocationCap:  50,
		CreditCap:      10000,
		StartingPoints: Int64(10),
		LevelUpReward:  Int64(5),
		Races: map[string]Race{
			"HUMAN":     {Modifier: 1.0, Seed: model.Attributes{STR: 10, DEX: 10, CON: 10, WIL: 10, MND: 10, SPI: 10}},
			"BEASTKIN":  {Modifier: 1.2, Seed: model.Attributes{STR: 14, DEX: 12, CON: 12, WIL: 6, MND: 6, SPI: 8}},
			"CELESTIAL": {Modifier: 1.1, Seed: model.Attributes{STR: 8, DEX: 10, CON: 8, WIL: 12, MND: 14, SPI: 14}},
			"ANDROID":   {Modifier: 0.9, Seed: model.Attributes{STR: 12, DEX: 8, CON: 16, WIL: 12, MND: 8, SPI: 6}},
			"DEMON":     {Modifier: 1.4, Seed: model.Attributes{STR: 12, DEX: 10, CON: 8, WIL: 14, MND: 6, SPI: 8}},
		},
		Transformations: map[string]Transformation{
			"FOCUS":    {Multiplier: 1.2, UnlockCost: 10, MinLevel: 5},
			"AWAKENED": {Multiplier: 1.5, UnlockCost: 25, MinLevel: 20},
			"ASCENDED": {Multiplier: 2.0, UnlockCost: 50, MinLevel: 50},
		},
	}
}

// Int64 返回 v 的指针，用于填写可选数值字段
func Int64(v int64) *int64 {
	return &v
}

// StartingBalance 新角色开局积分
func (r *Rules) StartingBalance() int64 {
	if r.StartingPoints == nil {
		return 0
	}
	return *r.StartingPoints
}

// LevelReward 每级升级奖励积分
func (r *Rules) LevelReward() int64 {
	if r.LevelUpReward == nil {
		return 0
	}
	return *r.LevelUpReward
}

// Build 以默认规则为底合并用户配置，规范化表键后校验
// 零值字段不会覆盖默认值（指针字段除外）；表按键合并，用户配置只能新增或覆盖条目
func Build(user *Rules) (*Rules, error) {
	rules, err := config.MergeConfig(DefaultRules(), user)
	if err != nil {
		return nil, fmt.Errorf("failed to merge rules: %w", err)
	}
	rules.normalize()

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// viper 会把 map 的键转成小写，这里统一成大写
func (r *Rules) normalize() {
	races := make(map[string]Race, len(r.Races))
	for k, v := range r.Races {
		races[strings.ToUpper(k)] = v
	}
	r.Races = races

	trans := make(map[string]Transformation, len(r.Transformations))
	for k, v := range r.Transformations {
		trans[strings.ToUpper(k)] = v
	}
	r.Transformations = trans
}

// Validate 校验规则
func (r *Rules) Validate() error {
	if err := config.NewValidator().Validate(r); err != nil {
		return err
	}

	for code, race := range r.Races {
		for _, attr := range model.AllAttributes {
			if v := race.Seed.Get(attr); v < 0 || v > model.MaxAttributeValue {
				return fmt.Errorf("%w: race %s seed %s=%d not in [0, %d]",
					config.ErrValidationFailed, code, attr, v, model.MaxAttributeValue)
			}
		}
	}
	for id, t := range r.Transformations {
		if t.MinLevel > r.MaxLevel {
			return fmt.Errorf("%w: transformation %s min_level %d exceeds max_level %d",
				config.ErrValidationFailed, id, t.MinLevel, r.MaxLevel)
		}
	}
	return nil
}

// Race 查找种族（大小写不敏感）
func (r *Rules) Race(code string) (string, Race, error) {
	key := strings.ToUpper(strings.TrimSpace(code))
	race, ok := r.Races[key]
	if !ok {
		return "", Race{}, errors.Wrapf(model.ErrRaceUnknown, "race %q", code)
	}
	return key, race, nil
}

// RaceModifier 种族系数，未知种族（配置被移除）按 1.0 处理
func (r *Rules) RaceModifier(code string) float64 {
	if race, ok := r.Races[strings.ToUpper(code)]; ok {
		return race.Modifier
	}
	return 1.0
}

// Transformation 查找变身（大小写不敏感）
func (r *Rules) Transformation(id string) (string, Transformation, error) {
	key := strings.ToUpper(strings.TrimSpace(id))
	t, ok := r.Transformations[key]
	if !ok {
		return "", Transformation{}, errors.Wrapf(model.ErrTransformationUnknown, "transformation %q", id)
	}
	return key, t, nil
}

// TransformationMultiplier 当前变身倍率，未变身为 1.0
func (r *Rules) TransformationMultiplier(active model.Optional[string]) float64 {
	id, ok := active.Get()
	if !ok {
		return 1.0
	}
	if t, ok := r.Transformations[id]; ok {
		return t.Multiplier
	}
	return 1.0
}

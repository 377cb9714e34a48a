package model

// DerivedStats 战斗属性，只计算不持久化
type DerivedStats struct {
	Final           Attributes // 基础 + 装备
	RaceModifier    float64
	TransformMult   float64
	MeleeDamage     float64
	KiPower         float64
	Speed           float64
	PhysicalDefense float64
	KiDefense       float64
	MentalDefense   float64
	MaxHP           float64
	MaxKi           float64
	ActionTime      float64
}

// DeriveStats 纯函数：基础属性 + 装备加成，叠加种族系数与变身倍率
func DeriveStats(base, bonus Attributes, raceModifier, transformMult float64) DerivedStats {
	f := base.Add(bonus)
	str, dex, con := float64(f.STR), float64(f.DEX), float64(f.CON)
	wil, mnd, spi := float64(f.WIL), float64(f.MND), float64(f.SPI)

	return DerivedStats{
		Final:           f,
		RaceModifier:    raceModifier,
		TransformMult:   transformMult,
		MeleeDamage:     str * 2.5 * raceModifier * transformMult,
		KiPower:         wil * 5.2 * raceModifier * transformMult,
		Speed:           100 + dex*transformMult,
		PhysicalDefense: con * 1.8 * raceModifier,
		KiDefense:       spi * 2.0 * raceModifier,
		MentalDefense:   mnd * 1.5 * raceModifier,
		MaxHP:           con * 20,
		MaxKi:           spi * 40,
		ActionTime:      con * 3.5,
	}
}

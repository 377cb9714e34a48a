package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStats(t *testing.T) {
	base := Attributes{STR: 10, DEX: 20, CON: 10, WIL: 10, MND: 10, SPI: 10}
	bonus := Attributes{STR: 2, CON: 5}

	s := DeriveStats(base, bonus, 1.2, 1.5)

	assert.Equal(t, Attributes{STR: 12, DEX: 20, CON: 15, WIL: 10, MND: 10, SPI: 10}, s.Final)
	assert.InDelta(t, 12*2.5*1.2*1.5, s.MeleeDamage, 1e-9)
	assert.InDelta(t, 10*5.2*1.2*1.5, s.KiPower, 1e-9)
	assert.InDelta(t, 100+20*1.5, s.Speed, 1e-9)
	assert.InDelta(t, 15*1.8*1.2, s.PhysicalDefense, 1e-9)
	assert.InDelta(t, 10*2.0*1.2, s.KiDefense, 1e-9)
	assert.InDelta(t, 10*1.5*1.2, s.MentalDefense, 1e-9)
	assert.InDelta(t, 300.0, s.MaxHP, 1e-9)
	assert.InDelta(t, 400.0, s.MaxKi, 1e-9)
	assert.InDelta(t, 52.5, s.ActionTime, 1e-9)
}

func TestOptional(t *testing.T) {
	var zero Optional[int64]
	assert.False(t, zero.IsSome())
	assert.Nil(t, zero.Ptr())
	assert.Equal(t, int64(7), zero.OrElse(7))

	o := Some[int64](3)
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)
	assert.Equal(t, int64(3), *o.Ptr())
	assert.Equal(t, o, FromPtr(o.Ptr()))
	assert.Equal(t, None[int64](), FromPtr[int64](nil))
}

package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitsConfig struct {
	MaxLevel int    `mapstructure:"max_level" validate:"min=1,max=1000"`
	Mode     string `mapstructure:"mode" validate:"oneof=strict lenient"`
}

type rootConfig struct {
	Limits limitsConfig `mapstructure:"limits"`
	Region string       `mapstructure:"region" validate:"required"`
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	t.Run("nil", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(nil), ErrNilConfig)
		var cfg *rootConfig
		assert.ErrorIs(t, v.Validate(cfg), ErrNilConfig)
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &rootConfig{Region: "eu", Limits: limitsConfig{MaxLevel: 100, Mode: "strict"}}
		assert.NoError(t, v.Validate(cfg))
	})

	t.Run("reports config keys", func(t *testing.T) {
		cfg := &rootConfig{Limits: limitsConfig{MaxLevel: 0, Mode: "loose"}}
		err := v.Validate(cfg)
		require.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "field 'limits.max_level' must be at least 1")
		assert.Contains(t, err.Error(), "field 'limits.mode' must be one of [strict lenient]")
		assert.Contains(t, err.Error(), "field 'region' is required")
	})

	t.Run("custom rule", func(t *testing.T) {
		type even struct {
			N int `mapstructure:"n" validate:"even"`
		}
		require.NoError(t, v.RegisterRule("even", func(fl validator.FieldLevel) bool {
			return fl.Field().Int()%2 == 0
		}))
		assert.NoError(t, v.Validate(&even{N: 4}))
		err := v.Validate(&even{N: 3})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field 'n' failed on 'even'")
	})
}

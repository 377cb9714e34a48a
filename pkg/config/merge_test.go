package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type poolConfig struct {
	MaxConns int
	MinConns int
}

type sampleConfig struct {
	Name    string
	Debug   bool
	Tags    []string
	Limits  map[string]int
	Pool    poolConfig
	Backup  *poolConfig
	private int
}

func TestMergeConfig(t *testing.T) {
	t.Run("both nil", func(t *testing.T) {
		_, err := MergeConfig[sampleConfig](nil, nil)
		require.ErrorIs(t, err, ErrNilConfig)
	})

	t.Run("nil base returns copy of override", func(t *testing.T) {
		override := &sampleConfig{Name: "x"}
		out, err := MergeConfig(nil, override)
		require.NoError(t, err)
		assert.Equal(t, "x", out.Name)
		assert.NotSame(t, override, out)
	})

	t.Run("override wins for non-zero fields", func(t *testing.T) {
		base := &sampleConfig{
			Name:   "base",
			Tags:   []string{"a"},
			Limits: map[string]int{"a": 1, "b": 2},
			Pool:   poolConfig{MaxConns: 10, MinConns: 2},
			Backup: &poolConfig{MaxConns: 3, MinConns: 1},
		}
		override := &sampleConfig{
			Debug:  true,
			Tags:   []string{"x", "y"},
			Limits: map[string]int{"b": 20},
			Pool:   poolConfig{MaxConns: 50},
			Backup: &poolConfig{MinConns: 7},
		}

		out, err := MergeConfig(base, override)
		require.NoError(t, err)

		assert.Equal(t, "base", out.Name)
		assert.True(t, out.Debug)
		assert.Equal(t, []string{"x", "y"}, out.Tags)
		assert.Equal(t, map[string]int{"a": 1, "b": 20}, out.Limits)
		assert.Equal(t, poolConfig{MaxConns: 50, MinConns: 2}, out.Pool)
		assert.Equal(t, &poolConfig{MaxConns: 3, MinConns: 7}, out.Backup)

		// base 不被修改
		assert.Equal(t, 10, base.Pool.MaxConns)
		assert.Equal(t, 1, base.Backup.MinConns)
		assert.Equal(t, 2, base.Limits["b"])
	})
}

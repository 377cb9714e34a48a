package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log.level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestDemoCommand(t *testing.T) {
	metricsPath := filepath.Join(t.TempDir(), "metrics.prom")

	out, err := runRoot(t, "demo", "-o", "json", "--metrics-out", metricsPath)
	require.NoError(t, err)

	var report struct {
		Character struct {
			Level   int32 `json:"level"`
			Balance int64 `json:"balance"`
		} `json:"character"`
		Allocation struct {
			Cost int64 `json:"cost"`
		} `json:"allocation"`
		Experience struct {
			LevelsGained int32 `json:"levels_gained"`
			Reward       int64 `json:"reward"`
		} `json:"experience"`
		Equipment struct {
			Status string `json:"status"`
		} `json:"equipment"`
		Stats struct {
			MeleeDamage float64 `json:"melee_damage"`
		} `json:"stats"`
		Audit struct {
			Consistent bool `json:"consistent"`
		} `json:"audit"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, int32(3), report.Character.Level)
	assert.Equal(t, int64(15), report.Character.Balance)
	assert.Equal(t, int64(5), report.Allocation.Cost)
	assert.Equal(t, int32(2), report.Experience.LevelsGained)
	assert.Equal(t, int64(10), report.Experience.Reward)
	assert.Equal(t, "WEAPON_ONLY", report.Equipment.Status)
	// STR 10+5+3 = 18
	assert.InDelta(t, 45.0, report.Stats.MeleeDamage, 1e-9)
	assert.True(t, report.Audit.Consistent)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `progression_operations_total{operation="allocate",result="success"} 1`)
	assert.Contains(t, string(metrics), "progression_level_ups_total 2")
}

func TestDemoCommandUnknownRace(t *testing.T) {
	_, err := runRoot(t, "demo", "--race", "DRAGON")
	assert.Error(t, err)
}

func TestExpTableCommand(t *testing.T) {
	out, err := runRoot(t, "exp-table", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "exp_required: 121")
	assert.Contains(t, out, "total_exp: 210")
}

func TestRootRejectsUnknownOutput(t *testing.T) {
	_, err := runRoot(t, "exp-table", "3", "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestVersionCommand(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "progressionctl")
}

package app

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Log struct {
		Level      string `mapstructure:"level"`
		OutputPath string `mapstructure:"output_path"`
		EnableFile bool   `mapstructure:"enable_file"`
	} `mapstructure:"log"`
	Rules struct {
		MaxLevel int `mapstructure:"max_level"`
	} `mapstructure:"rules"`
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadConfigDefaultsOnly(t *testing.T) {
	t.Chdir(t.TempDir())

	var cfg testConfig
	path, err := LoadConfig(newFlags(t), &cfg, map[string]any{"rules.max_level": 100, "log.level": "info"})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, 100, cfg.Rules.MaxLevel)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte("rules:\n  max_level: 60\nlog:\n  level: warn\n"), 0o644))
	t.Setenv("PROGRESSION_RULES_MAX_LEVEL", "70")

	logFile := filepath.Join(dir, "logs", "out.log")
	var cfg testConfig
	path, err := LoadConfig(newFlags(t, "--config", file, "--log.level", "debug", "--log.path", logFile), &cfg,
		map[string]any{"rules.max_level": 100, "log.level": "info"})
	require.NoError(t, err)

	assert.Equal(t, file, path)
	assert.Equal(t, 70, cfg.Rules.MaxLevel)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, logFile, cfg.Log.OutputPath)
	assert.True(t, cfg.Log.EnableFile)
	assert.DirExists(t, filepath.Dir(logFile))
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	var cfg testConfig
	_, err := LoadConfig(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")), &cfg, nil)
	require.Error(t, err)
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, AppName, info.AppName)
	assert.Contains(t, info.String(), info.Version)
}

func TestInfoFillFromBuild(t *testing.T) {
	info := Info{Version: "dev"}
	info.fillFromBuild(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	assert.Equal(t, "v0.3.1", info.Version)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildDate)
	assert.Contains(t, info.String(), "0123456789ab-dirty")

	pinned := Info{Version: "v1.0.0", GitCommit: "abc"}
	pinned.fillFromBuild(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
	})
	assert.Equal(t, "v1.0.0", pinned.Version)
	assert.Equal(t, "abc", pinned.GitCommit)
}

package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lk2023060901/xdooria-progression/pkg/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，PROGRESSION_LOG_LEVEL -> log.level
const EnvPrefix = "PROGRESSION"

// 约定的命令行参数名
const (
	FlagConfig   = "config"
	FlagLogLevel = "log.level"
	FlagLogPath  = "log.path"
)

// RegisterFlags 在命令的 FlagSet 上注册通用参数
func RegisterFlags(fs *pflag.FlagSet) {
	if fs.Lookup(FlagConfig) == nil {
		fs.StringP(FlagConfig, "c", "", "path to config file (default: ./config.yaml when present)")
	}
	if fs.Lookup(FlagLogLevel) == nil {
		fs.String(FlagLogLevel, "", "override log level (debug, info, warn, error)")
	}
	if fs.Lookup(FlagLogPath) == nil {
		fs.String(FlagLogPath, "", "write logs to this file")
	}
}

// LoadConfig 加载配置到 target
// 优先级：1. 命令行显式参数 > 2. 环境变量 > 3. 配置文件 > 4. defaults
// 显式指定的配置文件必须存在；未指定时依次尝试 PROGRESSION_CONFIG 与工作目录下的 config.yaml，均不存在则只用默认值
func LoadConfig(fs *pflag.FlagSet, target any, defaults map[string]any) (string, error) {
	v := viper.New()
	mgr := config.NewManager(
		config.WithViper(v),
		config.WithDefaults(defaults),
		config.WithEnvPrefix(EnvPrefix),
	)

	// 1. 确定配置文件路径
	path, explicit, err := resolveConfigPath(fs)
	if err != nil {
		return "", err
	}

	// 2. 加载配置文件
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := mgr.LoadFile(path); err != nil {
				return "", err
			}
		} else if explicit || !errors.Is(statErr, os.ErrNotExist) {
			return "", fmt.Errorf("config file not found at %s", path)
		} else {
			path = ""
		}
	}

	// 3. 命令行显式参数覆盖所有来源
	if fs != nil {
		if f := fs.Lookup(FlagLogLevel); f != nil && f.Changed {
			mgr.Set("log.level", f.Value.String())
		}
		if f := fs.Lookup(FlagLogPath); f != nil && f.Changed {
			mgr.Set("log.output_path", f.Value.String())
			mgr.Set("log.enable_file", true)
			if err := os.MkdirAll(filepath.Dir(f.Value.String()), 0o755); err != nil {
				return "", fmt.Errorf("failed to create log directory: %w", err)
			}
		}
	}

	// 4. 解析到目标结构体
	if err := mgr.Unmarshal(target); err != nil {
		return "", err
	}
	return path, nil
}

func resolveConfigPath(fs *pflag.FlagSet) (path string, explicit bool, err error) {
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil && f.Changed {
			return f.Value.String(), true, nil
		}
	}
	if env := os.Getenv(EnvPrefix + "_CONFIG"); env != "" {
		return env, true, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, "config.yaml"), false, nil
}

package config

import "github.com/spf13/viper"

// Option 配置管理器选项
type Option func(*manager)

// WithDefaults 设置默认值（最低优先级）
func WithDefaults(defaults map[string]any) Option {
	return func(m *manager) {
		for key, value := range defaults {
			m.v.SetDefault(key, value)
		}
	}
}

// WithConfigType 显式指定文件类型（yaml、json、toml）
func WithConfigType(configType string) Option {
	return func(m *manager) {
		m.v.SetConfigType(configType)
	}
}

// WithEnvPrefix 启用环境变量覆盖，如 PROGRESSION_RULES_MAX_LEVEL -> rules.max_level
func WithEnvPrefix(prefix string) Option {
	return func(m *manager) {
		m.bindEnv(prefix)
	}
}

// WithViper 使用外部的 Viper 实例
func WithViper(v *viper.Viper) Option {
	return func(m *manager) {
		m.v = v
	}
}

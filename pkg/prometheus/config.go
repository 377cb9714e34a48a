package prometheus

import "time"

// Config Prometheus 配置
type Config struct {
	// Namespace 指标命名空间
	Namespace string `mapstructure:"namespace" json:"namespace"`

	// EnableGoCollector 是否注册 Go 运行时采集器
	EnableGoCollector bool `mapstructure:"enable_go_collector" json:"enable_go_collector"`

	// Push 短生命周期进程通过 Pushgateway 上报
	Push PushConfig `mapstructure:"push" json:"push"`
}

// PushConfig Pushgateway 配置，URL 为空表示不上报
type PushConfig struct {
	URL     string        `mapstructure:"url" json:"url"`
	Job     string        `mapstructure:"job" json:"job"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Namespace: "progression",
		Push: PushConfig{
			Job:     "progressionctl",
			Timeout: 5 * time.Second,
		},
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c == nil || c.Namespace == "" {
		return ErrInvalidConfig
	}
	if c.Push.URL != "" && c.Push.Job == "" {
		return ErrInvalidConfig
	}
	return nil
}

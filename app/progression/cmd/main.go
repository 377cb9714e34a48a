package main

import (
	"os"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/gameconfig"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/manager"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/lk2023060901/xdooria-progression/pkg/database/redis"
	"github.com/lk2023060901/xdooria-progression/pkg/idgen"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
	"github.com/lk2023060901/xdooria-progression/pkg/prometheus"
)

// Config 定义 progressionctl 的完整配置结构
type Config struct {
	Log logger.Config `mapstructure:"log"`

	// Database 配置
	Database postgres.Config `mapstructure:"database"`

	// Redis 配置，仅在 lock.distributed 开启时连接
	Redis redis.Config `mapstructure:"redis"`

	// 角色写锁
	Lock manager.LockConfig `mapstructure:"lock"`

	// ID 生成
	IDGen idgen.Config `mapstructure:"idgen"`

	// 指标配置
	Metrics    metrics.Config    `mapstructure:"metrics"`
	Prometheus prometheus.Config `mapstructure:"prometheus"`

	// 成长规则
	Rules gameconfig.Rules `mapstructure:"rules"`
}

// configDefaults 未出现在配置文件与环境变量中的默认值
var configDefaults = map[string]any{
	"log.level":          "info",
	"log.format":         "console",
	"log.enable_console": true,
	"log.console_stderr": true,
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

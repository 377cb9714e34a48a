package main

import (
	"encoding/json"
	"io"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/service"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
	"github.com/lk2023060901/xdooria-progression/pkg/prometheus"
	"gopkg.in/yaml.v3"
)

// App 一次命令执行所需的服务集合
type App struct {
	logger logger.Logger
	prom   *prometheus.Client

	characters      *service.CharacterService
	ledger          *service.LedgerService
	leveling        *service.LevelingService
	equipment       *service.EquipmentService
	stats           *service.StatsService
	transformations *service.TransformationService

	out    io.Writer
	format string
}

func newApp(
	l logger.Logger,
	prom *prometheus.Client,
	characters *service.CharacterService,
	ledger *service.LedgerService,
	leveling *service.LevelingService,
	equipment *service.EquipmentService,
	stats *service.StatsService,
	transformations *service.TransformationService,
) *App {
	return &App{
		logger:          l,
		prom:            prom,
		characters:      characters,
		ledger:          ledger,
		leveling:        leveling,
		equipment:       equipment,
		stats:           stats,
		transformations: transformations,
		format:          "yaml",
	}
}

// print 按输出格式写出结果
func (a *App) print(v any) error {
	if a.format == "json" {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/dao"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/manager"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/repository"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/service"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// serviceSet 两种存储共用的服务层
var serviceSet = wire.NewSet(
	service.NewCharacterService,
	service.NewLedgerService,
	service.NewLevelingService,
	service.NewEquipmentService,
	service.NewStatsService,
	service.NewTransformationService,
	newApp,
)

func InitPostgresApp(ctx context.Context, cfg *Config, l logger.Logger) (*App, func(), error) {
	panic(wire.Build(
		// 1. 指标
		providePrometheusClient,
		provideProgressionMetrics,

		// 2. PostgreSQL 客户端
		providePostgresClient,

		// 3. 数据层 (DAO)
		dao.NewCharacterDAO,
		dao.NewLedgerDAO,
		dao.NewEquipmentDAO,

		// 4. 单写者锁（可选 Redis）
		provideRedisClient,
		provideLockConfig,
		manager.NewLockManager,

		// 5. 仓储
		provideIDGenerator,
		repository.NewPostgresRepository,

		// 6. 规则与服务
		provideRules,
		serviceSet,
	))
}

func InitMemoryApp(cfg *Config, l logger.Logger) (*App, func(), error) {
	panic(wire.Build(
		providePrometheusClient,
		provideProgressionMetrics,

		provideNoRedis,
		provideLockConfig,
		manager.NewLockManager,

		provideSequence,
		repository.NewMemoryRepository,

		provideRules,
		serviceSet,
	))
}

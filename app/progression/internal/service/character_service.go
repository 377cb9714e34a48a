package service

import (
	"context"
	"strings"
	"time"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/gameconfig"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/repository"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// 开局流水理由
const startingBalanceReason = "starting balance"

// CharacterService 角色生命周期
type CharacterService struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
	repo    repository.CharacterRepository
	rules   *gameconfig.Rules
}

func NewCharacterService(
	l logger.Logger,
	m *metrics.ProgressionMetrics,
	repo repository.CharacterRepository,
	rules *gameconfig.Rules,
) *CharacterService {
	return &CharacterService{
		logger:  l.Named("service.character"),
		metrics: m,
		repo:    repo,
		rules:   rules,
	}
}

// Create 创建角色：1 级、0 经验、种族初始属性，开局积分以一笔 EVENT 流水写入
func (s *CharacterService) Create(ctx context.Context, accountID int64, name, race string) (_ *model.Character, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("create_character", resultOf(err), start) }()

	// 1. 种族校验
	raceCode, r, err := s.rules.Race(race)
	if err != nil {
		return nil, err
	}

	// 2. 组装聚合与开局流水
	now := time.Now()
	c := model.NewCharacter(accountID, strings.TrimSpace(name), raceCode, r.Seed, now)
	agg := model.NewAggregate(c, model.NewEquipmentSlot(0, now))
	starting := s.rules.StartingBalance()
	if starting > 0 {
		if _, err := agg.Post(starting, model.CategoryEvent, startingBalanceReason, actorFromContext(ctx), now); err != nil {
			return nil, err
		}
	}

	// 3. 持久化
	if err := s.repo.Create(ctx, agg); err != nil {
		s.logger.ErrorContext(ctx, "failed to create character",
			"account_id", accountID,
			"error", err,
		)
		return nil, err
	}

	if starting > 0 {
		s.metrics.RecordPoints(model.CategoryEvent.String(), starting)
	}
	s.logger.InfoContext(ctx, "character created",
		"character_id", c.ID,
		"account_id", accountID,
		"race", raceCode,
		"balance", c.Balance,
	)
	return c, nil
}

// Get 读取角色
func (s *CharacterService) Get(ctx context.Context, characterID int64) (*model.Character, error) {
	agg, err := s.repo.Load(ctx, characterID)
	if err != nil {
		return nil, err
	}
	return agg.Character, nil
}

// Retire 角色退役，之后所有修改操作均返回 ErrCharacterRetired
func (s *CharacterService) Retire(ctx context.Context, characterID int64) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("retire_character", resultOf(err), start) }()

	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		if err := a.Character.EnsureActive(); err != nil {
			return err
		}
		a.Character.Active = false
		a.Character.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "character retired", "character_id", characterID)
	return nil
}

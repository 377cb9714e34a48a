package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/gameconfig"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/repository"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// UnlockResult 变身解锁结果
type UnlockResult struct {
	Transformation string
	// AlreadyUnlocked 为 true 时未扣费
	AlreadyUnlocked bool
	Cost            int64
	Entry           *model.LedgerEntry
}

// TransformationService 变身解锁与激活
type TransformationService struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
	repo    repository.CharacterRepository
	rules   *gameconfig.Rules
}

func NewTransformationService(
	l logger.Logger,
	m *metrics.ProgressionMetrics,
	repo repository.CharacterRepository,
	rules *gameconfig.Rules,
) *TransformationService {
	return &TransformationService{
		logger:  l.Named("service.transformation"),
		metrics: m,
		repo:    repo,
		rules:   rules,
	}
}

// Unlock 花费积分解锁变身，扣费与解锁记录在同一工作单元提交；已解锁时不做任何修改
func (s *TransformationService) Unlock(ctx context.Context, characterID int64, id string, actor model.Optional[int64]) (_ *UnlockResult, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("unlock_transformation", resultOf(err), start) }()

	key, t, err := s.rules.Transformation(id)
	if err != nil {
		return nil, err
	}

	result := &UnlockResult{Transformation: key}
	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		c := a.Character
		if err := c.EnsureActive(); err != nil {
			return err
		}

		// 1. 已解锁直接返回
		if c.HasTransformation(key) {
			result.AlreadyUnlocked = true
			return nil
		}

		// 2. 等级需求
		if c.Level < t.MinLevel {
			return errors.Wrapf(model.ErrRequirementsNotMet, "transformation %s: LEVEL %d < %d", key, c.Level, t.MinLevel)
		}

		// 3. 扣费并记录解锁
		now := time.Now()
		if t.UnlockCost > 0 {
			entry, err := a.Post(-t.UnlockCost, model.CategoryTransformation,
				fmt.Sprintf("%s: unlock %s", model.CategoryTransformation, key), actor, now)
			if err != nil {
				return err
			}
			result.Entry = entry
			result.Cost = t.UnlockCost
		}
		c.UnlockTransformation(key)
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyUnlocked {
		return result, nil
	}
	if result.Cost > 0 {
		s.metrics.RecordPoints(model.CategoryTransformation.String(), -result.Cost)
	}
	s.logger.InfoContext(ctx, "transformation unlocked",
		"character_id", characterID,
		"transformation", key,
		"cost", result.Cost,
	)
	return result, nil
}

// Activate 激活已解锁的变身
func (s *TransformationService) Activate(ctx context.Context, characterID int64, id string) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("activate_transformation", resultOf(err), start) }()

	key, _, err := s.rules.Transformation(id)
	if err != nil {
		return err
	}

	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		c := a.Character
		if err := c.EnsureActive(); err != nil {
			return err
		}
		if !c.HasTransformation(key) {
			return errors.Wrapf(model.ErrTransformationLocked, "transformation %s", key)
		}
		c.ActiveTransformation = model.Some(key)
		c.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "transformation activated",
		"character_id", characterID,
		"transformation", key,
	)
	return nil
}

// Deactivate 解除变身，未变身时同样成功
func (s *TransformationService) Deactivate(ctx context.Context, characterID int64) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("deactivate_transformation", resultOf(err), start) }()

	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		c := a.Character
		if err := c.EnsureActive(); err != nil {
			return err
		}
		c.ActiveTransformation = model.None[string]()
		c.UpdatedAt = time.Now()
		return nil
	})
	return err
}

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

// ExperienceResult 获得经验后的状态
type ExperienceResult struct {
	Level        int32
	Experience   int64
	LevelsGained int32
	Reward       int64
	// RewardEntry 升级奖励流水，未升级时为 nil
	RewardEntry *model.LedgerEntry
}

// LevelingService 等级与经验
type LevelingService struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
	repo    repository.CharacterRepository
	ledger  *LedgerService
	rules   *gameconfig.Rules
	curve   *model.ExpCurve
}

func NewLevelingService(
	l logger.Logger,
	m *metrics.ProgressionMetrics,
	repo repository.CharacterRepository,
	ledger *LedgerService,
	rules *gameconfig.Rules,
) *LevelingService {
	return &LevelingService{
		logger:  l.Named("service.leveling"),
		metrics: m,
		repo:    repo,
		ledger:  ledger,
		rules:   rules,
		curve:   model.NewExpCurve(rules.MaxLevel),
	}
}

// ExpRequired 从 level-1 升到 level 所需经验
func (s *LevelingService) ExpRequired(level int32) (int64, error) {
	return s.curve.ExpRequired(level)
}

// TotalExpForLevel 从 1 级累计到 level 所需经验
func (s *LevelingService) TotalExpForLevel(level int32) (int64, error) {
	return s.curve.TotalExpForLevel(level)
}

// GainExperience 增加经验并结算升级，多级奖励合并为一笔 EVENT 积分
//
// 经验写入与奖励发放是两个独立工作单元：奖励发放失败时经验与等级保留，错误返回给调用方
func (s *LevelingService) GainExperience(ctx context.Context, characterID int64, amount int64, reason string) (_ *ExperienceResult, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("gain_experience", resultOf(err), start) }()

	if amount <= 0 {
		return nil, errors.Wrapf(model.ErrInvalidExperienceAmount, "amount %d", amount)
	}

	// 1. 结算经验与等级
	result := &ExperienceResult{}
	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		c := a.Character
		if err := c.EnsureActive(); err != nil {
			return err
		}

		level, exp, gained := s.curve.Apply(c.Level, c.Experience, amount)
		c.Level = level
		c.Experience = exp
		c.UpdatedAt = time.Now()

		result.Level = level
		result.Experience = exp
		result.LevelsGained = gained
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "experience gained",
		"character_id", characterID,
		"amount", amount,
		"reason", reason,
		"level", result.Level,
		"levels_gained", result.LevelsGained,
	)
	if result.LevelsGained == 0 {
		return result, nil
	}
	s.metrics.RecordLevelUps(result.LevelsGained)

	// 2. 发放升级奖励
	result.Reward = int64(result.LevelsGained) * s.rules.LevelReward()
	if result.Reward == 0 {
		return result, nil
	}
	entry, err := s.ledger.post(ctx, characterID, result.Reward, model.CategoryEvent,
		fmt.Sprintf("%s: level up x%d (%s)", model.CategoryEvent, result.LevelsGained, reason),
		model.None[int64]())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to credit level up reward",
			"character_id", characterID,
			"reward", result.Reward,
			"error", err,
		)
		return result, errors.Wrap(err, "credit level up reward")
	}
	result.RewardEntry = entry
	return result, nil
}

// Progress 当前等级内的经验进度
func (s *LevelingService) Progress(ctx context.Context, characterID int64) (model.Progress, error) {
	agg, err := s.repo.Load(ctx, characterID)
	if err != nil {
		return model.Progress{}, err
	}
	return s.curve.Progress(agg.Character.Level, agg.Character.Experience), nil
}

// SetLevel 运维直接设置等级并清空经验，不发放奖励
func (s *LevelingService) SetLevel(ctx context.Context, characterID int64, level int32) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("set_level", resultOf(err), start) }()

	if level < 1 || level > s.curve.MaxLevel() {
		return errors.Wrapf(model.ErrLevelOutOfRange, "level %d not in [1, %d]", level, s.curve.MaxLevel())
	}

	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		if err := a.Character.EnsureActive(); err != nil {
			return err
		}
		a.Character.Level = level
		a.Character.Experience = 0
		a.Character.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WarnContext(ctx, "level overridden by operator",
		"character_id", characterID,
		"level", level,
	)
	return nil
}

// ResetExperience 运维清空当前等级内经验
func (s *LevelingService) ResetExperience(ctx context.Context, characterID int64) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("reset_experience", resultOf(err), start) }()

	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		if err := a.Character.EnsureActive(); err != nil {
			return err
		}
		a.Character.Experience = 0
		a.Character.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WarnContext(ctx, "experience reset by operator", "character_id", characterID)
	return nil
}

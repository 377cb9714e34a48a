package service

import (
	"context"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/gameconfig"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/repository"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// StatsService 派生属性计算，每次读取最新已提交状态，不缓存
type StatsService struct {
	logger logger.Logger
	repo   repository.CharacterRepository
	rules  *gameconfig.Rules
}

func NewStatsService(l logger.Logger, repo repository.CharacterRepository, rules *gameconfig.Rules) *StatsService {
	return &StatsService{
		logger: l.Named("service.stats"),
		repo:   repo,
		rules:  rules,
	}
}

// DeriveStats 计算派生属性
func (s *StatsService) DeriveStats(ctx context.Context, characterID int64) (*model.DerivedStats, error) {
	agg, err := s.repo.Load(ctx, characterID)
	if err != nil {
		return nil, err
	}

	c := agg.Character
	raceMod := s.rules.RaceModifier(c.Race)
	transMult := s.rules.TransformationMultiplier(c.ActiveTransformation)

	stats := model.DeriveStats(c.Attributes, agg.Equipment.Bonuses(), raceMod, transMult)

	s.logger.DebugContext(ctx, "stats derived",
		"character_id", characterID,
		"race_modifier", raceMod,
		"transformation_multiplier", transMult,
	)
	return &stats, nil
}

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
	"golang.org/x/sync/errgroup"
)

// defaultAuditConcurrency AuditAll 默认并发数
const defaultAuditConcurrency = 8

// AllocationResult 属性分配结果
type AllocationResult struct {
	Attribute model.AttributeCode
	Value     int32
	Cost      int64
	Balance   int64
	Entry     *model.LedgerEntry
}

// LedgerService 积分账本服务，余额的唯一写入方
type LedgerService struct {
	logger  logger.Logger
	metrics *metrics.ProgressionMetrics
	repo    repository.CharacterRepository
	rules   *gameconfig.Rules
}

func NewLedgerService(
	l logger.Logger,
	m *metrics.ProgressionMetrics,
	repo repository.CharacterRepository,
	rules *gameconfig.Rules,
) *LedgerService {
	return &LedgerService{
		logger:  l.Named("service.ledger"),
		metrics: m,
		repo:    repo,
		rules:   rules,
	}
}

// Allocate 花费积分提升基础属性，按结果值分档计价
func (s *LedgerService) Allocate(ctx context.Context, characterID int64, attribute string, points int32) (_ *AllocationResult, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("allocate", resultOf(err), start) }()

	// 1. 参数校验
	code, err := model.ParseAttributeCode(attribute)
	if err != nil {
		return nil, err
	}
	if points <= 0 || points > s.rules.AllocationCap {
		return nil, errors.Wrapf(model.ErrInvalidPointAmount, "points %d not in [1, %d]", points, s.rules.AllocationCap)
	}

	// 2. 在单写者保护下计价、扣款、加点
	result := &AllocationResult{Attribute: code}
	actor := actorFromContext(ctx)
	_, err = s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		c := a.Character
		if err := c.EnsureActive(); err != nil {
			return err
		}

		current := c.Attributes.Get(code)
		if current+points > model.MaxAttributeValue {
			return errors.Wrapf(model.ErrAttributeCapExceeded, "%s %d + %d > %d", code, current, points, model.MaxAttributeValue)
		}

		cost := model.AllocationCost(current, points)
		now := time.Now()
		entry, err := a.Post(-cost, model.CategoryAllocation, allocationReason(code, points), actor, now)
		if err != nil {
			return err
		}

		c.Attributes.Set(code, current+points)
		c.UpdatedAt = now

		result.Value = current + points
		result.Cost = cost
		result.Balance = c.Balance
		result.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPoints(model.CategoryAllocation.String(), -result.Cost)
	s.logger.InfoContext(ctx, "attribute allocated",
		"character_id", characterID,
		"attribute", code.String(),
		"points", points,
		"cost", result.Cost,
		"balance", result.Balance,
	)
	return result, nil
}

func allocationReason(code model.AttributeCode, points int32) string {
	return fmt.Sprintf("%s: %s +%d", model.CategoryAllocation, code, points)
}

// Credit 发放积分，缺省 actor 表示系统发放
//
// Credit 自成一个工作单元：调用方后续流程失败不会回滚已发放的积分
func (s *LedgerService) Credit(
	ctx context.Context,
	characterID int64,
	amount int64,
	category string,
	reason string,
	actor model.Optional[int64],
) (_ *model.LedgerEntry, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("credit", resultOf(err), start) }()

	cat, err := model.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if err := s.checkAmount(amount); err != nil {
		return nil, err
	}
	return s.post(ctx, characterID, amount, cat, reason, actor)
}

// Spend 通用扣款（技能、变身解锁等），ALLOCATION 只能由 Allocate 产生
func (s *LedgerService) Spend(
	ctx context.Context,
	characterID int64,
	amount int64,
	category string,
	reason string,
	actor model.Optional[int64],
) (_ *model.LedgerEntry, err error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperation("spend", resultOf(err), start) }()

	cat, err := model.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if cat == model.CategoryAllocation {
		return nil, errors.Wrap(model.ErrCategoryInvalid, "ALLOCATION is reserved for attribute allocation")
	}
	if err := s.checkAmount(amount); err != nil {
		return nil, err
	}
	return s.post(ctx, characterID, -amount, cat, reason, actor)
}

func (s *LedgerService) checkAmount(amount int64) error {
	if amount <= 0 || amount > s.rules.CreditCap {
		return errors.Wrapf(model.ErrInvalidPointAmount, "amount %d not in [1, %d]", amount, s.rules.CreditCap)
	}
	return nil
}

// post 在独立工作单元中记一笔流水，不做上限校验
func (s *LedgerService) post(
	ctx context.Context,
	characterID int64,
	amount int64,
	category model.Category,
	reason string,
	actor model.Optional[int64],
) (*model.LedgerEntry, error) {
	var entry *model.LedgerEntry
	_, err := s.repo.Update(ctx, characterID, func(a *model.Aggregate) error {
		if err := a.Character.EnsureActive(); err != nil {
			return err
		}
		now := time.Now()
		e, err := a.Post(amount, category, reason, actor, now)
		if err != nil {
			return err
		}
		a.Character.UpdatedAt = now
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPoints(category.String(), amount)
	s.logger.InfoContext(ctx, "ledger entry posted",
		"character_id", characterID,
		"amount", amount,
		"category", category.String(),
		"balance_after", entry.BalanceAfter,
		"system", !actor.IsSome(),
	)
	return entry, nil
}

// History 全部流水，最新在前
func (s *LedgerService) History(ctx context.Context, characterID int64) ([]*model.LedgerEntry, error) {
	return s.repo.History(ctx, characterID)
}

// Summary 按分类汇总，分类与理由前缀不一致的流水只标记
func (s *LedgerService) Summary(ctx context.Context, characterID int64) (*model.LedgerSummary, error) {
	agg, entries, err := s.repo.Statement(ctx, characterID)
	if err != nil {
		return nil, err
	}

	summary := model.Summarize(characterID, agg.Character.Balance, entries)
	if len(summary.Mismatches) > 0 {
		s.logger.WarnContext(ctx, "ledger category mismatches reason prefix",
			"character_id", characterID,
			"entry_ids", summary.Mismatches,
		)
	}
	return summary, nil
}

// Audit 核对存储余额与流水合计
func (s *LedgerService) Audit(ctx context.Context, characterID int64) (*model.AuditReport, error) {
	report, err := s.repo.Audit(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if !report.Consistent() {
		s.logger.ErrorContext(ctx, "ledger drift detected",
			"character_id", characterID,
			"stored_balance", report.StoredBalance,
			"ledger_sum", report.LedgerSum,
			"drift", report.Drift(),
		)
	}
	return report, nil
}

// AuditAll 并发核对全部角色，结果按角色 ID 升序
// concurrency <= 0 时使用默认并发数，任一角色读取失败即中止
func (s *LedgerService) AuditAll(ctx context.Context, concurrency int) ([]*model.AuditReport, error) {
	if concurrency <= 0 {
		concurrency = defaultAuditConcurrency
	}

	ids, err := s.repo.CharacterIDs(ctx, false)
	if err != nil {
		return nil, err
	}

	reports := make([]*model.AuditReport, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			report, err := s.Audit(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to audit character %d: %w", id, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var drifted int
	for _, r := range reports {
		if !r.Consistent() {
			drifted++
		}
	}
	s.logger.InfoContext(ctx, "ledger audit completed",
		"characters", len(reports),
		"drifted", drifted,
	)
	return reports, nil
}

package repository

import (
	"context"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
)

// UpdateFunc 在单写者保护下修改聚合，返回错误时本次修改全部丢弃
type UpdateFunc func(agg *model.Aggregate) error

// CharacterRepository 角色聚合仓储接口
// 同一角色的 Update 串行执行，角色、装备与流水在一个工作单元内提交
type CharacterRepository interface {
	// Create 保存新角色及其开局流水，分配角色与流水 ID
	Create(ctx context.Context, agg *model.Aggregate) error
	// Load 读取当前已提交的聚合
	Load(ctx context.Context, characterID int64) (*model.Aggregate, error)
	// Update 加锁读取、执行 fn、提交；返回的聚合中 Pending() 为本次提交的流水
	Update(ctx context.Context, characterID int64, fn UpdateFunc) (*model.Aggregate, error)
	// History 角色全部流水，最新在前
	History(ctx context.Context, characterID int64) ([]*model.LedgerEntry, error)
	// CharacterIDs 角色 ID 升序列表
	CharacterIDs(ctx context.Context, activeOnly bool) ([]int64, error)
	// Statement 同一快照下的聚合与全部流水（最新在前）
	Statement(ctx context.Context, characterID int64) (*model.Aggregate, []*model.LedgerEntry, error)
	// Audit 同一快照下的存储余额与流水合计
	Audit(ctx context.Context, characterID int64) (*model.AuditReport, error)
}

package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/manager"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/idgen"
)

type memoryRecord struct {
	agg    *model.Aggregate
	ledger []*model.LedgerEntry // 按追加顺序
}

// memoryRepository 进程内仓储，用于测试与无数据库的演练
type memoryRepository struct {
	locks *manager.LockManager
	ids   idgen.Generator

	mu      sync.RWMutex
	records map[int64]*memoryRecord
}

// NewMemoryRepository 创建内存仓储
func NewMemoryRepository(locks *manager.LockManager, ids idgen.Generator) CharacterRepository {
	return &memoryRepository{
		locks:   locks,
		ids:     ids,
		records: make(map[int64]*memoryRecord),
	}
}

func (r *memoryRepository) Create(_ context.Context, agg *model.Aggregate) error {
	if err := assignIDs(r.ids, agg); err != nil {
		return err
	}
	agg.Character.Version = 1

	stored := agg.Clone()
	ledger := stored.Pending()
	stored.ClearPending()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[agg.Character.ID]; exists {
		return errors.Newf("character %d already exists", agg.Character.ID)
	}
	r.records[agg.Character.ID] = &memoryRecord{agg: stored, ledger: ledger}
	return nil
}

func (r *memoryRepository) record(characterID int64) (*memoryRecord, error) {
	rec, ok := r.records[characterID]
	if !ok {
		return nil, errors.Wrapf(model.ErrCharacterNotFound, "character %d", characterID)
	}
	return rec, nil
}

func (r *memoryRepository) Load(_ context.Context, characterID int64) (*model.Aggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, err := r.record(characterID)
	if err != nil {
		return nil, err
	}
	return rec.agg.Clone(), nil
}

func (r *memoryRepository) Update(ctx context.Context, characterID int64, fn UpdateFunc) (*model.Aggregate, error) {
	unlock, err := r.locks.Lock(ctx, characterID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 在副本上修改，成功后整体替换
	working, err := r.Load(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if err := fn(working); err != nil {
		return nil, err
	}

	pending := working.Pending()
	for _, e := range pending {
		if e.ID, err = r.ids.NextID(); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.record(characterID)
	if err != nil {
		return nil, err
	}
	if rec.agg.Character.Version != working.Character.Version {
		return nil, errors.Wrapf(model.ErrConcurrentModification, "character %d version %d", characterID, working.Character.Version)
	}

	working.Character.Version++
	stored := working.Clone()
	stored.ClearPending()
	rec.agg = stored
	for _, e := range pending {
		cp := *e
		rec.ledger = append(rec.ledger, &cp)
	}
	return working, nil
}

func (r *memoryRepository) History(ctx context.Context, characterID int64) ([]*model.LedgerEntry, error) {
	_, entries, err := r.Statement(ctx, characterID)
	return entries, err
}

func (r *memoryRepository) CharacterIDs(_ context.Context, activeOnly bool) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.records))
	for id, rec := range r.records {
		if activeOnly && !rec.agg.Character.Active {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *memoryRepository) Statement(_ context.Context, characterID int64) (*model.Aggregate, []*model.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, err := r.record(characterID)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]*model.LedgerEntry, 0, len(rec.ledger))
	for _, e := range slices.Backward(rec.ledger) {
		cp := *e
		entries = append(entries, &cp)
	}
	return rec.agg.Clone(), entries, nil
}

func (r *memoryRepository) Audit(_ context.Context, characterID int64) (*model.AuditReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, err := r.record(characterID)
	if err != nil {
		return nil, err
	}

	report := &model.AuditReport{
		CharacterID:   characterID,
		StoredBalance: rec.agg.Character.Balance,
		EntryCount:    len(rec.ledger),
	}
	for _, e := range rec.ledger {
		report.LedgerSum += e.Amount
	}
	return report, nil
}

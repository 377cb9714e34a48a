package repository

import (
	"context"
	"fmt"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/dao"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/manager"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/lk2023060901/xdooria-progression/pkg/idgen"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

// postgresRepository 基于 PostgreSQL 的角色仓储
type postgresRepository struct {
	db           *postgres.Client
	characterDAO *dao.CharacterDAO
	ledgerDAO    *dao.LedgerDAO
	equipmentDAO *dao.EquipmentDAO
	locks        *manager.LockManager
	ids          idgen.Generator
	logger       logger.Logger
}

// NewPostgresRepository 创建 PostgreSQL 角色仓储
func NewPostgresRepository(
	db *postgres.Client,
	characterDAO *dao.CharacterDAO,
	ledgerDAO *dao.LedgerDAO,
	equipmentDAO *dao.EquipmentDAO,
	locks *manager.LockManager,
	ids idgen.Generator,
	l logger.Logger,
) CharacterRepository {
	return &postgresRepository{
		db:           db,
		characterDAO: characterDAO,
		ledgerDAO:    ledgerDAO,
		equipmentDAO: equipmentDAO,
		locks:        locks,
		ids:          ids,
		logger:       l.Named("repository.character"),
	}
}

func (r *postgresRepository) Create(ctx context.Context, agg *model.Aggregate) error {
	if err := assignIDs(r.ids, agg); err != nil {
		return err
	}
	agg.Character.Version = 1

	err := r.db.WithTx(ctx, func(tx postgres.Tx) error {
		if err := r.characterDAO.Insert(ctx, tx, agg.Character); err != nil {
			return err
		}
		if err := r.equipmentDAO.Save(ctx, tx, agg.Equipment); err != nil {
			return err
		}
		return r.ledgerDAO.InsertBatch(ctx, tx, agg.Pending())
	})
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// snapshotTx 只读快照事务
var snapshotTx = postgres.TxOptions{
	IsoLevel:   postgres.TxIsolationLevelRepeatableRead,
	AccessMode: postgres.TxAccessModeReadOnly,
}

func (r *postgresRepository) Load(ctx context.Context, characterID int64) (*model.Aggregate, error) {
	var agg *model.Aggregate
	err := r.db.WithTxOptions(ctx, snapshotTx, func(tx postgres.Tx) error {
		var err error
		agg, err = r.load(ctx, tx, characterID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *postgresRepository) load(ctx context.Context, q postgres.Querier, characterID int64, forUpdate bool) (*model.Aggregate, error) {
	c, err := r.characterDAO.Get(ctx, q, characterID, forUpdate)
	if err != nil {
		return nil, err
	}
	slot, err := r.equipmentDAO.Get(ctx, q, characterID)
	if err != nil {
		return nil, err
	}
	return model.NewAggregate(c, slot), nil
}

func (r *postgresRepository) Update(ctx context.Context, characterID int64, fn UpdateFunc) (*model.Aggregate, error) {
	// 1. 单写者锁（进程内 + 可选 Redis）
	unlock, err := r.locks.Lock(ctx, characterID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 2. 行锁读取、修改、按版本号写回，流水同事务追加
	var agg *model.Aggregate
	err = r.db.WithTx(ctx, func(tx postgres.Tx) error {
		loaded, err := r.load(ctx, tx, characterID, true)
		if err != nil {
			return err
		}
		if err := fn(loaded); err != nil {
			return err
		}

		pending := loaded.Pending()
		for _, e := range pending {
			if e.ID, err = r.ids.NextID(); err != nil {
				return err
			}
		}

		if err := r.characterDAO.Update(ctx, tx, loaded.Character); err != nil {
			return err
		}
		if err := r.equipmentDAO.Save(ctx, tx, loaded.Equipment); err != nil {
			return err
		}
		if err := r.ledgerDAO.InsertBatch(ctx, tx, pending); err != nil {
			return err
		}
		agg = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *postgresRepository) History(ctx context.Context, characterID int64) ([]*model.LedgerEntry, error) {
	if _, err := r.characterDAO.Get(ctx, r.db, characterID, false); err != nil {
		return nil, err
	}
	return r.ledgerDAO.ListByCharacter(ctx, r.db, characterID)
}

func (r *postgresRepository) CharacterIDs(ctx context.Context, activeOnly bool) ([]int64, error) {
	return r.characterDAO.ListIDs(ctx, r.db, activeOnly)
}

func (r *postgresRepository) Statement(ctx context.Context, characterID int64) (*model.Aggregate, []*model.LedgerEntry, error) {
	var (
		agg     *model.Aggregate
		entries []*model.LedgerEntry
	)
	err := r.db.WithTxOptions(ctx, snapshotTx, func(tx postgres.Tx) error {
		var err error
		if agg, err = r.load(ctx, tx, characterID, false); err != nil {
			return err
		}
		entries, err = r.ledgerDAO.ListByCharacter(ctx, tx, characterID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return agg, entries, nil
}

func (r *postgresRepository) Audit(ctx context.Context, characterID int64) (*model.AuditReport, error) {
	report := &model.AuditReport{CharacterID: characterID}
	err := r.db.WithTxOptions(ctx, snapshotTx, func(tx postgres.Tx) error {
		c, err := r.characterDAO.Get(ctx, tx, characterID, false)
		if err != nil {
			return err
		}
		report.StoredBalance = c.Balance
		report.LedgerSum, report.EntryCount, err = r.ledgerDAO.Totals(ctx, tx, characterID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// assignIDs 为新角色及其待提交流水分配 ID
func assignIDs(ids idgen.Generator, agg *model.Aggregate) error {
	id, err := ids.NextID()
	if err != nil {
		return err
	}
	agg.Character.ID = id
	agg.Equipment.CharacterID = id

	for _, e := range agg.Pending() {
		e.CharacterID = id
		if e.ID, err = ids.NextID(); err != nil {
			return err
		}
	}
	return nil
}

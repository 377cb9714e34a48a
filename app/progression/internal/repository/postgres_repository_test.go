package repository

import (
	"context"
	"os"
	"testing"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/dao"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/manager"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/metrics"
	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"github.com/lk2023060901/xdooria-progression/pkg/database/postgres"
	"github.com/lk2023060901/xdooria-progression/pkg/idgen"
	"github.com/lk2023060901/xdooria-progression/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newPostgresTestRepository(t *testing.T) CharacterRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dsn := os.Getenv("PROGRESSION_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PROGRESSION_TEST_POSTGRES_DSN not set")
	}

	db, err := postgres.New(&postgres.Config{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.ExecScript(context.Background(), dao.Schema))

	m, err := metrics.New(nil)
	require.NoError(t, err)
	l := logger.NewNoop()

	ids, err := idgen.NewSonyflake(idgen.Config{MachineID: 7})
	require.NoError(t, err)

	return NewPostgresRepository(
		db,
		dao.NewCharacterDAO(l, m),
		dao.NewLedgerDAO(l, m),
		dao.NewEquipmentDAO(l, m),
		manager.NewLockManager(l, m, nil, nil),
		ids,
		l,
	)
}

func TestPostgresRepositoryRoundTrip(t *testing.T) {
	repo := newPostgresTestRepository(t)
	ctx := context.Background()
	id := createCharacter(t, repo, 10)

	_, err := repo.Update(ctx, id, func(a *model.Aggregate) error {
		a.Character.Attributes.DEX += 3
		a.Equipment.Put(model.SlotWeapon, &model.EquippedItem{
			ItemID:  1001,
			Name:    "Iron Sword",
			Bonuses: model.Attributes{STR: 4},
		})
		_, err := a.Post(-3, model.CategoryAllocation, "DEX+3", model.None[int64](), testNow)
		return err
	})
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(7), loaded.Character.Balance)
	assert.Equal(t, int32(13), loaded.Character.Attributes.DEX)
	assert.Equal(t, model.EquipWeaponOnly, loaded.Equipment.Status())
	assert.Equal(t, int32(4), loaded.Equipment.Bonus(model.AttributeSTR))

	history, err := repo.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.CategoryAllocation, history[0].Category)

	report, err := repo.Audit(ctx, id)
	require.NoError(t, err)
	assert.True(t, report.Consistent())
	assert.Equal(t, 2, report.EntryCount)
}

func TestPostgresRepositoryConcurrentCredits(t *testing.T) {
	repo := newPostgresTestRepository(t)
	ctx := context.Background()
	id := createCharacter(t, repo, 1)

	const workers = 10
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := repo.Update(gctx, id, func(a *model.Aggregate) error {
				_, err := a.Post(2, model.CategoryAchievement, "achievement", model.None[int64](), testNow)
				return err
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	loaded, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1+2*workers), loaded.Character.Balance)

	report, err := repo.Audit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, loaded.Character.Balance, report.LedgerSum)
}

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIntegration(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.ExecScript(ctx, `
		DROP TABLE IF EXISTS pg_client_test;
		CREATE TABLE pg_client_test (id BIGINT PRIMARY KEY, name TEXT NOT NULL);
	`))
	t.Cleanup(func() { _, _ = c.Exec(context.Background(), "DROP TABLE IF EXISTS pg_client_test") })

	t.Run("no rows", func(t *testing.T) {
		var name string
		err := c.QueryRow(ctx, "SELECT name FROM pg_client_test WHERE id = $1", 1).Scan(&name)
		assert.ErrorIs(t, err, ErrNoRows)
	})

	t.Run("unique violation", func(t *testing.T) {
		_, err := c.Exec(ctx, "INSERT INTO pg_client_test (id, name) VALUES ($1, $2)", 1, "a")
		require.NoError(t, err)
		_, err = c.Exec(ctx, "INSERT INTO pg_client_test (id, name) VALUES ($1, $2)", 1, "b")
		assert.ErrorIs(t, err, ErrUniqueViolation)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := c.WithTx(ctx, func(tx Tx) error {
			if _, err := tx.Exec(ctx, "INSERT INTO pg_client_test (id, name) VALUES ($1, $2)", 2, "c"); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		var n int
		require.NoError(t, c.QueryRow(ctx, "SELECT count(*) FROM pg_client_test WHERE id = 2").Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("commit", func(t *testing.T) {
		err := c.WithTxOptions(ctx, TxOptions{IsoLevel: TxIsolationLevelSerializable}, func(tx Tx) error {
			_, err := tx.Exec(ctx, "INSERT INTO pg_client_test (id, name) VALUES ($1, $2)", 3, "d")
			return err
		})
		require.NoError(t, err)

		rows, err := c.Query(ctx, "SELECT id FROM pg_client_test ORDER BY id")
		require.NoError(t, err)
		defer rows.Close()
		var ids []int64
		for rows.Next() {
			var id int64
			require.NoError(t, rows.Scan(&id))
			ids = append(ids, id)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []int64{1, 3}, ids)
	})

	assert.Positive(t, c.Stats().MaxConns)
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package launchpad

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type execCall struct {
	sql  string
	args []any
}

type fakeTx struct {
	seq        int64
	execs      []execCall
	execErr    error
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx.execErr != nil {
		return nil, tx.execErr
	}
	tx.execs = append(tx.execs, execCall{sql: sql, args: args})
	return pgconn.CommandTag("INSERT 0 1"), nil
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		tx.seq++
		*dest[0].(*int64) = tx.seq
		return nil
	}}
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	tx.rolledBack = true
	return nil
}

type fakePool struct {
	tx     *fakeTx
	docs   map[int][]byte
	closed bool
}

func (p *fakePool) Begin(ctx context.Context) (pgTx, error) { return p.tx, nil }

func (p *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{scan: func(dest ...any) error {
		doc, ok := p.docs[args[0].(int)]
		if !ok {
			return pgx.ErrNoRows
		}
		*dest[0].(*[]byte) = doc
		return nil
	}}
}

func (p *fakePool) Close() { p.closed = true }

func TestPostgresMigrate(t *testing.T) {
	tx := &fakeTx{}
	lp := &Postgres{pool: &fakePool{tx: tx}}

	require.NoError(t, lp.migrate(context.Background()))

	require.Len(t, tx.execs, len(schema))
	for _, call := range tx.execs {
		assert.Contains(t, call.sql, "IF NOT EXISTS")
	}
	assert.True(t, tx.committed)
}

func TestPostgresAddWF(t *testing.T) {
	t.Run("inserts every firework and the workflow in one transaction", func(t *testing.T) {
		// Arrange
		tx := &fakeTx{seq: 10}
		pool := &fakePool{tx: tx}
		lp := &Postgres{pool: pool}
		wf, relax, static := chain(t)

		// Act
		ids, err := lp.AddWF(context.Background(), wf)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, map[string]int{relax.ID.String(): 11, static.ID.String(): 12}, ids)
		require.Len(t, tx.execs, 3)
		assert.True(t, strings.HasPrefix(tx.execs[0].sql, "INSERT INTO fireworks"))
		assert.Equal(t, 11, tx.execs[0].args[0])
		assert.Equal(t, "READY", tx.execs[0].args[3])
		assert.Equal(t, "WAITING", tx.execs[1].args[3])
		assert.True(t, strings.HasPrefix(tx.execs[2].sql, "INSERT INTO workflows"))
		assert.Equal(t, 11, tx.execs[2].args[0])
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)

		require.NoError(t, lp.Close())
		assert.True(t, pool.closed)
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		boom := errors.New("connection reset")
		tx := &fakeTx{execErr: boom}
		lp := &Postgres{pool: &fakePool{tx: tx}}
		wf, _, _ := chain(t)

		_, err := lp.AddWF(context.Background(), wf)

		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "Al:chain")
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
	})
}

func TestPostgresGetFirework(t *testing.T) {
	pool := &fakePool{docs: map[int][]byte{
		7: []byte(`{"fw_id": 7, "name": "relax", "state": "READY", "parents": []}`),
	}}
	lp := &Postgres{pool: pool}

	rec, err := lp.GetFirework(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "relax", rec.Name)
	assert.Equal(t, StateReady, rec.State)

	_, err = lp.GetFirework(context.Background(), 8)
	assert.ErrorIs(t, err, ErrFireworkNotFound)
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package launchpad

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/workflow"
)

// schema is applied on open; every statement is idempotent.
var schema = []string{
	`CREATE SEQUENCE IF NOT EXISTS fw_id_seq`,
	`CREATE TABLE IF NOT EXISTS fireworks (
		fw_id      INTEGER PRIMARY KEY,
		uuid       UUID NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		state      TEXT NOT NULL,
		doc        JSONB NOT NULL,
		created_on TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workflows (
		root_fw_id INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		doc        JSONB NOT NULL,
		created_on TIMESTAMPTZ NOT NULL
	)`,
}

// pgTx is the subset of pgx.Tx the launchpad uses.
type pgTx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// pgPool is the subset of *pgxpool.Pool the launchpad uses.
type pgPool interface {
	Begin(ctx context.Context) (pgTx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// pgxPool wraps *pgxpool.Pool as pgPool.
type pgxPool struct {
	base *pgxpool.Pool
}

func (p *pgxPool) Begin(ctx context.Context) (pgTx, error) {
	tx, err := p.base.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (p *pgxPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.base.QueryRow(ctx, sql, args...)
}

func (p *pgxPool) Close() { p.base.Close() }

// Postgres is a launchpad stored in PostgreSQL.
type Postgres struct {
	pool pgPool
}

var _ LaunchPad = (*Postgres)(nil)

// OpenPostgres connects and makes sure the schema exists.
func OpenPostgres(ctx context.Context, connString string) (*Postgres, error) {
	pool, err := pgxpool.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connecting to launchpad database: %w", err)
	}
	lp := &Postgres{pool: &pgxPool{base: pool}}
	if err := lp.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return lp, nil
}

func (p *Postgres) migrate(ctx context.Context) (err error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("creating launchpad schema: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	for _, stmt := range schema {
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating launchpad schema: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// AddWF stores wf in one transaction. Ids come from fw_id_seq.
func (p *Postgres) AddWF(ctx context.Context, wf *workflow.Workflow) (ids map[string]int, err error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("adding workflow %q: %w", wf.Name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			err = fmt.Errorf("adding workflow %q: %w", wf.Name, err)
		}
	}()

	next := func() (int, error) {
		var id int64
		if err := tx.QueryRow(ctx, `SELECT nextval('fw_id_seq')`).Scan(&id); err != nil {
			return 0, err
		}
		return int(id), nil
	}
	sub, err := newSubmission(wf, next, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	for _, rec := range sub.fireworks {
		doc, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO fireworks (fw_id, uuid, name, state, doc, created_on) VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.FWID, rec.UUID, rec.Name, string(rec.State), doc, rec.CreatedOn,
		); err != nil {
			return nil, err
		}
	}

	doc, err := json.Marshal(sub.workflow)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO workflows (root_fw_id, name, doc, created_on) VALUES ($1, $2, $3, $4)`,
		sub.rootID(), sub.workflow.Name, doc, sub.workflow.CreatedOn,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Stored workflow in postgres.", "name", wf.Name, "fireworks", len(sub.fireworks))
	return sub.ids, nil
}

// GetFirework reads one firework record.
func (p *Postgres) GetFirework(ctx context.Context, id int) (*FireworkRecord, error) {
	var doc []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM fireworks WHERE fw_id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFireworkNotFound
	}
	if err != nil {
		return nil, err
	}
	rec := &FireworkRecord{}
	if err := json.Unmarshal(doc, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

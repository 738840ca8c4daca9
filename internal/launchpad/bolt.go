// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package launchpad

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/workflow"
	bolt "go.etcd.io/bbolt"
)

var (
	fireworksBucket = []byte("fireworks")
	workflowsBucket = []byte("workflows")
)

// Bolt is a launchpad stored in a single bbolt file.
type Bolt struct {
	db *bolt.DB
}

var _ LaunchPad = (*Bolt)(nil)

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt launchpad %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{fireworksBucket, workflowsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}
	return &Bolt{db: db}, nil
}

func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

// AddWF stores wf in one transaction. Ids come from the fireworks bucket
// sequence.
func (b *Bolt) AddWF(ctx context.Context, wf *workflow.Workflow) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var ids map[string]int
	err := b.db.Update(func(tx *bolt.Tx) error {
		fws := tx.Bucket(fireworksBucket)
		next := func() (int, error) {
			seq, err := fws.NextSequence()
			return int(seq), err
		}
		sub, err := newSubmission(wf, next, time.Now().UTC())
		if err != nil {
			return err
		}
		for _, rec := range sub.fireworks {
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := fws.Put(itob(rec.FWID), data); err != nil {
				return err
			}
		}
		data, err := json.Marshal(sub.workflow)
		if err != nil {
			return err
		}
		if err := tx.Bucket(workflowsBucket).Put(itob(sub.rootID()), data); err != nil {
			return err
		}
		ids = sub.ids
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding workflow %q: %w", wf.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("Stored workflow in bolt.", "name", wf.Name, "path", b.db.Path())
	return ids, nil
}

// GetFirework reads one firework record.
func (b *Bolt) GetFirework(ctx context.Context, id int) (*FireworkRecord, error) {
	var rec *FireworkRecord
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(fireworksBucket).Get(itob(id))
		if data == nil {
			return ErrFireworkNotFound
		}
		rec = &FireworkRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Workflow reads the workflow whose first firework has id root.
func (b *Bolt) Workflow(root int) (*WorkflowRecord, error) {
	var rec *WorkflowRecord
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(workflowsBucket).Get(itob(root))
		if data == nil {
			return ErrFireworkNotFound
		}
		rec = &WorkflowRecord{}
		return json.Unmarshal(data, rec)
	})
	return rec, err
}

// Close closes the database file.
func (b *Bolt) Close() error { return b.db.Close() }

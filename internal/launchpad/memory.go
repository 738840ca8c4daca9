// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package launchpad

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/workflow"
)

// Memory is a process local launchpad. Records are kept in sync.Maps keyed
// by firework id so concurrent submissions do not contend on one lock.
type Memory struct {
	fireworks sync.Map // Key: fw_id int, Value: FireworkRecord
	workflows sync.Map // Key: root fw_id int, Value: WorkflowRecord
	lastID    atomic.Int64
}

var _ LaunchPad = (*Memory)(nil)

// NewMemory returns an empty in-memory launchpad.
func NewMemory() *Memory {
	return &Memory{}
}

// AddWF stores wf.
func (m *Memory) AddWF(ctx context.Context, wf *workflow.Workflow) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	next := func() (int, error) { return int(m.lastID.Add(1)), nil }
	sub, err := newSubmission(wf, next, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for _, rec := range sub.fireworks {
		m.fireworks.Store(rec.FWID, rec)
	}
	m.workflows.Store(sub.rootID(), sub.workflow)

	ctxlog.FromContext(ctx).Debug("Stored workflow in memory.", "name", wf.Name, "fireworks", len(sub.fireworks))
	return sub.ids, nil
}

// GetFirework returns a copy of the stored record.
func (m *Memory) GetFirework(ctx context.Context, id int) (*FireworkRecord, error) {
	v, ok := m.fireworks.Load(id)
	if !ok {
		return nil, ErrFireworkNotFound
	}
	rec := v.(FireworkRecord)
	return &rec, nil
}

// Workflow returns the workflow whose first firework has id root.
func (m *Memory) Workflow(root int) (WorkflowRecord, bool) {
	v, ok := m.workflows.Load(root)
	if !ok {
		return WorkflowRecord{}, false
	}
	return v.(WorkflowRecord), true
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package launchpad

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/workflow"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrFireworkNotFound is returned by GetFirework for an unknown id.
var ErrFireworkNotFound = errors.New("firework not found")

// State is the queue state of a firework.
type State string

const (
	StateReady   State = "READY"
	StateWaiting State = "WAITING"
)

// FireworkRecord is a firework as stored in the queue.
type FireworkRecord struct {
	FWID      int            `json:"fw_id"`
	UUID      string         `json:"uuid"`
	Name      string         `json:"name"`
	State     State          `json:"state"`
	Parents   []int          `json:"parents"`
	Spec      map[string]any `json:"spec"`
	CreatedOn time.Time      `json:"created_on"`
}

// WorkflowRecord is a workflow as stored in the queue. It is keyed by the
// id of its first firework.
type WorkflowRecord struct {
	Name      string           `json:"name"`
	Metadata  map[string]any   `json:"metadata"`
	Nodes     []int            `json:"nodes"`
	Links     map[string][]int `json:"links"`
	State     State            `json:"state"`
	CreatedOn time.Time        `json:"created_on"`
}

// LaunchPad accepts workflows for execution.
type LaunchPad interface {
	// AddWF stores wf and returns the id assigned to each firework, keyed
	// by firework UUID.
	AddWF(ctx context.Context, wf *workflow.Workflow) (map[string]int, error)
	// GetFirework returns a stored firework.
	GetFirework(ctx context.Context, id int) (*FireworkRecord, error)
	Close() error
}

// Open connects to the backend cfg describes.
func Open(ctx context.Context, cfg Config) (LaunchPad, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, logger := ctxlog.With(ctx, "backend", cfg.Backend)
	logger.Debug("Opening launchpad.", "source", cfg.Source())
	switch cfg.Backend {
	case BackendMemory:
		logger.Warn("Memory launchpad keeps workflows only until the process exits.")
		return NewMemory(), nil
	case BackendBolt:
		return OpenBolt(cfg.Path)
	case BackendPostgres:
		return OpenPostgres(ctx, cfg.ConnString())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// submission is a workflow converted to records with ids assigned.
type submission struct {
	fireworks []FireworkRecord
	workflow  WorkflowRecord
	ids       map[string]int
}

// rootID keys the workflow record.
func (s *submission) rootID() int { return s.workflow.Nodes[0] }

// newSubmission assigns ids from next in dependency order.
func newSubmission(wf *workflow.Workflow, next func() (int, error), now time.Time) (*submission, error) {
	doc := wf.AsDocument()
	sub := &submission{ids: make(map[string]int, len(doc.Fireworks))}
	for _, fd := range doc.Fireworks {
		id, err := next()
		if err != nil {
			return nil, fmt.Errorf("allocating firework id: %w", err)
		}
		sub.ids[fd.UUID] = id
	}

	sub.workflow = WorkflowRecord{
		Name:      doc.Name,
		Metadata:  doc.Metadata,
		Links:     make(map[string][]int, len(doc.Links)),
		State:     StateReady,
		CreatedOn: now,
	}
	for _, fd := range doc.Fireworks {
		rec := FireworkRecord{
			FWID:      sub.ids[fd.UUID],
			UUID:      fd.UUID,
			Name:      fd.Name,
			State:     StateReady,
			Parents:   []int{},
			Spec:      fd.Spec,
			CreatedOn: now,
		}
		for _, p := range fd.Parents {
			rec.Parents = append(rec.Parents, sub.ids[p])
		}
		if len(rec.Parents) > 0 {
			rec.State = StateWaiting
		}
		sub.fireworks = append(sub.fireworks, rec)
		sub.workflow.Nodes = append(sub.workflow.Nodes, rec.FWID)

		children := make([]int, 0, len(doc.Links[fd.UUID]))
		for _, c := range doc.Links[fd.UUID] {
			children = append(children, sub.ids[c])
		}
		sub.workflow.Links[strconv.Itoa(rec.FWID)] = children
	}
	return sub, nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package workflow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/relaxflow/internal/firework"
)

var (
	// ErrCycle is returned when parent links form a cycle.
	ErrCycle = errors.New("workflow has a dependency cycle")
	// ErrUnknownParent is returned when a firework depends on a firework
	// outside the workflow.
	ErrUnknownParent = errors.New("parent firework is not part of the workflow")
	// ErrDuplicateFirework is returned when the same firework is added twice.
	ErrDuplicateFirework = errors.New("duplicate firework")
	// ErrEmpty is returned for a workflow without fireworks.
	ErrEmpty = errors.New("workflow has no fireworks")
)

// Workflow is a named set of fireworks linked by their parents.
type Workflow struct {
	Name     string
	Metadata map[string]any

	fireworks []*firework.Firework
	index     map[uuid.UUID]int
}

// New validates the graph formed by the fireworks' parents.
func New(name string, fws []*firework.Firework, metadata map[string]any) (*Workflow, error) {
	if len(fws) == 0 {
		return nil, ErrEmpty
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	wf := &Workflow{
		Name:      name,
		Metadata:  metadata,
		fireworks: append([]*firework.Firework(nil), fws...),
		index:     make(map[uuid.UUID]int, len(fws)),
	}
	for i, fw := range fws {
		if _, ok := wf.index[fw.ID]; ok {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateFirework, fw.Name, fw.ID)
		}
		wf.index[fw.ID] = i
	}
	if err := wf.Validate(); err != nil {
		return nil, err
	}
	return wf, nil
}

// Validate re-checks parent membership and acyclicity. Parents are plain
// fields on the fireworks, so callers that edit them afterwards can check
// the graph again.
func (wf *Workflow) Validate() error {
	for _, fw := range wf.fireworks {
		for _, p := range fw.Parents {
			if _, ok := wf.index[p.ID]; !ok {
				return fmt.Errorf("%w: %q depends on %q", ErrUnknownParent, fw.Name, p.Name)
			}
		}
	}
	return wf.detectCycles()
}

// detectCycles walks child links depth first, tracking the current path.
func (wf *Workflow) detectCycles() error {
	children := wf.children()
	permanent := make(map[uuid.UUID]bool)
	temporary := make(map[uuid.UUID]bool)

	var visit func(fw *firework.Firework) error
	visit = func(fw *firework.Firework) error {
		if permanent[fw.ID] {
			return nil
		}
		if temporary[fw.ID] {
			return fmt.Errorf("%w: involving firework %q", ErrCycle, fw.Name)
		}
		temporary[fw.ID] = true
		for _, child := range children[fw.ID] {
			if err := visit(child); err != nil {
				return err
			}
		}
		delete(temporary, fw.ID)
		permanent[fw.ID] = true
		return nil
	}

	for _, fw := range wf.fireworks {
		if err := visit(fw); err != nil {
			return err
		}
	}
	return nil
}

func (wf *Workflow) children() map[uuid.UUID][]*firework.Firework {
	out := make(map[uuid.UUID][]*firework.Firework, len(wf.fireworks))
	for _, fw := range wf.fireworks {
		for _, p := range fw.Parents {
			out[p.ID] = append(out[p.ID], fw)
		}
	}
	return out
}

// Fireworks returns the fireworks in insertion order.
func (wf *Workflow) Fireworks() []*firework.Firework {
	return append([]*firework.Firework(nil), wf.fireworks...)
}

// Links maps every firework to its children, in insertion order.
func (wf *Workflow) Links() map[uuid.UUID][]uuid.UUID {
	children := wf.children()
	out := make(map[uuid.UUID][]uuid.UUID, len(wf.fireworks))
	for _, fw := range wf.fireworks {
		ids := make([]uuid.UUID, 0, len(children[fw.ID]))
		for _, c := range children[fw.ID] {
			ids = append(ids, c.ID)
		}
		out[fw.ID] = ids
	}
	return out
}

// Ordered returns the fireworks parents first. Among fireworks that are
// ready at the same time, insertion order is kept.
func (wf *Workflow) Ordered() []*firework.Firework {
	pending := make(map[uuid.UUID]int, len(wf.fireworks))
	for _, fw := range wf.fireworks {
		pending[fw.ID] = len(fw.Parents)
	}
	children := wf.children()

	out := make([]*firework.Firework, 0, len(wf.fireworks))
	done := make(map[uuid.UUID]bool, len(wf.fireworks))
	for len(out) < len(wf.fireworks) {
		progressed := false
		for _, fw := range wf.fireworks {
			if done[fw.ID] || pending[fw.ID] > 0 {
				continue
			}
			done[fw.ID] = true
			out = append(out, fw)
			for _, c := range children[fw.ID] {
				pending[c.ID]--
			}
			progressed = true
			break
		}
		if !progressed {
			// Only reachable if parents were edited into a cycle after New.
			break
		}
	}
	return out
}

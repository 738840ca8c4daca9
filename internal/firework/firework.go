// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package firework

import (
	"github.com/google/uuid"
)

// Firework is a named task sequence with its dependencies.
type Firework struct {
	ID      uuid.UUID
	Name    string
	Parents []*Firework
	// Spec holds passthrough options stored alongside the tasks, such as
	// worker category or priority.
	Spec map[string]any

	seq Sequence
}

// New builds a firework from tasks given in stage order.
func New(name string, tasks []Task, parents []*Firework, spec map[string]any) (*Firework, error) {
	seq, err := NewSequence(tasks...)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		spec = map[string]any{}
	}
	return &Firework{
		ID:      uuid.New(),
		Name:    name,
		Parents: append([]*Firework(nil), parents...),
		Spec:    spec,
		seq:     seq,
	}, nil
}

// Tasks returns a copy of the task list in execution order.
func (fw *Firework) Tasks() []Task { return fw.seq.Tasks() }

// HasRun reports whether the firework runs VASP.
func (fw *Firework) HasRun() bool { return fw.seq.Has(StageRun) }

// InsertPatch adds a patch task directly before the run task.
func (fw *Firework) InsertPatch(t Task) error { return fw.seq.InsertPatch(t) }

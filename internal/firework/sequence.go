// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package firework

import (
	"errors"
	"fmt"
)

var (
	// ErrStageOrder is returned when a task would break the stage order.
	ErrStageOrder = errors.New("task out of stage order")
	// ErrNoRunTask is returned when a patch is inserted into a sequence
	// that never runs VASP.
	ErrNoRunTask = errors.New("sequence has no run task")
)

// Sequence is an ordered list of tasks whose stages never decrease. Only
// StagePatch may appear more than once.
type Sequence struct {
	tasks []Task
}

// NewSequence appends tasks in order and fails on the first violation.
func NewSequence(tasks ...Task) (Sequence, error) {
	var s Sequence
	for _, t := range tasks {
		if err := s.Append(t); err != nil {
			return Sequence{}, err
		}
	}
	return s, nil
}

// Append adds t at the end.
func (s *Sequence) Append(t Task) error {
	if n := len(s.tasks); n > 0 {
		last := s.tasks[n-1].Stage()
		switch {
		case t.Stage() < last:
			return fmt.Errorf("%w: %s after %s", ErrStageOrder, t.Kind(), s.tasks[n-1].Kind())
		case t.Stage() == last && last != StagePatch:
			return fmt.Errorf("%w: second %s task", ErrStageOrder, t.Kind())
		}
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// InsertPatch places a patch task directly before the run task, after any
// patches already there.
func (s *Sequence) InsertPatch(t Task) error {
	if t.Stage() != StagePatch {
		return fmt.Errorf("%w: %s is not a patch task", ErrStageOrder, t.Kind())
	}
	idx := s.index(StageRun)
	if idx < 0 {
		return ErrNoRunTask
	}
	s.tasks = append(s.tasks, nil)
	copy(s.tasks[idx+1:], s.tasks[idx:])
	s.tasks[idx] = t
	return nil
}

// Has reports whether a task of the given stage is present.
func (s Sequence) Has(stage Stage) bool { return s.index(stage) >= 0 }

// Len is the number of tasks.
func (s Sequence) Len() int { return len(s.tasks) }

// Tasks returns a copy of the tasks in order.
func (s Sequence) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s Sequence) index(stage Stage) int {
	for i, t := range s.tasks {
		if t.Stage() == stage {
			return i
		}
	}
	return -1
}

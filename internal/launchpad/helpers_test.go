// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package launchpad

import (
	"testing"

	"github.com/specialistvlad/relaxflow/internal/firework"
	"github.com/specialistvlad/relaxflow/internal/workflow"
	"github.com/stretchr/testify/require"
)

func newFW(t *testing.T, name string, parents ...*firework.Firework) *firework.Firework {
	t.Helper()
	fw, err := firework.New(name, []firework.Task{
		firework.RunVasp{VaspCmd: ">>vasp_cmd<<", JobType: "normal"},
	}, parents, nil)
	require.NoError(t, err)
	return fw
}

// chain returns a workflow relax -> static, listed child first.
func chain(t *testing.T) (*workflow.Workflow, *firework.Firework, *firework.Firework) {
	t.Helper()
	relax := newFW(t, "relax")
	static := newFW(t, "static", relax)
	wf, err := workflow.New("Al:chain", []*firework.Firework{static, relax}, map[string]any{"formula": "Al"})
	require.NoError(t, err)
	return wf, relax, static
}

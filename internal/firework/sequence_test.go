// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package firework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceAppend(t *testing.T) {
	t.Run("accepts stage order with repeated patches", func(t *testing.T) {
		_, err := NewSequence(
			WriteInputs{},
			ModifyIncar{EnvKey: "incar_update"},
			ModifyIncar{Update: map[string]any{"SIGMA": 0.2}},
			RunVasp{},
			PassCalcLocs{},
			VaspToDB{},
		)
		assert.NoError(t, err)
	})

	testCases := []struct {
		name  string
		tasks []Task
	}{
		{name: "run before write", tasks: []Task{RunVasp{}, WriteInputs{}}},
		{name: "parse before record", tasks: []Task{RunVasp{}, VaspToDB{}, PassCalcLocs{}}},
		{name: "patch after run", tasks: []Task{WriteInputs{}, RunVasp{}, ModifyIncar{}}},
		{name: "two run tasks", tasks: []Task{RunVasp{}, RunVasp{}}},
		{name: "two write tasks", tasks: []Task{WriteInputs{}, WriteInputs{}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSequence(tc.tasks...)
			assert.ErrorIs(t, err, ErrStageOrder)
		})
	}
}

func TestSequenceInsertPatch(t *testing.T) {
	t.Run("goes directly before run, after existing patches", func(t *testing.T) {
		seq, err := NewSequence(WriteInputs{}, ModifyIncar{EnvKey: "first"}, RunVasp{}, PassCalcLocs{})
		require.NoError(t, err)

		require.NoError(t, seq.InsertPatch(ModifyIncar{EnvKey: "second"}))

		tasks := seq.Tasks()
		require.Len(t, tasks, 5)
		assert.Equal(t, ModifyIncar{EnvKey: "first"}, tasks[1])
		assert.Equal(t, ModifyIncar{EnvKey: "second"}, tasks[2])
		assert.Equal(t, RunVasp{}, tasks[3])
	})

	t.Run("needs a run task", func(t *testing.T) {
		seq, err := NewSequence(WriteInputs{})
		require.NoError(t, err)
		assert.ErrorIs(t, seq.InsertPatch(ModifyIncar{}), ErrNoRunTask)
	})

	t.Run("rejects non patch tasks", func(t *testing.T) {
		seq, err := NewSequence(RunVasp{})
		require.NoError(t, err)
		assert.ErrorIs(t, seq.InsertPatch(PassCalcLocs{}), ErrStageOrder)
	})

	t.Run("tasks accessor returns a copy", func(t *testing.T) {
		seq, err := NewSequence(WriteInputs{}, RunVasp{})
		require.NoError(t, err)
		tasks := seq.Tasks()
		tasks[0] = VaspToDB{}
		assert.Equal(t, KindWriteInputs, seq.Tasks()[0].Kind())
	})
}

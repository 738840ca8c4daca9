// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package workflow

import (
	"testing"

	"github.com/specialistvlad/relaxflow/internal/firework"
	"github.com/specialistvlad/relaxflow/internal/inputset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureOptimization(t *testing.T) {
	s := aluminium(t)

	t.Run("defaults", func(t *testing.T) {
		wf, err := StructureOptimization(s, PresetConfig{})
		require.NoError(t, err)

		assert.Equal(t, "Al:structure optimization", wf.Name)
		fws := wf.Fireworks()
		require.Len(t, fws, 1)
		assert.Equal(t, "Al-structure optimization", fws[0].Name)

		tasks := fws[0].Tasks()
		require.Len(t, tasks, 4)
		assert.Equal(t, firework.RunVasp{VaspCmd: DefaultVaspCmd, JobType: "normal"}, tasks[1])
		assert.Equal(t, DefaultDBFile, tasks[3].(firework.VaspToDB).DBFile)

		set := tasks[0].(firework.WriteInputs).InputSet
		assert.Equal(t, inputset.MPRelaxSetName, set.Name)
		assert.True(t, set.ForceGamma)

		assert.Equal(t, "Al", wf.Metadata["formula"])
	})

	t.Run("user incar settings and powerups", func(t *testing.T) {
		off := false
		wf, err := StructureOptimization(s, PresetConfig{
			VaspCmd:           "mpirun vasp_std",
			UserIncarSettings: map[string]any{"ENCUT": 600},
			AddModifyIncar:    true,
			AddWFMetadata:     &off,
		})
		require.NoError(t, err)

		tasks := wf.Fireworks()[0].Tasks()
		require.Len(t, tasks, 5)
		assert.Equal(t, firework.ModifyIncar{EnvKey: IncarUpdateEnvKey}, tasks[1])
		assert.Equal(t, 600, tasks[0].(firework.WriteInputs).InputSet.Incar["ENCUT"])
		assert.Equal(t, "mpirun vasp_std", tasks[2].(firework.RunVasp).VaspCmd)
		assert.NotContains(t, wf.Metadata, "formula")
	})
}

func TestMarshalJSON(t *testing.T) {
	a := newFW(t, "a")
	b := newFW(t, "b", a)
	wf, err := New("pair", []*firework.Firework{b, a}, map[string]any{"x": 1})
	require.NoError(t, err)

	data, err := json.Marshal(wf)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "pair", doc.Name)
	require.Len(t, doc.Fireworks, 2)
	assert.Equal(t, "a", doc.Fireworks[0].Name)
	assert.Equal(t, []string{b.ID.String()}, doc.Links[a.ID.String()])
	assert.Empty(t, doc.Links[b.ID.String()])
}

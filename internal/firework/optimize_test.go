// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package firework

import (
	"testing"

	"github.com/specialistvlad/relaxflow/internal/inputset"
	"github.com/specialistvlad/relaxflow/internal/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aluminium(t *testing.T) *structure.Structure {
	t.Helper()
	l, err := structure.NewLattice([3]structure.Vec3{{0, 2.02, 2.02}, {2.02, 0, 2.02}, {2.02, 2.02, 0}})
	require.NoError(t, err)
	s, err := structure.New(l, []structure.Site{{Species: "Al"}})
	require.NoError(t, err)
	return s
}

func kinds(fw *Firework) []string {
	var out []string
	for _, t := range fw.Tasks() {
		out = append(out, t.Kind())
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestNewOptimize(t *testing.T) {
	s := aluminium(t)

	t.Run("defaults", func(t *testing.T) {
		// Act
		fw, err := NewOptimize(s, OptimizeConfig{})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Al-structure optimization", fw.Name)
		assert.Equal(t, []string{KindWriteInputs, KindRunVasp, KindPassCalcLocs, KindVaspToDB}, kinds(fw))

		tasks := fw.Tasks()
		assert.Equal(t, RunVasp{VaspCmd: "vasp", JobType: "normal"}, tasks[1])
		assert.Equal(t, PassCalcLocs{Name: "structure optimization"}, tasks[2])

		toDB := tasks[3].(VaspToDB)
		assert.Equal(t, "", toDB.DBFile)
		assert.Equal(t, map[string]any{
			"task_label": "structure optimization",
			"metadata":   map[string]any{},
		}, toDB.AdditionalFields)
	})

	t.Run("default input set is the PRL relax set with gamma forced", func(t *testing.T) {
		fw, err := NewOptimize(s, OptimizeConfig{})
		require.NoError(t, err)

		want, err := inputset.NewPRLRelaxSet(s, true, inputset.Params{})
		require.NoError(t, err)

		write := fw.Tasks()[0].(WriteInputs)
		assert.Equal(t, want, write.InputSet)
		assert.Same(t, s, write.Structure)
	})

	t.Run("isif inserts a patch after write_inputs", func(t *testing.T) {
		fw, err := NewOptimize(s, OptimizeConfig{ISIF: ptr(2)})
		require.NoError(t, err)

		tasks := fw.Tasks()
		require.Len(t, tasks, 5)
		assert.Equal(t, ModifyIncar{Update: map[string]any{"ISIF": 2}}, tasks[1])
		assert.Equal(t, KindRunVasp, tasks[2].Kind())
	})

	t.Run("isif zero still inserts a patch", func(t *testing.T) {
		fw, err := NewOptimize(s, OptimizeConfig{ISIF: ptr(0)})
		require.NoError(t, err)

		tasks := fw.Tasks()
		require.Len(t, tasks, 5)
		assert.Equal(t, ModifyIncar{Update: map[string]any{"ISIF": 0}}, tasks[1])
	})

	t.Run("explicit configuration", func(t *testing.T) {
		parent, err := NewOptimize(s, OptimizeConfig{Name: "pre"})
		require.NoError(t, err)
		custom, err := inputset.NewMPRelaxSet(s, false, inputset.Params{})
		require.NoError(t, err)
		meta := map[string]any{"project": "prl"}

		fw, err := NewOptimize(s, OptimizeConfig{
			Name:     "relax",
			InputSet: custom,
			JobType:  "double_relaxation_run",
			VaspCmd:  "srun vasp_std",
			Metadata: meta,
			DBFile:   "/etc/db.json",
			Parents:  []*Firework{parent},
			Spec:     map[string]any{"_category": "gpu"},
		})
		require.NoError(t, err)

		tasks := fw.Tasks()
		assert.Equal(t, "Al-relax", fw.Name)
		assert.Same(t, custom, tasks[0].(WriteInputs).InputSet)
		assert.Equal(t, RunVasp{VaspCmd: "srun vasp_std", JobType: "double_relaxation_run"}, tasks[1])
		assert.Equal(t, VaspToDB{
			DBFile:           "/etc/db.json",
			AdditionalFields: map[string]any{"task_label": "relax", "metadata": meta},
		}, tasks[3])
		require.Len(t, fw.Parents, 1)
		assert.Same(t, parent, fw.Parents[0])
		assert.Equal(t, "gpu", fw.Spec["_category"])
	})

	t.Run("overrides reach the default input set", func(t *testing.T) {
		fw, err := NewOptimize(s, OptimizeConfig{
			ForceGamma:                ptr(false),
			OverrideDefaultVaspParams: &inputset.Params{UserIncarSettings: map[string]any{"ENCUT": 700}},
		})
		require.NoError(t, err)

		set := fw.Tasks()[0].(WriteInputs).InputSet
		assert.Equal(t, 700, set.Incar["ENCUT"])
		assert.False(t, set.ForceGamma)
	})

	t.Run("empty structure", func(t *testing.T) {
		_, err := NewOptimize(nil, OptimizeConfig{})
		assert.ErrorIs(t, err, structure.ErrEmptyStructure)
	})

	t.Run("each call gets a fresh identity", func(t *testing.T) {
		a, err := NewOptimize(s, OptimizeConfig{})
		require.NoError(t, err)
		b, err := NewOptimize(s, OptimizeConfig{})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dryrun

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/relaxflow/internal/firework"
	"github.com/specialistvlad/relaxflow/internal/fworker"
	"github.com/specialistvlad/relaxflow/internal/inputset"
	"github.com/specialistvlad/relaxflow/internal/structure"
	"github.com/specialistvlad/relaxflow/internal/workflow"
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

func loadWorker(t *testing.T) *fworker.FWorker {
	t.Helper()
	path := filepath.Join(t.TempDir(), "my_fworker.yaml")
	content := "name: test\nenv:\n  vasp_cmd: vasp_std\n  db_file: /db.json\n  incar_update:\n    NCORE: 4\n    SIGMA: 0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	w, err := fworker.Load(path)
	require.NoError(t, err)
	return w
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRender(t *testing.T) {
	t.Run("patches apply in order and isif wins over user settings", func(t *testing.T) {
		// Arrange
		s := aluminium(t)
		isif := 2
		fw, err := firework.NewOptimize(s, firework.OptimizeConfig{
			ISIF:                      &isif,
			VaspCmd:                   workflow.DefaultVaspCmd,
			DBFile:                    workflow.DefaultDBFile,
			OverrideDefaultVaspParams: &inputset.Params{UserIncarSettings: map[string]any{"ISIF": 7}},
		})
		require.NoError(t, err)
		wf, err := workflow.New("Al", []*firework.Firework{fw}, nil)
		require.NoError(t, err)
		_, err = workflow.AddModifyIncar(wf, workflow.ModifyIncarParams{}, "")
		require.NoError(t, err)
		_, err = workflow.AddModifyIncar(wf, workflow.ModifyIncarParams{IncarUpdate: map[string]any{"SIGMA": 0.2, "ISMEAR": 1}}, "")
		require.NoError(t, err)
		out := t.TempDir()

		// Act
		dirs, err := Render(context.Background(), wf, loadWorker(t), out)

		// Assert
		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(out, "01-al-structure-optimization")}, dirs)

		incar := readFile(t, filepath.Join(dirs[0], inputset.IncarFile))
		assert.Contains(t, incar, "ISIF = 2\n")
		assert.Contains(t, incar, "NCORE = 4\n")
		assert.Contains(t, incar, "SIGMA = 0.2\n")
		assert.Contains(t, incar, "ISMEAR = 1\n")

		for _, name := range []string{inputset.KpointsFile, inputset.PoscarFile, inputset.PotcarSpecFile} {
			assert.FileExists(t, filepath.Join(dirs[0], name))
		}

		doc := readFile(t, filepath.Join(dirs[0], FireworkFile))
		assert.Contains(t, doc, `"vasp_cmd": "vasp_std"`)
		assert.Contains(t, doc, `"db_file": "/db.json"`)
		assert.NotContains(t, doc, ">>")
	})

	t.Run("without a worker the environment patch is skipped", func(t *testing.T) {
		fw, err := firework.NewOptimize(aluminium(t), firework.OptimizeConfig{VaspCmd: workflow.DefaultVaspCmd})
		require.NoError(t, err)
		wf, err := workflow.New("Al", []*firework.Firework{fw}, nil)
		require.NoError(t, err)
		_, err = workflow.AddModifyIncar(wf, workflow.ModifyIncarParams{}, "")
		require.NoError(t, err)

		dirs, err := Render(context.Background(), wf, nil, t.TempDir())
		require.NoError(t, err)

		incar := readFile(t, filepath.Join(dirs[0], inputset.IncarFile))
		assert.NotContains(t, incar, "NCORE")
		doc := readFile(t, filepath.Join(dirs[0], FireworkFile))
		assert.Contains(t, doc, ">>vasp_cmd<<")
		assert.NotContains(t, doc, `\u003e`)
	})
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "al-structure-optimization", slug("Al-structure optimization"))
	assert.Equal(t, "fe2o3-relax", slug("  Fe2O3 -- relax! "))
}

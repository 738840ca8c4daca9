// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package fworker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workerYAML = `name: cluster
category: ''
query: '{}'
env:
  vasp_cmd: srun vasp_std
  db_file: /home/user/db.json
  incar_update:
    KPAR: 4
    NCORE: 8
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "my_fworker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		w, err := Load(writeFile(t, workerYAML))
		require.NoError(t, err)

		assert.Equal(t, "cluster", w.Name)
		assert.Equal(t, "srun vasp_std", w.Env["vasp_cmd"])
		assert.Equal(t, map[string]any{"KPAR": 4, "NCORE": 8}, w.Env["incar_update"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "env: [unclosed"))
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("no env section", func(t *testing.T) {
		w, err := Load(writeFile(t, "name: bare\n"))
		require.NoError(t, err)
		assert.NotNil(t, w.Env)
	})
}

func TestResolve(t *testing.T) {
	w, err := Load(writeFile(t, workerYAML))
	require.NoError(t, err)

	in := map[string]any{
		"vasp_cmd": Placeholder("vasp_cmd"),
		"nested": []any{
			map[string]any{"db_file": ">>db_file<<"},
			"literal",
		},
		"unknown": ">>scratch_dir<<",
		"partial": "run >>vasp_cmd<< now",
		"number":  3,
	}

	got := w.Resolve(in)

	assert.Equal(t, map[string]any{
		"vasp_cmd": "srun vasp_std",
		"nested": []any{
			map[string]any{"db_file": "/home/user/db.json"},
			"literal",
		},
		"unknown": ">>scratch_dir<<",
		"partial": "run >>vasp_cmd<< now",
		"number":  3,
	}, got)
	// The input is not modified.
	assert.Equal(t, ">>vasp_cmd<<", in["vasp_cmd"])
}

func TestNilWorkerResolvesNothing(t *testing.T) {
	var w *FWorker
	assert.Equal(t, ">>vasp_cmd<<", w.Resolve(">>vasp_cmd<<"))
}

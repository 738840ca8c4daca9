// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePOSCAR(t *testing.T) {
	t.Run("vasp5 direct", func(t *testing.T) {
		s, err := ParsePOSCAR(strings.NewReader(alPOSCAR))
		require.NoError(t, err)

		assert.Equal(t, 1, s.NumSites())
		assert.Equal(t, "Al1", s.Comment())
		assert.InDelta(t, 16.5, s.Volume(), 0.1)
	})

	t.Run("cartesian with selective dynamics", func(t *testing.T) {
		src := `NaCl
2.0
1 0 0
0 1 0
0 0 1
Na_pv Cl
1 1
Selective dynamics
Cartesian
0 0 0 T T T
1 1 1 F F F
`
		s, err := ParsePOSCAR(strings.NewReader(src))
		require.NoError(t, err)

		sites := s.Sites()
		require.Len(t, sites, 2)
		assert.Equal(t, "Na", sites[0].Species)
		assert.Equal(t, "Cl", sites[1].Species)
		for _, v := range sites[1].Frac {
			assert.InDelta(t, 1.0, v, 1e-12)
		}
		assert.InDelta(t, 8.0, s.Volume(), 1e-9)
	})

	t.Run("vasp4 takes symbols from comment", func(t *testing.T) {
		src := `Fe O
1.0
4 0 0
0 4 0
0 0 4
1 1
Direct
0 0 0
0.5 0.5 0.5
`
		s, err := ParsePOSCAR(strings.NewReader(src))
		require.NoError(t, err)
		formula, err := s.ReducedFormula()
		require.NoError(t, err)
		assert.Equal(t, "FeO", formula)
	})

	t.Run("negative scale is volume", func(t *testing.T) {
		src := "x\n-27\n1 0 0\n0 1 0\n0 0 1\nAl\n1\nd\n0 0 0\n"
		s, err := ParsePOSCAR(strings.NewReader(src))
		require.NoError(t, err)
		assert.InDelta(t, 27.0, s.Volume(), 1e-9)
	})

	t.Run("truncated file", func(t *testing.T) {
		_, err := ParsePOSCAR(strings.NewReader("x\n1.0\n1 0 0\n"))
		assert.ErrorIs(t, err, ErrInvalidPOSCAR)
	})

	t.Run("missing symbols", func(t *testing.T) {
		src := "\n1.0\n1 0 0\n0 1 0\n0 0 1\n1\nd\n0 0 0\n"
		_, err := ParsePOSCAR(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrInvalidPOSCAR)
	})
}

func TestWritePOSCAR(t *testing.T) {
	s := mustNew(t, cubic(t, 5.6),
		Site{Species: "Na", Frac: Vec3{0, 0, 0}},
		Site{Species: "Cl", Frac: Vec3{0.5, 0.5, 0.5}},
	)

	var buf bytes.Buffer
	require.NoError(t, s.WritePOSCAR(&buf))

	back, err := ParsePOSCAR(&buf)
	require.NoError(t, err)
	assert.Equal(t, "NaCl", back.Comment())
	require.Equal(t, s.NumSites(), back.NumSites())
	for i, site := range back.Sites() {
		want := s.Sites()[i]
		assert.Equal(t, want.Species, site.Species)
		for k := range site.Frac {
			assert.InDelta(t, want.Frac[k], site.Frac[k], 1e-12)
		}
	}
}

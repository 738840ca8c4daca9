// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const alPOSCAR = `Al1
1.0
   2.4746024899999998    0.0000000000000000    1.4287118000000000
   0.8248675000000000    2.3330863100000001    1.4287118000000000
   0.0000000000000000    0.0000000000000000    2.8574236000000000
Al
1
direct
   0.0000000000000000    0.0000000000000000    0.0000000000000000 Al
`

// cubic returns a simple cubic lattice with edge a.
func cubic(t *testing.T, a float64) Lattice {
	t.Helper()
	l, err := NewLattice([3]Vec3{{a, 0, 0}, {0, a, 0}, {0, 0, a}})
	require.NoError(t, err)
	return l
}

func mustNew(t *testing.T, l Lattice, sites ...Site) *Structure {
	t.Helper()
	s, err := New(l, sites)
	require.NoError(t, err)
	return s
}

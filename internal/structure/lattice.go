// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"fmt"
	"math"
)

// Vec3 is a 3-vector in Angstrom or fractional units depending on context.
type Vec3 [3]float64

func (v Vec3) dot(o Vec3) float64 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

func (v Vec3) cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) norm() float64 { return math.Sqrt(v.dot(v)) }

// Lattice holds the three lattice vectors as rows.
type Lattice struct {
	Matrix [3]Vec3
}

// NewLattice builds a lattice and rejects degenerate (zero-volume) cells.
func NewLattice(matrix [3]Vec3) (Lattice, error) {
	l := Lattice{Matrix: matrix}
	if l.Volume() < 1e-10 {
		return Lattice{}, fmt.Errorf("%w: lattice vectors are coplanar", ErrInvalidLattice)
	}
	return l, nil
}

// ABC returns the lattice vector lengths a, b, c.
func (l Lattice) ABC() Vec3 {
	return Vec3{l.Matrix[0].norm(), l.Matrix[1].norm(), l.Matrix[2].norm()}
}

// Angles returns alpha, beta, gamma in degrees.
func (l Lattice) Angles() Vec3 {
	angle := func(u, v Vec3) float64 {
		cos := u.dot(v) / (u.norm() * v.norm())
		cos = math.Max(-1, math.Min(1, cos))
		return math.Acos(cos) * 180 / math.Pi
	}
	a, b, c := l.Matrix[0], l.Matrix[1], l.Matrix[2]
	return Vec3{angle(b, c), angle(a, c), angle(a, b)}
}

// Volume is the cell volume in cubic Angstrom.
func (l Lattice) Volume() float64 {
	return math.Abs(l.Matrix[0].dot(l.Matrix[1].cross(l.Matrix[2])))
}

// inverse returns the inverse of the row matrix.
func (l Lattice) inverse() [3]Vec3 {
	a, b, c := l.Matrix[0], l.Matrix[1], l.Matrix[2]
	det := a.dot(b.cross(c))
	bc, ca, ab := b.cross(c), c.cross(a), a.cross(b)
	// Columns of the inverse are the cross products divided by det.
	var inv [3]Vec3
	for i := 0; i < 3; i++ {
		inv[i] = Vec3{bc[i] / det, ca[i] / det, ab[i] / det}
	}
	return inv
}

// Reciprocal returns the reciprocal lattice including the 2*pi factor.
func (l Lattice) Reciprocal() Lattice {
	inv := l.inverse()
	var r Lattice
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Matrix[i][j] = 2 * math.Pi * inv[j][i]
		}
	}
	return r
}

// CartesianCoords converts fractional coordinates to Cartesian.
func (l Lattice) CartesianCoords(frac Vec3) Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j] += frac[i] * l.Matrix[i][j]
		}
	}
	return out
}

// FractionalCoords converts Cartesian coordinates to fractional.
func (l Lattice) FractionalCoords(cart Vec3) Vec3 {
	inv := l.inverse()
	var out Vec3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j] += cart[i] * inv[i][j]
		}
	}
	return out
}

// IsHexagonal reports whether two angles are right angles, one is 60 or
// 120 degrees, and the two lengths spanning the right angles match.
func (l Lattice) IsHexagonal() bool {
	const angleTol, lengthTol = 5.0, 0.01
	lengths, angles := l.ABC(), l.Angles()

	var right []int
	hex := 0
	for i, a := range angles {
		if math.Abs(a-90) < angleTol {
			right = append(right, i)
		}
		if math.Abs(a-60) < angleTol || math.Abs(a-120) < angleTol {
			hex++
		}
	}
	return len(right) == 2 && hex == 1 && math.Abs(lengths[right[0]]-lengths[right[1]]) < lengthTol
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package inputset

import (
	"fmt"
	"math"

	"github.com/specialistvlad/relaxflow/internal/structure"
)

// KpointsStyle is the generation scheme of an automatic grid.
type KpointsStyle string

const (
	Gamma     KpointsStyle = "Gamma"
	Monkhorst KpointsStyle = "Monkhorst"
)

// Kpoints is an automatic k-point grid.
type Kpoints struct {
	Comment   string       `json:"comment"`
	Style     KpointsStyle `json:"generation_style"`
	Divisions [3]int       `json:"kpoints"`
}

// AutomaticDensity builds a grid with roughly kppa k-points per reciprocal
// atom, distributing divisions inversely to the lattice lengths. The grid
// is Gamma-centred when forced, when any division is odd, or when the
// lattice is hexagonal.
func AutomaticDensity(s *structure.Structure, kppa float64, forceGamma bool) Kpoints {
	if math.Abs(math.Pow(math.Floor(math.Cbrt(kppa)+0.5), 3)-kppa) < 1 {
		kppa += kppa * 0.01
	}
	lattice := s.Lattice()
	lengths := lattice.ABC()
	ngrid := kppa / float64(s.NumSites())
	mult := math.Cbrt(ngrid * lengths[0] * lengths[1] * lengths[2])

	var div [3]int
	hasOdd := false
	for i, l := range lengths {
		div[i] = int(math.Floor(math.Max(mult/l, 1)))
		if div[i]%2 == 1 {
			hasOdd = true
		}
	}

	style := Monkhorst
	if forceGamma || hasOdd || lattice.IsHexagonal() {
		style = Gamma
	}
	return Kpoints{
		Comment:   fmt.Sprintf("automatic kpoint scheme, %g per reciprocal atom", kppa),
		Style:     style,
		Divisions: div,
	}
}

// AutomaticDensityByVolume builds a grid with roughly kppvol k-points per
// cubic inverse Angstrom of reciprocal space.
func AutomaticDensityByVolume(s *structure.Structure, kppvol float64, forceGamma bool) Kpoints {
	recipVol := s.Lattice().Reciprocal().Volume()
	kppa := kppvol * recipVol * float64(s.NumSites())
	return AutomaticDensity(s, kppa, forceGamma)
}

func kpointsFromSettings(s *structure.Structure, ks KpointsSettings, forceGamma bool) (Kpoints, error) {
	switch {
	case ks.GridDensity > 0:
		return AutomaticDensity(s, ks.GridDensity, forceGamma), nil
	case ks.ReciprocalDensity > 0:
		return AutomaticDensityByVolume(s, ks.ReciprocalDensity, forceGamma), nil
	default:
		return Kpoints{}, fmt.Errorf("k-point settings need a positive grid_density or reciprocal_density")
	}
}

// Render formats the KPOINTS file.
func (k Kpoints) Render() string {
	return fmt.Sprintf("%s\n0\n%s\n%d %d %d\n", k.Comment, k.Style, k.Divisions[0], k.Divisions[1], k.Divisions[2])
}

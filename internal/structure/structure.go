// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyStructure is returned when a structure or composition has no atoms.
	ErrEmptyStructure = errors.New("structure has no sites")
	// ErrUnknownElement is returned for species symbols outside the periodic table.
	ErrUnknownElement = errors.New("unknown element")
	// ErrInvalidLattice is returned for degenerate lattices.
	ErrInvalidLattice = errors.New("invalid lattice")
	// ErrInvalidPOSCAR is returned when a POSCAR file cannot be parsed.
	ErrInvalidPOSCAR = errors.New("invalid POSCAR")
	// ErrDisordered is returned for sites carrying more than one species.
	ErrDisordered = errors.New("disordered sites are not supported")
)

// Site is one atomic position in fractional coordinates.
type Site struct {
	Species string
	Frac    Vec3
	Label   string
	// Occupancy defaults to 1 when zero.
	Occupancy float64
}

// Structure is a periodic crystal: a lattice plus atomic sites. It is
// immutable once built; accessors hand out copies.
type Structure struct {
	lattice Lattice
	sites   []Site
	comment string
}

// New validates the sites and returns a Structure.
func New(lattice Lattice, sites []Site) (*Structure, error) {
	if len(sites) == 0 {
		return nil, ErrEmptyStructure
	}
	if lattice.Volume() < 1e-10 {
		return nil, fmt.Errorf("%w: lattice vectors are coplanar", ErrInvalidLattice)
	}

	own := make([]Site, len(sites))
	for i, s := range sites {
		if _, ok := LookupElement(s.Species); !ok {
			return nil, fmt.Errorf("%w: site %d has species %q", ErrUnknownElement, i, s.Species)
		}
		if s.Occupancy == 0 {
			s.Occupancy = 1
		}
		if s.Occupancy < 0 || s.Occupancy > 1 {
			return nil, fmt.Errorf("site %d: occupancy %g out of range", i, s.Occupancy)
		}
		if s.Label == "" {
			s.Label = s.Species
		}
		own[i] = s
	}
	return &Structure{lattice: lattice, sites: own}, nil
}

// WithComment returns a copy of s carrying a free-text comment, used as the
// first POSCAR line.
func (s *Structure) WithComment(comment string) *Structure {
	cp := *s
	cp.comment = comment
	return &cp
}

// Comment returns the free-text comment, defaulting to the formula.
func (s *Structure) Comment() string {
	if s.comment != "" {
		return s.comment
	}
	return s.Composition().Formula()
}

// Lattice returns the structure's lattice.
func (s *Structure) Lattice() Lattice { return s.lattice }

// Sites returns a copy of the sites.
func (s *Structure) Sites() []Site {
	out := make([]Site, len(s.sites))
	copy(out, s.sites)
	return out
}

// NumSites is the number of atomic positions.
func (s *Structure) NumSites() int { return len(s.sites) }

// Volume is the cell volume in cubic Angstrom.
func (s *Structure) Volume() float64 { return s.lattice.Volume() }

// Composition sums site occupancies per element.
func (s *Structure) Composition() Composition {
	c := make(Composition)
	for _, site := range s.sites {
		c[site.Species] += site.Occupancy
	}
	return c
}

// ReducedFormula is a shorthand for Composition().ReducedFormula(). A nil
// structure reports ErrEmptyStructure.
func (s *Structure) ReducedFormula() (string, error) {
	if s == nil {
		return "", ErrEmptyStructure
	}
	return s.Composition().ReducedFormula()
}

// Sorted returns a copy with sites stably ordered by electronegativity of
// their species, which groups each species into one POSCAR block.
func (s *Structure) Sorted() *Structure {
	cp := *s
	cp.sites = s.Sites()
	sort.SliceStable(cp.sites, func(i, j int) bool {
		a, b := cp.sites[i].Species, cp.sites[j].Species
		return a != b && lessByElectronegativity(a, b)
	})
	return &cp
}

// SpeciesBlocks returns the species of each contiguous run of sites and
// the run lengths, the shape POSCAR lines 6 and 7 need.
func (s *Structure) SpeciesBlocks() ([]string, []int) {
	var symbols []string
	var counts []int
	for _, site := range s.sites {
		if n := len(symbols); n > 0 && symbols[n-1] == site.Species {
			counts[n-1]++
			continue
		}
		symbols = append(symbols, site.Species)
		counts = append(counts, 1)
	}
	return symbols, counts
}

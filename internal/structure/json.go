// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document mirrors the pymatgen Structure dictionary, which is what the
// Materials Project API returns and what downstream parsers expect to find
// in task specs.
type Document struct {
	Module  string     `json:"@module,omitempty"`
	Class   string     `json:"@class,omitempty"`
	Lattice LatticeDoc `json:"lattice"`
	Sites   []SiteDoc  `json:"sites"`
	Charge  *float64   `json:"charge,omitempty"`
}

// LatticeDoc is the lattice part of Document.
type LatticeDoc struct {
	Matrix [3]Vec3 `json:"matrix"`
	A      float64 `json:"a,omitempty"`
	B      float64 `json:"b,omitempty"`
	C      float64 `json:"c,omitempty"`
	Alpha  float64 `json:"alpha,omitempty"`
	Beta   float64 `json:"beta,omitempty"`
	Gamma  float64 `json:"gamma,omitempty"`
	Volume float64 `json:"volume,omitempty"`
}

// SiteDoc is one entry of Document.Sites.
type SiteDoc struct {
	Species    []SpeciesDoc   `json:"species"`
	ABC        *Vec3          `json:"abc,omitempty"`
	XYZ        *Vec3          `json:"xyz,omitempty"`
	Label      string         `json:"label,omitempty"`
	Properties map[string]any `json:"properties"`
}

// SpeciesDoc is an element with its occupancy on a site.
type SpeciesDoc struct {
	Element string  `json:"element"`
	Occu    float64 `json:"occu"`
}

// AsDocument converts s into its dictionary form.
func (s *Structure) AsDocument() Document {
	abc, angles := s.lattice.ABC(), s.lattice.Angles()
	doc := Document{
		Module: "pymatgen.core.structure",
		Class:  "Structure",
		Lattice: LatticeDoc{
			Matrix: s.lattice.Matrix,
			A:      abc[0],
			B:      abc[1],
			C:      abc[2],
			Alpha:  angles[0],
			Beta:   angles[1],
			Gamma:  angles[2],
			Volume: s.lattice.Volume(),
		},
		Sites: make([]SiteDoc, len(s.sites)),
	}
	for i, site := range s.sites {
		frac := site.Frac
		cart := s.lattice.CartesianCoords(frac)
		doc.Sites[i] = SiteDoc{
			Species:    []SpeciesDoc{{Element: site.Species, Occu: site.Occupancy}},
			ABC:        &frac,
			XYZ:        &cart,
			Label:      site.Label,
			Properties: map[string]any{},
		}
	}
	return doc
}

// FromDocument builds a Structure from its dictionary form. Sites given
// only in Cartesian coordinates are converted.
func FromDocument(doc Document) (*Structure, error) {
	lattice, err := NewLattice(doc.Lattice.Matrix)
	if err != nil {
		return nil, err
	}
	sites := make([]Site, 0, len(doc.Sites))
	for i, sd := range doc.Sites {
		if len(sd.Species) != 1 {
			return nil, fmt.Errorf("%w: site %d has %d species", ErrDisordered, i, len(sd.Species))
		}
		var frac Vec3
		switch {
		case sd.ABC != nil:
			frac = *sd.ABC
		case sd.XYZ != nil:
			frac = lattice.FractionalCoords(*sd.XYZ)
		default:
			return nil, fmt.Errorf("site %d has no coordinates", i)
		}
		sites = append(sites, Site{
			Species:   sd.Species[0].Element,
			Frac:      frac,
			Label:     sd.Label,
			Occupancy: sd.Species[0].Occu,
		})
	}
	return New(lattice, sites)
}

// MarshalJSON encodes s as a pymatgen-style dictionary.
func (s *Structure) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.AsDocument())
}

// ParseJSON decodes a pymatgen-style dictionary. Validation errors such
// as ErrDisordered are returned unwrapped by the decoder.
func ParseJSON(data []byte) (*Structure, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package inputset

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/relaxflow/internal/structure"
)

const (
	MPRelaxSetName  = "MPRelaxSet"
	PRLRelaxSetName = "PRLRelaxSet"
)

// defaultMagmom is the initial moment for elements not in mpMagmom.
const defaultMagmom = 0.6

var mpMagmom = map[string]float64{
	"Ce": 5, "Co": 0.6, "Cr": 5, "Eu": 10, "Fe": 5,
	"Mn": 5, "Mo": 5, "Ni": 5, "V": 5, "W": 5,
}

// Hubbard U parameters keyed by the most electronegative element, then by
// the transition metal.
var mpHubbardU = map[string]map[string]float64{
	"O": {"Co": 3.32, "Cr": 3.7, "Fe": 5.3, "Mn": 3.9, "Mo": 4.38, "Ni": 6.2, "V": 3.25, "W": 6.2},
	"F": {"Co": 3.32, "Cr": 3.7, "Fe": 5.3, "Mn": 3.9, "Mo": 4.38, "Ni": 6.2, "V": 3.25, "W": 6.2},
}

// mpHubbardL is the d-shell angular momentum used for every U value.
const mpHubbardL = 2

type setConfig struct {
	name    string
	incar   Incar
	kpoints KpointsSettings
}

func mpRelaxConfig() setConfig {
	return setConfig{
		name: MPRelaxSetName,
		incar: Incar{
			"ALGO":           "Fast",
			"EDIFF_PER_ATOM": 5e-5,
			"ENCUT":          520,
			"IBRION":         2,
			"ICHARG":         1,
			"ISIF":           3,
			"ISMEAR":         -5,
			"ISPIN":          2,
			"LASPH":          true,
			"LDAU":           true,
			"LORBIT":         11,
			"LREAL":          "Auto",
			"LWAVE":          false,
			"MAGMOM":         mpMagmom,
			"NELM":           100,
			"NSW":            99,
			"PREC":           "Accurate",
			"SIGMA":          0.05,
		},
		kpoints: KpointsSettings{ReciprocalDensity: 64},
	}
}

func prlRelaxConfig() setConfig {
	cfg := mpRelaxConfig()
	cfg.name = PRLRelaxSetName
	cfg.incar.Update(map[string]any{
		"ALGO":           "Normal",
		"EDIFF_PER_ATOM": 1e-6,
		"NELM":           200,
		"LCHARG":         false,
	})
	cfg.kpoints = KpointsSettings{GridDensity: 8000}
	return cfg
}

// NewMPRelaxSet returns the Materials Project relaxation set for s.
func NewMPRelaxSet(s *structure.Structure, forceGamma bool, p Params) (*InputSet, error) {
	return newSet(mpRelaxConfig(), s, forceGamma, p)
}

// NewPRLRelaxSet returns the tighter production relaxation set for s: the
// MP set with Normal algorithm, EDIFF of 1e-6 per atom, up to 200
// electronic steps, no CHGCAR and 8000 k-points per reciprocal atom.
func NewPRLRelaxSet(s *structure.Structure, forceGamma bool, p Params) (*InputSet, error) {
	return newSet(prlRelaxConfig(), s, forceGamma, p)
}

func newSet(cfg setConfig, s *structure.Structure, forceGamma bool, p Params) (*InputSet, error) {
	if s == nil || s.NumSites() == 0 {
		return nil, structure.ErrEmptyStructure
	}
	p = p.clone()
	sorted := s.Sorted()
	species, _ := sorted.SpeciesBlocks()

	incar, err := buildIncar(cfg.incar, p.UserIncarSettings, sorted)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.name, err)
	}

	ks := cfg.kpoints
	if p.UserKpointsSettings != nil {
		ks = *p.UserKpointsSettings
	}
	kpoints, err := kpointsFromSettings(sorted, ks, forceGamma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.name, err)
	}

	return &InputSet{
		Name:       cfg.name,
		Structure:  sorted,
		Incar:      incar,
		Kpoints:    kpoints,
		Potcar:     newPotcar(species, p.UserPotcarFunctional, p.UserPotcarSettings),
		ForceGamma: forceGamma,
		Params:     p,
	}, nil
}

// buildIncar merges user settings into the defaults and expands the
// structure dependent tags: per-site MAGMOM, Hubbard U lists and EDIFF.
func buildIncar(defaults Incar, user map[string]any, s *structure.Structure) (Incar, error) {
	settings := defaults.Clone()
	settings.Update(user)

	incar := make(Incar, len(settings))
	for k, v := range settings {
		switch k {
		case "MAGMOM":
			mag, err := siteMagmoms(v, s)
			if err != nil {
				return nil, err
			}
			incar[k] = mag
		case "EDIFF_PER_ATOM":
			if ediff, ok := settings["EDIFF"]; ok {
				incar["EDIFF"] = ediff
				continue
			}
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("EDIFF_PER_ATOM must be a number, got %T", v)
			}
			incar["EDIFF"] = f * float64(s.NumSites())
		default:
			incar[k] = v
		}
	}

	if ldau, _ := incar["LDAU"].(bool); ldau {
		applyHubbard(incar, s)
	} else {
		dropLDAU(incar)
	}
	return incar, nil
}

// siteMagmoms expands a per-element moment table to one value per site. A
// list is taken as already per site.
func siteMagmoms(v any, s *structure.Structure) ([]float64, error) {
	var lookup func(string) (float64, bool)
	switch table := v.(type) {
	case map[string]float64:
		lookup = func(el string) (float64, bool) { f, ok := table[el]; return f, ok }
	case map[string]any:
		lookup = func(el string) (float64, bool) { return toFloat(table[el]) }
	case []float64:
		if len(table) != s.NumSites() {
			return nil, fmt.Errorf("MAGMOM has %d values for %d sites", len(table), s.NumSites())
		}
		return append([]float64(nil), table...), nil
	case []any:
		if len(table) != s.NumSites() {
			return nil, fmt.Errorf("MAGMOM has %d values for %d sites", len(table), s.NumSites())
		}
		out := make([]float64, len(table))
		for i, item := range table {
			f, ok := toFloat(item)
			if !ok {
				return nil, fmt.Errorf("MAGMOM entry %d is not a number", i)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("MAGMOM must be a list or an element table, got %T", v)
	}

	sites := s.Sites()
	out := make([]float64, len(sites))
	for i, site := range sites {
		if f, ok := lookup(site.Species); ok {
			out[i] = f
			continue
		}
		out[i] = defaultMagmom
	}
	return out, nil
}

// applyHubbard fills the LDAU lists for oxides and fluorides of the
// correlated transition metals and switches LDAU off otherwise. Tags the
// caller already set are left alone.
func applyHubbard(incar Incar, s *structure.Structure) {
	comp := s.Composition()
	els := comp.Elements()
	anion := els[len(els)-1]
	table := mpHubbardU[anion]

	species, _ := s.SpeciesBlocks()
	u := make([]float64, len(species))
	j := make([]float64, len(species))
	l := make([]int, len(species))
	hasU := false
	for i, el := range species {
		if val, ok := table[el]; ok {
			u[i] = val
			l[i] = mpHubbardL
			hasU = true
		}
	}
	if !hasU {
		dropLDAU(incar)
		return
	}

	setDefault := func(k string, v any) {
		if _, ok := incar[k]; !ok {
			incar[k] = v
		}
	}
	setDefault("LDAUU", u)
	setDefault("LDAUJ", j)
	setDefault("LDAUL", l)
	setDefault("LDAUTYPE", 2)
	setDefault("LDAUPRINT", 1)
	setDefault("LMAXMIX", 4)
}

func dropLDAU(incar Incar) {
	for k := range incar {
		if strings.HasPrefix(k, "LDAU") {
			delete(incar, k)
		}
	}
}

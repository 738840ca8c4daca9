// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package inputset

import "strings"

// DefaultFunctional is the POTCAR family used unless overridden.
const DefaultFunctional = "PBE"

// mpPotcarSymbols lists the Materials Project POTCAR choices that differ
// from the bare element symbol.
var mpPotcarSymbols = map[string]string{
	"Ba": "Ba_sv", "Be": "Be_sv", "Ca": "Ca_sv", "Cr": "Cr_pv", "Cs": "Cs_sv",
	"Cu": "Cu_pv", "Dy": "Dy_3", "Er": "Er_3", "Fe": "Fe_pv", "Ga": "Ga_d",
	"Ge": "Ge_d", "Hf": "Hf_pv", "Ho": "Ho_3", "In": "In_d", "K": "K_sv",
	"Li": "Li_sv", "Lu": "Lu_3", "Mg": "Mg_pv", "Mn": "Mn_pv", "Mo": "Mo_pv",
	"Na": "Na_pv", "Nb": "Nb_pv", "Nd": "Nd_3", "Ni": "Ni_pv", "Os": "Os_pv",
	"Pb": "Pb_d", "Pm": "Pm_3", "Pr": "Pr_3", "Rb": "Rb_sv", "Re": "Re_pv",
	"Rh": "Rh_pv", "Ru": "Ru_pv", "Sc": "Sc_sv", "Sm": "Sm_3", "Sn": "Sn_d",
	"Sr": "Sr_sv", "Ta": "Ta_pv", "Tb": "Tb_3", "Tc": "Tc_pv", "Ti": "Ti_pv",
	"Tl": "Tl_d", "Tm": "Tm_3", "V": "V_pv", "W": "W_pv", "Y": "Y_sv",
	"Yb": "Yb_2", "Zr": "Zr_sv",
}

// Potcar is the ordered list of pseudopotential symbols, one per species
// block of the POSCAR.
type Potcar struct {
	Functional string   `json:"functional"`
	Symbols    []string `json:"symbols"`
}

func newPotcar(species []string, functional string, overrides map[string]string) Potcar {
	if functional == "" {
		functional = DefaultFunctional
	}
	symbols := make([]string, len(species))
	for i, el := range species {
		switch {
		case overrides[el] != "":
			symbols[i] = overrides[el]
		case mpPotcarSymbols[el] != "":
			symbols[i] = mpPotcarSymbols[el]
		default:
			symbols[i] = el
		}
	}
	return Potcar{Functional: functional, Symbols: symbols}
}

// Render formats POTCAR.spec: one symbol per line.
func (p Potcar) Render() string {
	if len(p.Symbols) == 0 {
		return ""
	}
	return strings.Join(p.Symbols, "\n") + "\n"
}

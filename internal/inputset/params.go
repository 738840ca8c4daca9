// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package inputset

import "strings"

// KpointsSettings selects how the k-point grid is generated. GridDensity
// (k-points per reciprocal atom) takes precedence over ReciprocalDensity
// (k-points per inverse cubic Angstrom).
type KpointsSettings struct {
	ReciprocalDensity float64 `json:"reciprocal_density,omitempty" yaml:"reciprocal_density,omitempty"`
	GridDensity       float64 `json:"grid_density,omitempty" yaml:"grid_density,omitempty"`
}

// Params are user overrides layered on top of a set's defaults.
type Params struct {
	// UserIncarSettings override INCAR tags. A nil value removes the tag.
	UserIncarSettings map[string]any `json:"user_incar_settings,omitempty"`
	// UserKpointsSettings replaces the set's k-point settings when non-nil.
	UserKpointsSettings *KpointsSettings `json:"user_kpoints_settings,omitempty"`
	// UserPotcarSettings maps an element to a POTCAR symbol, e.g. "Fe": "Fe".
	UserPotcarSettings map[string]string `json:"user_potcar_settings,omitempty"`
	// UserPotcarFunctional replaces the default PBE functional.
	UserPotcarFunctional string `json:"user_potcar_functional,omitempty"`
}

// clone returns a deep enough copy for the set to own its parameters.
func (p Params) clone() Params {
	out := Params{UserPotcarFunctional: p.UserPotcarFunctional}
	if p.UserIncarSettings != nil {
		out.UserIncarSettings = make(map[string]any, len(p.UserIncarSettings))
		for k, v := range p.UserIncarSettings {
			out.UserIncarSettings[strings.ToUpper(k)] = v
		}
	}
	if p.UserKpointsSettings != nil {
		ks := *p.UserKpointsSettings
		out.UserKpointsSettings = &ks
	}
	if p.UserPotcarSettings != nil {
		out.UserPotcarSettings = make(map[string]string, len(p.UserPotcarSettings))
		for k, v := range p.UserPotcarSettings {
			out.UserPotcarSettings[k] = v
		}
	}
	return out
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package firework

import (
	"fmt"

	"github.com/specialistvlad/relaxflow/internal/inputset"
	"github.com/specialistvlad/relaxflow/internal/structure"
)

// Defaults applied by NewOptimize.
const (
	DefaultOptimizeName = "structure optimization"
	DefaultJobType      = "normal"
	DefaultVaspCmd      = "vasp"
)

// OptimizeConfig configures NewOptimize. Pointer and map fields separate
// "not given" (nil) from an explicit value.
type OptimizeConfig struct {
	// Name of the step, default "structure optimization".
	Name string
	// InputSet is used as is when set. Otherwise a PRL relax set is built
	// from ForceGamma and OverrideDefaultVaspParams.
	InputSet *inputset.InputSet
	// ForceGamma defaults to true.
	ForceGamma                *bool
	OverrideDefaultVaspParams *inputset.Params
	JobType                   string
	VaspCmd                   string
	// ISIF, when set, adds a modify_incar task forcing that ISIF. Zero is
	// a valid ISIF and is honoured.
	ISIF     *int
	Metadata map[string]any
	DBFile   string
	Parents  []*Firework
	Spec     map[string]any
}

// NewOptimize builds the structure optimization firework for s:
//
//	write_inputs, [modify_incar{ISIF}], run_vasp, pass_calc_locs, vasp_to_db
//
// named "{reduced formula}-{name}". It performs no I/O.
func NewOptimize(s *structure.Structure, cfg OptimizeConfig) (*Firework, error) {
	name := cfg.Name
	if name == "" {
		name = DefaultOptimizeName
	}
	forceGamma := true
	if cfg.ForceGamma != nil {
		forceGamma = *cfg.ForceGamma
	}
	overrides := inputset.Params{}
	if cfg.OverrideDefaultVaspParams != nil {
		overrides = *cfg.OverrideDefaultVaspParams
	}
	jobType := cfg.JobType
	if jobType == "" {
		jobType = DefaultJobType
	}
	vaspCmd := cfg.VaspCmd
	if vaspCmd == "" {
		vaspCmd = DefaultVaspCmd
	}
	metadata := cfg.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	formula, err := s.ReducedFormula()
	if err != nil {
		return nil, err
	}

	set := cfg.InputSet
	if set == nil {
		if set, err = inputset.NewPRLRelaxSet(s, forceGamma, overrides); err != nil {
			return nil, fmt.Errorf("building input set: %w", err)
		}
	}

	tasks := []Task{WriteInputs{Structure: s, InputSet: set}}
	if cfg.ISIF != nil {
		tasks = append(tasks, ModifyIncar{Update: map[string]any{"ISIF": *cfg.ISIF}})
	}
	tasks = append(tasks,
		RunVasp{VaspCmd: vaspCmd, JobType: jobType},
		PassCalcLocs{Name: name},
		VaspToDB{
			DBFile: cfg.DBFile,
			AdditionalFields: map[string]any{
				"task_label": name,
				"metadata":   metadata,
			},
		},
	)

	return New(fmt.Sprintf("%s-%s", formula, name), tasks, cfg.Parents, cfg.Spec)
}

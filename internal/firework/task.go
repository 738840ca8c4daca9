// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package firework

import (
	"github.com/specialistvlad/relaxflow/internal/inputset"
	"github.com/specialistvlad/relaxflow/internal/structure"
)

// Stage orders tasks inside a Sequence.
type Stage int

const (
	StageWrite Stage = iota + 1
	StagePatch
	StageRun
	StageRecord
	StageParse
)

func (s Stage) String() string {
	switch s {
	case StageWrite:
		return "write"
	case StagePatch:
		return "patch"
	case StageRun:
		return "run"
	case StageRecord:
		return "record"
	case StageParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Task kinds, as stored in the "_fw_name" field of a task document.
const (
	KindWriteInputs  = "write_inputs"
	KindModifyIncar  = "modify_incar"
	KindRunVasp      = "run_vasp"
	KindPassCalcLocs = "pass_calc_locs"
	KindVaspToDB     = "vasp_to_db"
)

// Task is a deferred unit of work inside a firework.
type Task interface {
	Kind() string
	Stage() Stage
	// Params returns the task's parameters as stored in the queue.
	Params() map[string]any
}

// WriteInputs writes INCAR, KPOINTS, POSCAR and POTCAR from an input set.
type WriteInputs struct {
	Structure *structure.Structure
	InputSet  *inputset.InputSet
}

func (WriteInputs) Kind() string { return KindWriteInputs }
func (WriteInputs) Stage() Stage { return StageWrite }

func (t WriteInputs) Params() map[string]any {
	p := map[string]any{}
	if t.Structure != nil {
		p["structure"] = t.Structure.AsDocument()
	}
	if t.InputSet != nil {
		p["vasp_input_set"] = t.InputSet.AsDocument()
	}
	return p
}

// ModifyIncar patches the INCAR written by WriteInputs. Either Update holds
// the tags to set, or EnvKey names the worker environment entry that does.
type ModifyIncar struct {
	Update map[string]any
	EnvKey string
}

func (ModifyIncar) Kind() string { return KindModifyIncar }
func (ModifyIncar) Stage() Stage { return StagePatch }

func (t ModifyIncar) Params() map[string]any {
	if t.Update == nil && t.EnvKey != "" {
		return map[string]any{"incar_update": ">>" + t.EnvKey + "<<"}
	}
	update := make(map[string]any, len(t.Update))
	for k, v := range t.Update {
		update[k] = v
	}
	return map[string]any{"incar_update": update}
}

// RunVasp runs VASP under the job supervisor with the given job type.
type RunVasp struct {
	VaspCmd string
	JobType string
}

func (RunVasp) Kind() string { return KindRunVasp }
func (RunVasp) Stage() Stage { return StageRun }

func (t RunVasp) Params() map[string]any {
	return map[string]any{"vasp_cmd": t.VaspCmd, "job_type": t.JobType}
}

// PassCalcLocs records the calculation directory under Name for child
// fireworks.
type PassCalcLocs struct {
	Name string
}

func (PassCalcLocs) Kind() string { return KindPassCalcLocs }
func (PassCalcLocs) Stage() Stage { return StageRecord }

func (t PassCalcLocs) Params() map[string]any {
	return map[string]any{"name": t.Name}
}

// VaspToDB parses the calculation outputs into the database described by
// DBFile, adding AdditionalFields to the task document.
type VaspToDB struct {
	DBFile           string
	AdditionalFields map[string]any
}

func (VaspToDB) Kind() string { return KindVaspToDB }
func (VaspToDB) Stage() Stage { return StageParse }

func (t VaspToDB) Params() map[string]any {
	fields := make(map[string]any, len(t.AdditionalFields))
	for k, v := range t.AdditionalFields {
		fields[k] = v
	}
	return map[string]any{"db_file": t.DBFile, "additional_fields": fields}
}

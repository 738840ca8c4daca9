// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package workflow

import (
	"fmt"

	"github.com/specialistvlad/relaxflow/internal/firework"
	"github.com/specialistvlad/relaxflow/internal/inputset"
	"github.com/specialistvlad/relaxflow/internal/structure"
)

// Placeholders resolved from the worker environment at run time.
const (
	DefaultVaspCmd = ">>vasp_cmd<<"
	DefaultDBFile  = ">>db_file<<"
)

// PresetConfig configures StructureOptimization.
type PresetConfig struct {
	VaspCmd           string
	DBFile            string
	UserIncarSettings map[string]any
	// AddModifyIncar adds the worker environment INCAR patch.
	AddModifyIncar bool
	// AddWFMetadata defaults to true.
	AddWFMetadata *bool
	Metadata      map[string]any
}

// StructureOptimization builds the one-step optimization workflow for s
// using the Materials Project relax set with a Gamma-centred grid.
func StructureOptimization(s *structure.Structure, cfg PresetConfig) (*Workflow, error) {
	vaspCmd := cfg.VaspCmd
	if vaspCmd == "" {
		vaspCmd = DefaultVaspCmd
	}
	dbFile := cfg.DBFile
	if dbFile == "" {
		dbFile = DefaultDBFile
	}

	formula, err := s.ReducedFormula()
	if err != nil {
		return nil, err
	}
	set, err := inputset.NewMPRelaxSet(s, true, inputset.Params{UserIncarSettings: cfg.UserIncarSettings})
	if err != nil {
		return nil, fmt.Errorf("building input set: %w", err)
	}

	fw, err := firework.NewOptimize(s, firework.OptimizeConfig{
		Name:     firework.DefaultOptimizeName,
		InputSet: set,
		VaspCmd:  vaspCmd,
		DBFile:   dbFile,
	})
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]any, len(cfg.Metadata))
	for k, v := range cfg.Metadata {
		metadata[k] = v
	}
	wf, err := New(fmt.Sprintf("%s:%s", formula, firework.DefaultOptimizeName), []*firework.Firework{fw}, metadata)
	if err != nil {
		return nil, err
	}

	if cfg.AddModifyIncar {
		if _, err := AddModifyIncar(wf, ModifyIncarParams{}, ""); err != nil {
			return nil, err
		}
	}
	if cfg.AddWFMetadata == nil || *cfg.AddWFMetadata {
		if err := AddWFMetadata(wf, s); err != nil {
			return nil, err
		}
	}
	return wf, nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package workflow

import (
	"sort"
	"strings"

	"github.com/specialistvlad/relaxflow/internal/firework"
	"github.com/specialistvlad/relaxflow/internal/structure"
)

// IncarUpdateEnvKey is the worker environment entry read when
// AddModifyIncar is given no explicit update.
const IncarUpdateEnvKey = "incar_update"

// ModifyIncarParams configures AddModifyIncar. A nil IncarUpdate defers
// the update to the worker environment.
type ModifyIncarParams struct {
	IncarUpdate map[string]any
}

// AddModifyIncar inserts a modify_incar task directly before the VASP run
// of every firework whose name contains nameConstraint. Fireworks that do
// not run VASP are left alone. It returns the number of fireworks patched.
func AddModifyIncar(wf *Workflow, params ModifyIncarParams, nameConstraint string) (int, error) {
	patched := 0
	for _, fw := range wf.fireworks {
		if !strings.Contains(fw.Name, nameConstraint) || !fw.HasRun() {
			continue
		}
		task := firework.ModifyIncar{EnvKey: IncarUpdateEnvKey}
		if params.IncarUpdate != nil {
			update := make(map[string]any, len(params.IncarUpdate))
			for k, v := range params.IncarUpdate {
				update[k] = v
			}
			task = firework.ModifyIncar{Update: update}
		}
		if err := fw.InsertPatch(task); err != nil {
			return patched, err
		}
		patched++
	}
	return patched, nil
}

// AddWFMetadata records the structure's chemistry on the workflow.
func AddWFMetadata(wf *Workflow, s *structure.Structure) error {
	formula, err := s.ReducedFormula()
	if err != nil {
		return err
	}
	comp := s.Composition()
	elements := comp.Elements()
	sorted := append([]string(nil), elements...)
	sort.Strings(sorted)

	wf.Metadata["nelements"] = len(elements)
	wf.Metadata["elements"] = sorted
	wf.Metadata["formula"] = formula
	wf.Metadata["chemsys"] = comp.ChemicalSystem()
	wf.Metadata["volume"] = s.Volume()
	return nil
}

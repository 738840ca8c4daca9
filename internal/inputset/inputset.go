// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package inputset

import (
	"bytes"

	"github.com/specialistvlad/relaxflow/internal/structure"
)

// File names written for a calculation.
const (
	IncarFile      = "INCAR"
	KpointsFile    = "KPOINTS"
	PoscarFile     = "POSCAR"
	PotcarSpecFile = "POTCAR.spec"
)

// InputSet is the complete, rendered-ready input of one VASP calculation.
type InputSet struct {
	Name       string
	Structure  *structure.Structure
	Incar      Incar
	Kpoints    Kpoints
	Potcar     Potcar
	ForceGamma bool
	Params     Params
}

// Files renders every input file keyed by file name. The INCAR comes from
// incar when non-nil, which lets callers apply patches first.
func (is *InputSet) Files(incar Incar) (map[string][]byte, error) {
	if incar == nil {
		incar = is.Incar
	}
	var poscar bytes.Buffer
	if err := is.Structure.WritePOSCAR(&poscar); err != nil {
		return nil, err
	}
	return map[string][]byte{
		IncarFile:      []byte(incar.Render()),
		KpointsFile:    []byte(is.Kpoints.Render()),
		PoscarFile:     poscar.Bytes(),
		PotcarSpecFile: []byte(is.Potcar.Render()),
	}, nil
}

// Document is the serializable form of an InputSet stored with a task.
type Document struct {
	Name       string              `json:"@class"`
	Structure  *structure.Document `json:"structure"`
	Incar      map[string]any      `json:"incar"`
	Kpoints    Kpoints             `json:"kpoints"`
	Potcar     Potcar              `json:"potcar"`
	ForceGamma bool                `json:"force_gamma"`
	Params     Params              `json:"params"`
}

// AsDocument converts is into its serializable form.
func (is *InputSet) AsDocument() Document {
	doc := is.Structure.AsDocument()
	incar := make(map[string]any, len(is.Incar))
	for k, v := range is.Incar {
		incar[k] = v
	}
	return Document{
		Name:       is.Name,
		Structure:  &doc,
		Incar:      incar,
		Kpoints:    is.Kpoints,
		Potcar:     is.Potcar,
		ForceGamma: is.ForceGamma,
		Params:     is.Params,
	}
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package inputset derives VASP input files from a structure and a set of
// user parameters.
//
// Two relaxation sets are provided. NewMPRelaxSet reproduces the Materials
// Project relaxation defaults. NewPRLRelaxSet starts from those and tightens
// convergence for the group's production runs. Both are pure functions of
// their inputs: the same structure and Params always give the same INCAR,
// KPOINTS and POTCAR spec.
//
// Only the POTCAR symbols are produced (POTCAR.spec); the licensed
// pseudopotential files are assembled by the worker that runs VASP.
package inputset

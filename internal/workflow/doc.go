// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package workflow groups fireworks into a named, acyclic dependency graph
// and provides the powerups and presets used to assemble submissions.
//
// Powerups modify a workflow in place: AddModifyIncar adds INCAR patches
// ahead of every VASP run, AddWFMetadata tags the workflow with the
// structure's chemistry. StructureOptimization is the single step
// optimization preset.
package workflow

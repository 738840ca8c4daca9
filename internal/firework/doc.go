// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package firework describes the unit of work a launchpad schedules: a
// Firework is a named, ordered sequence of task descriptors plus links to
// the fireworks it depends on.
//
// Tasks are descriptors, not actions. Nothing in this package touches the
// filesystem or runs VASP; a worker interprets the descriptors later.
//
// Every task belongs to a Stage and a Sequence only accepts tasks in stage
// order:
//
//	write_inputs -> modify_incar* -> run_vasp -> pass_calc_locs -> vasp_to_db
//
// modify_incar is the only stage that may repeat. NewOptimize builds the
// standard structure optimization firework on top of this.
package firework

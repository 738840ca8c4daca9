// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package launchpad is the job queue workflows are submitted to.
//
// The queue location is described by a YAML file (my_launchpad.yaml). When
// no path is given it is found through the FW_CONFIG_FILE environment
// variable, whose YAML may name the file in LAUNCHPAD_LOC or keep it next
// to itself.
//
// Three backends store the queue:
//
//   - postgres: a shared PostgreSQL database, the production setup.
//   - bolt: a single bbolt file, for one machine.
//   - memory: process local, for tests and dry runs.
//
// AddWF assigns integer firework ids in dependency order. Fireworks without
// parents start READY, the rest WAITING.
package launchpad

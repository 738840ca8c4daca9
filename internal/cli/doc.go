// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package cli is responsible for parsing command-line arguments, loading the
// submission's HCL configuration, and handling process-level concerns like
// exit codes. Flags given on the command line override the file values.
package cli

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package app contains the submission logic: it turns a Config into a
// structure optimization workflow and hands it to the launchpad, or renders
// it to disk for inspection. It is decoupled from any specific entrypoint
// like a CLI.
package app

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package mpapi is a small client for the Materials Project REST API. It
// only knows how to fetch structures by material id, which is all a
// submission needs, and implements structure.Provider.
package mpapi

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package structure models periodic crystal structures: a lattice, the
// atomic sites inside it and the composition they add up to.
//
// Structures come from POSCAR files (ReadPOSCARFile, ParsePOSCAR) or from
// the pymatgen dictionary form the Materials Project API returns
// (FromDocument, ParseJSON). They are immutable once built.
//
// Formulas follow the pymatgen conventions: elements ordered by Pauling
// electronegativity, amounts reduced by their greatest common divisor and
// a handful of diatomic and peroxide formulas written in their
// conventional form:
//
//	Fe4O6 -> Fe2O3
//	O8    -> O2
//	Li2O2 -> Li2O2
package structure

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import "math"

// Element is a chemical element as far as formula handling needs it.
type Element struct {
	Symbol string
	Z      int
	// X is the Pauling electronegativity; NaN when undefined (noble gases).
	X float64
}

var nan = math.NaN()

var periodicTable = []Element{
	{"H", 1, 2.20}, {"He", 2, nan}, {"Li", 3, 0.98}, {"Be", 4, 1.57},
	{"B", 5, 2.04}, {"C", 6, 2.55}, {"N", 7, 3.04}, {"O", 8, 3.44},
	{"F", 9, 3.98}, {"Ne", 10, nan}, {"Na", 11, 0.93}, {"Mg", 12, 1.31},
	{"Al", 13, 1.61}, {"Si", 14, 1.90}, {"P", 15, 2.19}, {"S", 16, 2.58},
	{"Cl", 17, 3.16}, {"Ar", 18, nan}, {"K", 19, 0.82}, {"Ca", 20, 1.00},
	{"Sc", 21, 1.36}, {"Ti", 22, 1.54}, {"V", 23, 1.63}, {"Cr", 24, 1.66},
	{"Mn", 25, 1.55}, {"Fe", 26, 1.83}, {"Co", 27, 1.88}, {"Ni", 28, 1.91},
	{"Cu", 29, 1.90}, {"Zn", 30, 1.65}, {"Ga", 31, 1.81}, {"Ge", 32, 2.01},
	{"As", 33, 2.18}, {"Se", 34, 2.55}, {"Br", 35, 2.96}, {"Kr", 36, 3.00},
	{"Rb", 37, 0.82}, {"Sr", 38, 0.95}, {"Y", 39, 1.22}, {"Zr", 40, 1.33},
	{"Nb", 41, 1.60}, {"Mo", 42, 2.16}, {"Tc", 43, 1.90}, {"Ru", 44, 2.20},
	{"Rh", 45, 2.28}, {"Pd", 46, 2.20}, {"Ag", 47, 1.93}, {"Cd", 48, 1.69},
	{"In", 49, 1.78}, {"Sn", 50, 1.96}, {"Sb", 51, 2.05}, {"Te", 52, 2.10},
	{"I", 53, 2.66}, {"Xe", 54, 2.60}, {"Cs", 55, 0.79}, {"Ba", 56, 0.89},
	{"La", 57, 1.10}, {"Ce", 58, 1.12}, {"Pr", 59, 1.13}, {"Nd", 60, 1.14},
	{"Pm", 61, 1.13}, {"Sm", 62, 1.17}, {"Eu", 63, 1.20}, {"Gd", 64, 1.20},
	{"Tb", 65, 1.10}, {"Dy", 66, 1.22}, {"Ho", 67, 1.23}, {"Er", 68, 1.24},
	{"Tm", 69, 1.25}, {"Yb", 70, 1.10}, {"Lu", 71, 1.27}, {"Hf", 72, 1.30},
	{"Ta", 73, 1.50}, {"W", 74, 2.36}, {"Re", 75, 1.90}, {"Os", 76, 2.20},
	{"Ir", 77, 2.20}, {"Pt", 78, 2.28}, {"Au", 79, 2.54}, {"Hg", 80, 2.00},
	{"Tl", 81, 1.62}, {"Pb", 82, 2.33}, {"Bi", 83, 2.02}, {"Po", 84, 2.00},
	{"At", 85, 2.20}, {"Rn", 86, 2.20}, {"Fr", 87, 0.70}, {"Ra", 88, 0.90},
	{"Ac", 89, 1.10}, {"Th", 90, 1.30}, {"Pa", 91, 1.50}, {"U", 92, 1.38},
	{"Np", 93, 1.36}, {"Pu", 94, 1.28}, {"Am", 95, 1.30}, {"Cm", 96, 1.30},
	{"Bk", 97, 1.30}, {"Cf", 98, 1.30}, {"Es", 99, 1.30}, {"Fm", 100, 1.30},
	{"Md", 101, 1.30}, {"No", 102, 1.30}, {"Lr", 103, 1.30},
}

var elementsBySymbol = func() map[string]Element {
	m := make(map[string]Element, len(periodicTable))
	for _, e := range periodicTable {
		m[e.Symbol] = e
	}
	return m
}()

// LookupElement returns the element for a symbol such as "Fe".
func LookupElement(symbol string) (Element, bool) {
	e, ok := elementsBySymbol[symbol]
	return e, ok
}

// lessByElectronegativity orders symbols the way formulas are written:
// increasing electronegativity, undefined values last, ties by symbol.
func lessByElectronegativity(a, b string) bool {
	ea, eb := elementsBySymbol[a], elementsBySymbol[b]
	xa, xb := ea.X, eb.X
	switch {
	case math.IsNaN(xa) && math.IsNaN(xb):
		return a < b
	case math.IsNaN(xa):
		return false
	case math.IsNaN(xb):
		return true
	case xa != xb:
		return xa < xb
	default:
		return a < b
	}
}

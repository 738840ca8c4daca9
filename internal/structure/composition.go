// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// amountTol is how far an amount may sit from an integer and still be
// reduced as one.
const amountTol = 1e-8

// specialFormulas maps reduced formulas of diatomic elements and
// peroxides to their conventional written form.
var specialFormulas = map[string]string{
	"LiO": "Li2O2",
	"NaO": "Na2O2",
	"KO":  "K2O2",
	"HO":  "H2O2",
	"CsO": "Cs2O2",
	"RbO": "Rb2O2",
	"O":   "O2",
	"N":   "N2",
	"F":   "F2",
	"Cl":  "Cl2",
	"H":   "H2",
}

// Composition maps element symbols to amounts.
type Composition map[string]float64

// Elements returns the symbols with a positive amount in formula order.
func (c Composition) Elements() []string {
	els := make([]string, 0, len(c))
	for el, amt := range c {
		if amt > amountTol {
			els = append(els, el)
		}
	}
	sort.Slice(els, func(i, j int) bool { return lessByElectronegativity(els[i], els[j]) })
	return els
}

// NumAtoms is the total amount over all elements.
func (c Composition) NumAtoms() float64 {
	var n float64
	for _, amt := range c {
		n += amt
	}
	return n
}

// Formula is the unreduced formula, e.g. "Fe4O6".
func (c Composition) Formula() string {
	var sb strings.Builder
	for _, el := range c.Elements() {
		sb.WriteString(el)
		sb.WriteString(formatAmount(c[el]))
	}
	return sb.String()
}

// ChemicalSystem is the dash-joined, alphabetically sorted element list,
// e.g. "Fe-O".
func (c Composition) ChemicalSystem() string {
	els := c.Elements()
	sort.Strings(els)
	return strings.Join(els, "-")
}

// ReducedFormula returns the formula divided by the greatest common
// divisor of the amounts, e.g. "Fe2O3" for Fe4O6 and "O2" for O8.
func (c Composition) ReducedFormula() (string, error) {
	els := c.Elements()
	if len(els) == 0 {
		return "", ErrEmptyStructure
	}

	factor := 1.0
	if ints, ok := integralAmounts(c, els); ok {
		g := ints[0]
		for _, n := range ints[1:] {
			g = gcd(g, n)
		}
		factor = float64(g)
	}

	var sb strings.Builder
	for _, el := range els {
		sb.WriteString(el)
		sb.WriteString(formatAmount(c[el] / factor))
	}
	formula := sb.String()
	if special, ok := specialFormulas[formula]; ok {
		formula = special
	}
	return formula, nil
}

func integralAmounts(c Composition, els []string) ([]int64, bool) {
	ints := make([]int64, len(els))
	for i, el := range els {
		r := math.Round(c[el])
		if math.Abs(c[el]-r) > amountTol || r < 1 {
			return nil, false
		}
		ints[i] = int64(r)
	}
	return ints, true
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func formatAmount(amt float64) string {
	if math.Abs(amt-1) < amountTol {
		return ""
	}
	if r := math.Round(amt); math.Abs(amt-r) < amountTol {
		return strconv.FormatInt(int64(r), 10)
	}
	return strconv.FormatFloat(math.Round(amt*1e8)/1e8, 'f', -1, 64)
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ReadPOSCARFile opens and parses a POSCAR file. A missing file surfaces
// the os error untouched so callers can test it with fs.ErrNotExist.
func ReadPOSCARFile(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParsePOSCAR(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParsePOSCAR reads VASP 4 or VASP 5 POSCAR content. In VASP 4 files the
// species symbols are taken from the comment line.
func ParsePOSCAR(r io.Reader) (*Structure, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	p := &poscarParser{lines: lines}
	return p.parse()
}

type poscarParser struct {
	lines []string
	pos   int
}

func (p *poscarParser) next() (string, error) {
	if p.pos >= len(p.lines) {
		return "", fmt.Errorf("%w: unexpected end of file at line %d", ErrInvalidPOSCAR, p.pos+1)
	}
	line := p.lines[p.pos]
	p.pos++
	return line, nil
}

func (p *poscarParser) floats(n int) (Vec3, error) {
	line, err := p.next()
	if err != nil {
		return Vec3{}, err
	}
	fields := strings.Fields(line)
	if len(fields) < n {
		return Vec3{}, fmt.Errorf("%w: line %d: expected %d numbers", ErrInvalidPOSCAR, p.pos, n)
	}
	var v Vec3
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("%w: line %d: %v", ErrInvalidPOSCAR, p.pos, err)
		}
		v[i] = f
	}
	return v, nil
}

func (p *poscarParser) parse() (*Structure, error) {
	comment, err := p.next()
	if err != nil {
		return nil, err
	}
	comment = strings.TrimSpace(comment)

	scaleLine, err := p.next()
	if err != nil {
		return nil, err
	}
	scaleFields := strings.Fields(scaleLine)
	if len(scaleFields) == 0 {
		return nil, fmt.Errorf("%w: missing scale factor", ErrInvalidPOSCAR)
	}
	scale, err := strconv.ParseFloat(scaleFields[0], 64)
	if err != nil || scale == 0 {
		return nil, fmt.Errorf("%w: bad scale factor %q", ErrInvalidPOSCAR, scaleFields[0])
	}

	var matrix [3]Vec3
	for i := range matrix {
		if matrix[i], err = p.floats(3); err != nil {
			return nil, err
		}
	}
	raw := Lattice{Matrix: matrix}
	if scale < 0 {
		// A negative scale is the target cell volume.
		scale = math.Cbrt(-scale / raw.Volume())
	}
	for i := range matrix {
		for j := range matrix[i] {
			matrix[i][j] *= scale
		}
	}
	lattice, err := NewLattice(matrix)
	if err != nil {
		return nil, err
	}

	line, err := p.next()
	if err != nil {
		return nil, err
	}
	var symbols []string
	if fields := strings.Fields(line); len(fields) > 0 && !isNumber(fields[0]) {
		symbols = cleanSymbols(fields)
		if line, err = p.next(); err != nil {
			return nil, err
		}
	}

	var counts []int
	for _, f := range strings.Fields(line) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad species count %q", ErrInvalidPOSCAR, f)
		}
		counts = append(counts, n)
	}
	if symbols == nil {
		symbols = cleanSymbols(strings.Fields(comment))
	}
	if len(symbols) < len(counts) {
		return nil, fmt.Errorf("%w: %d species counts but %d symbols", ErrInvalidPOSCAR, len(counts), len(symbols))
	}
	symbols = symbols[:len(counts)]

	mode, err := p.next()
	if err != nil {
		return nil, err
	}
	if m := strings.TrimSpace(mode); m != "" && (m[0] == 's' || m[0] == 'S') {
		if mode, err = p.next(); err != nil {
			return nil, err
		}
	}
	mode = strings.TrimSpace(mode)
	cartesian := mode != "" && strings.ContainsRune("cCkK", rune(mode[0]))

	var sites []Site
	for i, sym := range symbols {
		for k := 0; k < counts[i]; k++ {
			v, err := p.floats(3)
			if err != nil {
				return nil, err
			}
			if cartesian {
				v = lattice.FractionalCoords(Vec3{v[0] * scale, v[1] * scale, v[2] * scale})
			}
			sites = append(sites, Site{Species: sym, Frac: v})
		}
	}

	s, err := New(lattice, sites)
	if err != nil {
		return nil, err
	}
	return s.WithComment(comment), nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// cleanSymbols strips POTCAR decorations such as "Fe_pv" or "O/".
func cleanSymbols(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		end := strings.IndexFunc(f, func(r rune) bool { return !unicode.IsLetter(r) })
		if end >= 0 {
			f = f[:end]
		}
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// WritePOSCAR writes s in VASP 5 format with direct coordinates.
func (s *Structure) WritePOSCAR(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, s.Comment())
	fmt.Fprintln(bw, "1.0")
	for _, v := range s.lattice.Matrix {
		fmt.Fprintf(bw, "%21.16f %21.16f %21.16f\n", v[0], v[1], v[2])
	}
	symbols, counts := s.SpeciesBlocks()
	fmt.Fprintln(bw, strings.Join(symbols, " "))
	countStrs := make([]string, len(counts))
	for i, n := range counts {
		countStrs[i] = strconv.Itoa(n)
	}
	fmt.Fprintln(bw, strings.Join(countStrs, " "))
	fmt.Fprintln(bw, "direct")
	for _, site := range s.sites {
		fmt.Fprintf(bw, "%19.16f %19.16f %19.16f %s\n", site.Frac[0], site.Frac[1], site.Frac[2], site.Species)
	}
	return bw.Flush()
}

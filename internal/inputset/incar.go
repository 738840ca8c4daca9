// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package inputset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Incar maps INCAR tags to values. Keys are upper case.
type Incar map[string]any

// Clone returns a shallow copy; list values are shared.
func (in Incar) Clone() Incar {
	out := make(Incar, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Update applies settings on top of in. A nil value removes the tag.
func (in Incar) Update(settings map[string]any) {
	for k, v := range settings {
		k = strings.ToUpper(k)
		if v == nil {
			delete(in, k)
			continue
		}
		in[k] = v
	}
}

// Render formats the INCAR file with tags in alphabetical order.
func (in Incar) Render() string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s = %s\n", k, formatIncarValue(k, in[k]))
	}
	return sb.String()
}

func formatIncarValue(key string, v any) string {
	switch val := v.(type) {
	case []float64:
		items := make([]any, len(val))
		for i, f := range val {
			items[i] = f
		}
		return formatIncarList(key, items)
	case []int:
		items := make([]any, len(val))
		for i, n := range val {
			items[i] = n
		}
		return formatIncarList(key, items)
	case []any:
		return formatIncarList(key, val)
	default:
		return formatIncarScalar(v)
	}
}

// formatIncarList writes lists space separated. MAGMOM runs are
// compressed to the "N*value" form VASP understands.
func formatIncarList(key string, items []any) string {
	parts := make([]string, 0, len(items))
	if key != "MAGMOM" {
		for _, it := range items {
			parts = append(parts, formatIncarScalar(it))
		}
		return strings.Join(parts, " ")
	}
	for i := 0; i < len(items); {
		cur := formatIncarScalar(items[i])
		j := i + 1
		for j < len(items) && formatIncarScalar(items[j]) == cur {
			j++
		}
		if n := j - i; n > 1 {
			parts = append(parts, fmt.Sprintf("%d*%s", n, cur))
		} else {
			parts = append(parts, cur)
		}
		i = j
	}
	return strings.Join(parts, " ")
}

func formatIncarScalar(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return ".TRUE."
		}
		return ".FALSE."
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// formatFloat writes integral floats without a fraction so that integer
// tags decoded from JSON or HCL stay valid Fortran integers.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// toFloat converts numeric INCAR values.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

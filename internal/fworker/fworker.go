// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package fworker reads the worker description file (my_fworker.yaml) and
// resolves the ">>key<<" placeholders that tasks use to defer settings such
// as the VASP command or database file to the machine that runs them.
package fworker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for a worker file that cannot be decoded.
var ErrInvalid = errors.New("invalid fworker file")

// FWorker describes the machine a workflow runs on.
type FWorker struct {
	Name     string         `yaml:"name"`
	Category any            `yaml:"category"`
	Query    any            `yaml:"query"`
	Env      map[string]any `yaml:"env"`
}

// Load reads a worker file. A missing file is reported with the
// underlying os error.
func Load(path string) (*FWorker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w := &FWorker{}
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if w.Env == nil {
		w.Env = map[string]any{}
	}
	return w, nil
}

// Placeholder returns the string a task stores to defer key to the worker.
func Placeholder(key string) string { return ">>" + key + "<<" }

// placeholderKey returns key for ">>key<<" strings.
func placeholderKey(s string) (string, bool) {
	if len(s) > 4 && strings.HasPrefix(s, ">>") && strings.HasSuffix(s, "<<") {
		return s[2 : len(s)-2], true
	}
	return "", false
}

// Lookup returns the environment value for a placeholder string.
func (w *FWorker) Lookup(s string) (any, bool) {
	key, ok := placeholderKey(s)
	if !ok || w == nil {
		return nil, false
	}
	v, ok := w.Env[key]
	return v, ok
}

// Resolve returns a copy of v with every placeholder string replaced by its
// environment value. Maps and slices are walked; placeholders without an
// environment entry are kept as they are.
func (w *FWorker) Resolve(v any) any {
	switch val := v.(type) {
	case string:
		if r, ok := w.Lookup(val); ok {
			return r
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = w.Resolve(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = w.Resolve(item)
		}
		return out
	default:
		return v
	}
}

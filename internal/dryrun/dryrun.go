// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package dryrun materializes a workflow on the local disk instead of
// submitting it, so the exact inputs VASP would receive can be inspected.
package dryrun

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	jsoniter "github.com/json-iterator/go"
	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/firework"
	"github.com/specialistvlad/relaxflow/internal/fworker"
	"github.com/specialistvlad/relaxflow/internal/inputset"
	"github.com/specialistvlad/relaxflow/internal/workflow"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// readableJSON writes FW.json for people: placeholders such as
// >>vasp_cmd<< stay unescaped.
var readableJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// FireworkFile holds the firework document with placeholders resolved.
const FireworkFile = "FW.json"

// Render writes one directory per firework under dir, numbered in
// dependency order, and returns their paths. Each directory gets the
// input files of the firework's write task with every INCAR patch
// applied in order, plus FW.json. Placeholders are resolved against w,
// which may be nil.
func Render(ctx context.Context, wf *workflow.Workflow, w *fworker.FWorker, dir string) ([]string, error) {
	var dirs []string
	for i, fw := range wf.Ordered() {
		if err := ctx.Err(); err != nil {
			return dirs, err
		}
		fwDir := filepath.Join(dir, fmt.Sprintf("%02d-%s", i+1, slug(fw.Name)))
		if err := os.MkdirAll(fwDir, 0o755); err != nil {
			return dirs, err
		}
		fwCtx, fwLogger := ctxlog.With(ctx, "firework", fw.Name)
		fwLogger.Debug("Rendering firework.", "dir", fwDir)

		if err := renderInputs(fwCtx, fw, w, fwDir); err != nil {
			return dirs, fmt.Errorf("firework %q: %w", fw.Name, err)
		}
		if err := renderDocument(fw, w, fwDir); err != nil {
			return dirs, fmt.Errorf("firework %q: %w", fw.Name, err)
		}
		dirs = append(dirs, fwDir)
	}
	return dirs, nil
}

func renderInputs(ctx context.Context, fw *firework.Firework, w *fworker.FWorker, dir string) error {
	logger := ctxlog.FromContext(ctx)
	var set *inputset.InputSet
	var incar inputset.Incar
	for _, t := range fw.Tasks() {
		switch task := t.(type) {
		case firework.WriteInputs:
			if task.InputSet == nil {
				return fmt.Errorf("write task has no input set")
			}
			set = task.InputSet
			incar = set.Incar.Clone()
		case firework.ModifyIncar:
			if incar == nil {
				return fmt.Errorf("INCAR patch before inputs are written")
			}
			update, ok := patchUpdate(task, w)
			if !ok {
				logger.Warn("Skipping INCAR patch without a value in the worker environment.", "key", task.EnvKey)
				continue
			}
			incar.Update(update)
		}
	}
	if set == nil {
		return nil
	}

	files, err := set.Files(incar)
	if err != nil {
		return err
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func patchUpdate(t firework.ModifyIncar, w *fworker.FWorker) (map[string]any, bool) {
	if t.Update != nil {
		return t.Update, true
	}
	v, ok := w.Lookup(fworker.Placeholder(t.EnvKey))
	if !ok {
		return nil, false
	}
	update, ok := v.(map[string]any)
	return update, ok
}

func renderDocument(fw *firework.Firework, w *fworker.FWorker, dir string) error {
	raw, err := json.Marshal(fw)
	if err != nil {
		return err
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	out, err := readableJSON.MarshalIndent(w.Resolve(generic), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, FireworkFile), append(out, '\n'), 0o644)
}

// slug turns a firework name into a directory-safe token.
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

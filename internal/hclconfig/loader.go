// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hclconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// ErrNoFiles is returned when a directory holds no .hcl files.
var ErrNoFiles = errors.New("no .hcl files found")

// fileRoot is the shape of one configuration file. Unknown attributes are
// rejected by the decoder.
type fileRoot struct {
	UseAPIInterface     *bool          `hcl:"use_api_interface,optional"`
	MPStructureID       *string        `hcl:"mp_structure_id,optional"`
	POSCARPath          *string        `hcl:"poscar_path,optional"`
	IsConductor         *bool          `hcl:"is_conductor,optional"`
	LaunchpadFile       *string        `hcl:"launchpad_file,optional"`
	APIKey              *string        `hcl:"api_key,optional"`
	FWorkerFile         *string        `hcl:"fworker_file,optional"`
	RenderDir           *string        `hcl:"render_dir,optional"`
	CustomIncarSettings hcl.Expression `hcl:"custom_incar_settings,optional"`
}

// Load reads path, a file or a directory, and merges the files in order.
func Load(ctx context.Context, path string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, path)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	evalCtx := newEvalContext()
	parser := hclparse.NewParser()
	settings := &Settings{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fs, err := translate(ctx, &root, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		settings.merge(fs)
	}

	logger.Debug("HCL loading complete.", "files", len(files))
	return settings, nil
}

func translate(ctx context.Context, root *fileRoot, evalCtx *hcl.EvalContext) (*Settings, error) {
	s := &Settings{
		UseAPIInterface: root.UseAPIInterface,
		MPStructureID:   root.MPStructureID,
		POSCARPath:      root.POSCARPath,
		IsConductor:     root.IsConductor,
		LaunchpadFile:   root.LaunchpadFile,
		APIKey:          root.APIKey,
		FWorkerFile:     root.FWorkerFile,
		RenderDir:       root.RenderDir,
	}
	if !isExprDefined(ctx, root.CustomIncarSettings, "custom_incar_settings") {
		return s, nil
	}

	val, diags := root.CustomIncarSettings.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("custom_incar_settings: %w", diags)
	}
	if val.IsNull() {
		return s, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("custom_incar_settings must be an object, got %s", ty.FriendlyName())
	}
	native, err := ctyToNative(val)
	if err != nil {
		return nil, fmt.Errorf("custom_incar_settings: %w", err)
	}
	s.CustomIncarSettings = native.(map[string]any)
	return s, nil
}

// newEvalContext exposes the process environment as the env object.
func newEvalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(env)},
	}
}

// isExprDefined reports whether an optional attribute was written in the
// source. Omitted attributes decode to zero-width placeholder expressions.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}

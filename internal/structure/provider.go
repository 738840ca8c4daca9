// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package structure

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/relaxflow/internal/ctxlog"
)

// Provider resolves structure identifiers to structures. The result has
// one entry per requested id, in request order.
type Provider interface {
	Structures(ctx context.Context, ids []string) ([]*Structure, error)
}

// FileProvider treats every id as a POSCAR path, relative to Dir when Dir
// is set and the id is not absolute.
type FileProvider struct {
	Dir string
}

// Structures reads each POSCAR in turn and stops at the first failure.
func (p FileProvider) Structures(ctx context.Context, ids []string) ([]*Structure, error) {
	logger := ctxlog.FromContext(ctx)
	out := make([]*Structure, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := id
		if p.Dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(p.Dir, path)
		}
		logger.Debug("Reading POSCAR.", "path", path)
		s, err := ReadPOSCARFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

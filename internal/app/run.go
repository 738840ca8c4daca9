// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/relaxflow/internal/ctxlog"
	"github.com/specialistvlad/relaxflow/internal/dryrun"
	"github.com/specialistvlad/relaxflow/internal/fworker"
	"github.com/specialistvlad/relaxflow/internal/launchpad"
	"github.com/specialistvlad/relaxflow/internal/mpapi"
	"github.com/specialistvlad/relaxflow/internal/structure"
	"github.com/specialistvlad/relaxflow/internal/workflow"
)

// conductorIncar is the smearing used for metals.
var conductorIncar = map[string]any{"SIGMA": 0.2, "ISMEAR": 1}

// Run builds the structure optimization workflow and submits it. The
// launchpad configuration is resolved before any structure is fetched and
// the queue is only contacted once the workflow is complete.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config
	a.logger.Debug("App.Run method started.")

	var lpCfg launchpad.Config
	if cfg.RenderDir == "" {
		var err error
		if lpCfg, err = launchpad.Resolve(cfg.LaunchpadFilePath); err != nil {
			return fmt.Errorf("failed to resolve launchpad: %w", err)
		}
		a.logger.Debug("Launchpad resolved.", "source", lpCfg.Source(), "backend", lpCfg.Backend)
	}

	s, err := a.structure(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain structure: %w", err)
	}

	wf, err := a.buildWorkflow(ctx, s)
	if err != nil {
		return err
	}

	if cfg.RenderDir != "" {
		return a.render(ctx, wf)
	}
	return a.submit(ctx, lpCfg, wf)
}

func (a *App) structure(ctx context.Context) (*structure.Structure, error) {
	cfg := a.config
	id := cfg.POSCARPath
	if cfg.UseAPIInterface {
		id = cfg.MPStructureID
	}

	provider := a.provider
	if provider == nil {
		if cfg.UseAPIInterface {
			client, err := mpapi.New(mpapi.Config{APIKey: cfg.APIKey})
			if err != nil {
				return nil, err
			}
			defer client.Close()
			provider = client
		} else {
			provider = structure.FileProvider{}
		}
	}

	a.logger.Debug("Fetching structure.", "id", id, "api", cfg.UseAPIInterface)
	structures, err := provider.Structures(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(structures) != 1 || structures[0] == nil {
		return nil, fmt.Errorf("no structure returned for %q", id)
	}
	return structures[0], nil
}

func (a *App) buildWorkflow(ctx context.Context, s *structure.Structure) (*workflow.Workflow, error) {
	logger := ctxlog.FromContext(ctx)

	wf, err := workflow.StructureOptimization(s, workflow.PresetConfig{
		UserIncarSettings: a.config.CustomIncarSettings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build workflow: %w", err)
	}

	n, err := workflow.AddModifyIncar(wf, workflow.ModifyIncarParams{}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to add environment INCAR patch: %w", err)
	}
	logger.Debug("Environment INCAR patch added.", "fireworks", n)

	if a.config.IsConductor {
		n, err := workflow.AddModifyIncar(wf, workflow.ModifyIncarParams{IncarUpdate: conductorIncar}, "")
		if err != nil {
			return nil, fmt.Errorf("failed to add conductor INCAR patch: %w", err)
		}
		logger.Debug("Conductor INCAR patch added.", "fireworks", n)
	}

	logger.Debug("Workflow built.", "name", wf.Name, "fireworks", len(wf.Fireworks()))
	return wf, nil
}

func (a *App) render(ctx context.Context, wf *workflow.Workflow) error {
	var w *fworker.FWorker
	if a.config.FWorkerFilePath != "" {
		var err error
		if w, err = fworker.Load(a.config.FWorkerFilePath); err != nil {
			return fmt.Errorf("failed to load fworker: %w", err)
		}
	}
	dirs, err := dryrun.Render(ctx, wf, w, a.config.RenderDir)
	if err != nil {
		return fmt.Errorf("failed to render workflow: %w", err)
	}
	a.logger.Info("Workflow rendered.", "name", wf.Name, "dirs", dirs)
	return nil
}

func (a *App) submit(ctx context.Context, lpCfg launchpad.Config, wf *workflow.Workflow) (err error) {
	lp, err := a.open(ctx, lpCfg)
	if err != nil {
		return fmt.Errorf("failed to open launchpad: %w", err)
	}
	defer func() {
		if cerr := lp.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close launchpad: %w", cerr))
		}
	}()

	ids, err := lp.AddWF(ctx, wf)
	if err != nil {
		return fmt.Errorf("failed to add workflow: %w", err)
	}
	a.logger.Info("Workflow submitted.", "name", wf.Name, "fw_ids", ids)
	return nil
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/relaxflow/internal/launchpad"
	"github.com/specialistvlad/relaxflow/internal/structure"
)

// LaunchpadOpener connects to a resolved launchpad.
type LaunchpadOpener func(ctx context.Context, cfg launchpad.Config) (launchpad.LaunchPad, error)

// App encapsulates one submission's dependencies and configuration.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	provider structure.Provider
	open     LaunchpadOpener
}

// Option customizes an App.
type Option func(*App)

// WithStructureProvider replaces the Materials Project client or POSCAR
// reader chosen from the configuration.
func WithStructureProvider(p structure.Provider) Option {
	return func(a *App) { a.provider = p }
}

// WithLaunchpadOpener replaces launchpad.Open.
func WithLaunchpadOpener(open LaunchpadOpener) Option {
	return func(a *App) { a.open = open }
}

// NewApp returns an App with its own logger writing to outW.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		open:   launchpad.Open,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

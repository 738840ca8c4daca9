// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import "errors"

// DefaultPOSCARPath is read when no structure source is configured.
const DefaultPOSCARPath = "POSCAR"

// Config holds everything one submission needs.
type Config struct {
	// UseAPIInterface fetches MPStructureID from the Materials Project
	// instead of reading POSCARPath.
	UseAPIInterface bool
	MPStructureID   string
	POSCARPath      string
	// IsConductor adds the metallic smearing patch.
	IsConductor bool
	// LaunchpadFilePath falls back to FW_CONFIG_FILE when empty.
	LaunchpadFilePath string
	APIKey            string
	// CustomIncarSettings override the relax set defaults. Nil and empty
	// are equivalent.
	CustomIncarSettings map[string]any

	// FWorkerFilePath resolves placeholders when rendering.
	FWorkerFilePath string
	// RenderDir, when set, writes the inputs there instead of submitting.
	RenderDir string

	LogFormat string
	LogLevel  string
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.UseAPIInterface {
		if cfg.MPStructureID == "" {
			return nil, errors.New("MPStructureID is required when UseAPIInterface is set")
		}
	} else if cfg.POSCARPath == "" {
		cfg.POSCARPath = DefaultPOSCARPath
	}
	if cfg.FWorkerFilePath != "" && cfg.RenderDir == "" {
		return nil, errors.New("FWorkerFilePath is only used together with RenderDir")
	}
	if cfg.CustomIncarSettings == nil {
		cfg.CustomIncarSettings = map[string]any{}
	}
	return &cfg, nil
}

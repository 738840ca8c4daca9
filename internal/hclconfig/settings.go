// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hclconfig

// Settings are the attributes found in the configuration. Nil means the
// attribute was not set by any file.
type Settings struct {
	UseAPIInterface     *bool
	MPStructureID       *string
	POSCARPath          *string
	IsConductor         *bool
	LaunchpadFile       *string
	APIKey              *string
	FWorkerFile         *string
	RenderDir           *string
	CustomIncarSettings map[string]any
}

// merge copies every attribute set in o over s.
func (s *Settings) merge(o *Settings) {
	if o.UseAPIInterface != nil {
		s.UseAPIInterface = o.UseAPIInterface
	}
	if o.MPStructureID != nil {
		s.MPStructureID = o.MPStructureID
	}
	if o.POSCARPath != nil {
		s.POSCARPath = o.POSCARPath
	}
	if o.IsConductor != nil {
		s.IsConductor = o.IsConductor
	}
	if o.LaunchpadFile != nil {
		s.LaunchpadFile = o.LaunchpadFile
	}
	if o.APIKey != nil {
		s.APIKey = o.APIKey
	}
	if o.FWorkerFile != nil {
		s.FWorkerFile = o.FWorkerFile
	}
	if o.RenderDir != nil {
		s.RenderDir = o.RenderDir
	}
	if o.CustomIncarSettings != nil {
		s.CustomIncarSettings = o.CustomIncarSettings
	}
}

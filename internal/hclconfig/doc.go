// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hclconfig loads submission settings from HCL.
//
// A path may be a single .hcl file or a directory; directories are read
// recursively in lexical order and later files override attributes set by
// earlier ones. Every attribute is optional:
//
//	use_api_interface     = true
//	mp_structure_id       = "mp-134"
//	poscar_path           = "POSCAR"
//	is_conductor          = true
//	launchpad_file        = "/home/user/.fireworks/my_launchpad.yaml"
//	api_key               = env.MP_API_KEY
//	fworker_file          = "my_fworker.yaml"
//	render_dir            = "inputs"
//	custom_incar_settings = { ENCUT = 600, LREAL = "Auto" }
//
// The process environment is available as the env object.
package hclconfig

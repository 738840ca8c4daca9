// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package workflow

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/specialistvlad/relaxflow/internal/firework"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the stored form of a workflow. Links are keyed by firework
// UUID.
type Document struct {
	Name      string              `json:"name"`
	Metadata  map[string]any      `json:"metadata"`
	Fireworks []firework.Document `json:"fws"`
	Links     map[string][]string `json:"links"`
}

// AsDocument converts wf into its stored form with fireworks parents first.
func (wf *Workflow) AsDocument() Document {
	ordered := wf.Ordered()
	doc := Document{
		Name:      wf.Name,
		Metadata:  wf.Metadata,
		Fireworks: make([]firework.Document, len(ordered)),
		Links:     make(map[string][]string, len(ordered)),
	}
	links := wf.Links()
	for i, fw := range ordered {
		doc.Fireworks[i] = fw.AsDocument()
		children := make([]string, len(links[fw.ID]))
		for j, c := range links[fw.ID] {
			children[j] = c.String()
		}
		doc.Links[fw.ID.String()] = children
	}
	return doc
}

// MarshalJSON encodes the stored form of wf.
func (wf *Workflow) MarshalJSON() ([]byte, error) {
	return json.Marshal(wf.AsDocument())
}

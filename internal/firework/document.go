// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package firework

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TasksKey is the spec entry holding the task documents.
const TasksKey = "_tasks"

// Document is the stored form of a firework: tasks live in the spec under
// "_tasks", each tagged with its kind in "_fw_name".
type Document struct {
	UUID    string         `json:"uuid"`
	Name    string         `json:"name"`
	Spec    map[string]any `json:"spec"`
	Parents []string       `json:"parents,omitempty"`
}

// TaskDocument renders a task with its kind.
func TaskDocument(t Task) map[string]any {
	doc := t.Params()
	doc["_fw_name"] = t.Kind()
	return doc
}

// AsDocument converts fw into its stored form.
func (fw *Firework) AsDocument() Document {
	spec := make(map[string]any, len(fw.Spec)+1)
	for k, v := range fw.Spec {
		spec[k] = v
	}
	tasks := fw.Tasks()
	docs := make([]any, len(tasks))
	for i, t := range tasks {
		docs[i] = TaskDocument(t)
	}
	spec[TasksKey] = docs

	var parents []string
	for _, p := range fw.Parents {
		parents = append(parents, p.ID.String())
	}
	return Document{
		UUID:    fw.ID.String(),
		Name:    fw.Name,
		Spec:    spec,
		Parents: parents,
	}
}

// MarshalJSON encodes the stored form of fw.
func (fw *Firework) MarshalJSON() ([]byte, error) {
	return json.Marshal(fw.AsDocument())
}

// Package schema holds the HCL-specific structures a feature manifest is
// decoded into before translation to the format-agnostic config model.
package schema

import "github.com/hashicorp/hcl/v2"

// Condition represents a `condition` block inside a feature. The block label
// names the condition for diagnostics; `probe` names the Go handler that
// implements it. Any remaining attributes are probe-specific settings.
type Condition struct {
	Name     string   `hcl:"name,label"`
	Probe    string   `hcl:"probe"`
	Settings hcl.Body `hcl:",remain"`
}

// Feature represents a `feature` block from a manifest file.
type Feature struct {
	ID          string       `hcl:"id,label"`
	Description string       `hcl:"description,optional"`
	Requires    []string     `hcl:"requires,optional"`
	Conditions  []*Condition `hcl:"condition,block"`
}

// Manifest is the top-level structure of a single manifest file.
type Manifest struct {
	Features []*Feature `hcl:"feature,block"`
}

package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified representation of a loaded feature manifest.
type Model struct {
	Features map[string]*FeatureDefinition
}

// FeatureDefinition is the format-agnostic form of a `feature` block.
type FeatureDefinition struct {
	ID          string
	Description string
	// Requires lists the IDs of features that must be enabled first.
	Requires []string
	// Conditions are evaluated in declaration order during resolution.
	Conditions []*ConditionDefinition
}

// ConditionDefinition binds a named condition to a registered Go probe,
// carrying any probe-specific settings from the manifest.
type ConditionDefinition struct {
	Name string
	// Probe names the Go handler registered by a subsystem module.
	Probe string
	// Settings holds the remaining manifest attributes as cty values; they
	// are decoded into the probe's settings struct when the condition is
	// built.
	Settings map[string]cty.Value
}

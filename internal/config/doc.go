// Package config defines the format-agnostic model for feature manifests and
// the Loader interface that format-specific packages (internal/hcl,
// internal/yamlcfg) implement. Keeping the model independent of any one
// syntax lets the rest of the application stay ignorant of how the manifest
// was written.
package config

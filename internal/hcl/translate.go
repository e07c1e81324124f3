package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/schema"
)

// translateFeature converts the HCL-specific feature schema into the
// agnostic model.
func (l *Loader) translateFeature(f *schema.Feature) (*config.FeatureDefinition, error) {
	def := &config.FeatureDefinition{
		ID:          f.ID,
		Description: f.Description,
		Requires:    f.Requires,
	}

	seen := make(map[string]struct{}, len(f.Conditions))
	for _, c := range f.Conditions {
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("feature %q: condition %q declared more than once", f.ID, c.Name)
		}
		seen[c.Name] = struct{}{}

		settings, err := extractSettings(c.Settings)
		if err != nil {
			return nil, fmt.Errorf("feature %q, condition %q: %w", f.ID, c.Name, err)
		}

		def.Conditions = append(def.Conditions, &config.ConditionDefinition{
			Name:     c.Name,
			Probe:    c.Probe,
			Settings: settings,
		})
	}

	return def, nil
}

// extractSettings evaluates the remaining attributes of a condition block
// into plain cty values. Settings must be literals: probe configuration is
// static by design, there is no expression language in a manifest.
func extractSettings(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid settings: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	settings := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("setting %q is not a literal value: %w", name, diags)
		}
		settings[name] = val
	}
	return settings, nil
}

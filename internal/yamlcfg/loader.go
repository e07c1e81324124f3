// Package yamlcfg loads feature manifests written in YAML. It produces the
// same format-agnostic model as the HCL loader, so hosts can pick whichever
// syntax fits their deployment:
//
//	features:
//	  - id: speech
//	    description: On-device speech synthesis
//	    requires: [audio]
//	    conditions:
//	      - name: synthesizer_available
//	        probe: CheckSynthesizerBackend
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/ctxlog"
	"github.com/vk/helix/internal/fsutil"
)

// Loader implements config.Loader for YAML manifests.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

type manifestDoc struct {
	Features []*featureDoc `yaml:"features"`
}

type featureDoc struct {
	ID          string          `yaml:"id"`
	Description string          `yaml:"description"`
	Requires    []string        `yaml:"requires"`
	Conditions  []*conditionDoc `yaml:"conditions"`
}

type conditionDoc struct {
	Name     string         `yaml:"name"`
	Probe    string         `yaml:"probe"`
	Settings map[string]any `yaml:"settings"`
}

// Load parses every .yaml/.yml file under the given paths into a single
// model. Duplicate feature IDs are an error, matching the HCL loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{
		Features: make(map[string]*config.FeatureDefinition),
	}

	for _, path := range paths {
		var filePaths []string
		for _, ext := range []string{".yaml", ".yml"} {
			found, err := fsutil.FindFilesByExtension(path, ext)
			if err != nil {
				return nil, fmt.Errorf("failed to scan manifest path %s: %w", path, err)
			}
			filePaths = append(filePaths, found...)
		}
		if len(filePaths) == 0 {
			logger.Warn("No YAML manifest files found in path", "path", path)
			continue
		}

		for _, filePath := range filePaths {
			raw, err := os.ReadFile(filePath)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
			}

			var doc manifestDoc
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
			}

			for _, f := range doc.Features {
				if f.ID == "" {
					return nil, fmt.Errorf("%s: feature without an id", filePath)
				}
				if _, exists := model.Features[f.ID]; exists {
					return nil, fmt.Errorf("feature %q declared more than once (last in %s)", f.ID, filePath)
				}
				def, err := translateFeature(f)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", filePath, err)
				}
				model.Features[f.ID] = def
			}
		}
	}

	logger.Debug("Manifest loaded and translated into unified model.", "features", len(model.Features))
	return model, nil
}

func translateFeature(f *featureDoc) (*config.FeatureDefinition, error) {
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

		settings, err := translateSettings(c.Settings)
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

// translateSettings converts plain YAML scalars into cty values so both
// loaders hand the provider registry the same settings representation.
func translateSettings(raw map[string]any) (map[string]cty.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	settings := make(map[string]cty.Value, len(raw))
	for name, v := range raw {
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return nil, fmt.Errorf("setting %q: unsupported value type %T", name, v)
		}
		val, err := gocty.ToCtyValue(v, ty)
		if err != nil {
			return nil, fmt.Errorf("setting %q: %w", name, err)
		}
		settings[name] = val
	}
	return settings, nil
}

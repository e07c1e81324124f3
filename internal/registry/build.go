package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/ctxlog"
	"github.com/vk/helix/internal/feature"
)

// BuildDefinitions turns a validated manifest into core feature definitions,
// constructing each condition from its registered probe. Definitions are
// returned in sorted ID order so registration is deterministic.
func (r *Registry) BuildDefinitions(ctx context.Context, model *config.Model) ([]feature.Definition, error) {
	logger := ctxlog.FromContext(ctx)

	ids := make([]string, 0, len(model.Features))
	for id := range model.Features {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	defs := make([]feature.Definition, 0, len(ids))
	for _, id := range ids {
		fd := model.Features[id]
		def := feature.Definition{
			ID:          fd.ID,
			Description: fd.Description,
			Requires:    fd.Requires,
		}

		for _, cd := range fd.Conditions {
			cond, err := r.buildCondition(cd)
			if err != nil {
				return nil, fmt.Errorf("feature %q, condition %q: %w", id, cd.Name, err)
			}
			def.Conditions = append(def.Conditions, cond)
		}

		defs = append(defs, def)
	}

	logger.Debug("Feature definitions built from manifest.", "count", len(defs))
	return defs, nil
}

// buildCondition decodes the manifest settings into the probe's settings
// struct and asks the probe to build the condition. The manifest condition
// name wins as the diagnostic name, so reports match what the operator wrote.
func (r *Registry) buildCondition(cd *config.ConditionDefinition) (feature.Condition, error) {
	probe, ok := r.Probes[cd.Probe]
	if !ok {
		return nil, fmt.Errorf("unknown probe %q", cd.Probe)
	}

	var settings any
	if probe.NewSettings != nil {
		settings = probe.NewSettings()
		if err := decodeSettings(settings, cd.Settings); err != nil {
			return nil, err
		}
	} else if len(cd.Settings) > 0 {
		return nil, fmt.Errorf("probe %q takes no settings", cd.Probe)
	}

	cond, err := probe.Build(settings)
	if err != nil {
		return nil, err
	}
	return feature.Cond(cd.Name, cond.Evaluate), nil
}

// decodeSettings populates the exported fields of target (a struct pointer)
// from manifest settings, matching on the `helix` struct tag. Unknown setting
// names are an error: a silently dropped setting is almost always a typo.
func decodeSettings(target any, settings map[string]cty.Value) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("settings target must be a struct pointer, got %T", target)
	}
	v = v.Elem()
	t := v.Type()

	known := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := strings.Split(field.Tag.Get("helix"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		known[tag] = struct{}{}

		val, ok := settings[tag]
		if !ok {
			continue // keep the probe's default
		}
		if err := gocty.FromCtyValue(val, v.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("setting %q: %w", tag, err)
		}
	}

	for name := range settings {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("unknown setting %q", name)
		}
	}
	return nil
}

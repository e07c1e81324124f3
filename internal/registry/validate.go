package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/ctxlog"
)

// Validate performs a strict parity check between a loaded manifest and the
// registered Go handlers: every condition must reference a compiled-in probe,
// settings may only be passed to probes that accept them, and every
// `requires` entry must name a declared feature. All problems are collected
// so one startup failure reports the full list.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for id, def := range model.Features {
		for _, cond := range def.Conditions {
			probe, ok := r.Probes[cond.Probe]
			if !ok {
				errs = append(errs, fmt.Sprintf("feature '%s': condition '%s' references unknown probe '%s'", id, cond.Name, cond.Probe))
				continue
			}
			if len(cond.Settings) > 0 && probe.NewSettings == nil {
				errs = append(errs, fmt.Sprintf("feature '%s': condition '%s' passes settings, but probe '%s' takes none", id, cond.Name, cond.Probe))
			}
		}

		for _, dep := range def.Requires {
			if _, ok := model.Features[dep]; !ok {
				errs = append(errs, fmt.Sprintf("feature '%s': requires undeclared feature '%s'", id, dep))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("manifest validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Manifest validation passed.", "features", len(model.Features))
	return nil
}

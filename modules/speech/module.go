// Package speech is the speech subsystem provider. It contributes the
// "speech" feature node — usable only when a synthesizer backend is
// installed and the audio path is up — and the synthesizer that queues
// utterances to that backend.
package speech

import (
	"github.com/vk/helix/internal/feature"
	"github.com/vk/helix/internal/registry"
	"github.com/vk/helix/modules/audio"
)

// FeatureID is the capability name other subsystems depend on.
const FeatureID = "speech"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the speech probe handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProbe("CheckSynthesizerBackend", &registry.RegisteredProbe{
		Build: func(any) (feature.Condition, error) {
			return BackendCondition(), nil
		},
	})
}

// BackendCondition reports whether a synthesizer backend is installed.
func BackendCondition() feature.Condition {
	return feature.Cond("synthesizer_backend", func() bool {
		_, err := LookupBackend()
		return err == nil
	})
}

// Definition is the compiled-in feature node used by hosts that do not load
// a manifest. Speech is gated on the audio pipeline: synthesized utterances
// are rendered through the same output path as game audio.
func Definition() feature.Definition {
	return feature.Definition{
		ID:          FeatureID,
		Description: "On-device speech synthesis",
		Conditions:  []feature.Condition{BackendCondition()},
		Requires:    []string{audio.FeatureID},
	}
}

// Package audio is the audio subsystem provider. It contributes the "audio"
// feature node (gated on an output device being present) and the buffered
// PCM player the game loop pushes into once the feature is enabled.
package audio

import (
	"github.com/vk/helix/internal/feature"
	"github.com/vk/helix/internal/registry"
)

// FeatureID is the capability name other subsystems depend on.
const FeatureID = "audio"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the audio probe handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProbe("CheckOutputDevice", &registry.RegisteredProbe{
		Build: func(any) (feature.Condition, error) {
			return OutputDeviceCondition(), nil
		},
	})
	r.RegisterProbe("CheckSampleRates", &registry.RegisteredProbe{
		NewSettings: func() any { return &SampleRateSettings{MinRate: 44100} },
		Build: func(settings any) (feature.Condition, error) {
			s := settings.(*SampleRateSettings)
			return SampleRateCondition(s.MinRate), nil
		},
	})
}

// OutputDeviceCondition reports whether an audio output device is available.
func OutputDeviceCondition() feature.Condition {
	return feature.Cond("output_device", hasOutputDevice)
}

// SampleRateCondition reports whether the output device accepts at least the
// given sample rate.
func SampleRateCondition(minRate int64) feature.Condition {
	return feature.Cond("sample_rate", func() bool {
		return supportsSampleRate(minRate)
	})
}

// Definition is the compiled-in feature node used by hosts that do not load
// a manifest.
func Definition() feature.Definition {
	return feature.Definition{
		ID:          FeatureID,
		Description: "Audio playback pipeline",
		Conditions:  []feature.Condition{OutputDeviceCondition()},
	}
}

// Package network is the network subsystem provider. It contributes the
// "network" feature node — gated on a usable link and, optionally, on a
// reachability probe against a configured endpoint — and the TCP client the
// runtime uses to talk to a game server.
package network

import (
	"time"

	"github.com/vk/helix/internal/feature"
	"github.com/vk/helix/internal/registry"
)

// FeatureID is the capability name other subsystems depend on.
const FeatureID = "network"

// Module implements the registry.Module interface for this package.
type Module struct{}

// ReachabilitySettings configures the CheckReachability probe from a
// manifest condition block.
type ReachabilitySettings struct {
	Endpoint  string `helix:"endpoint"`
	TimeoutMS int    `helix:"timeout_ms"`
}

// Register registers the network probe handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterProbe("CheckLinkUp", &registry.RegisteredProbe{
		Build: func(any) (feature.Condition, error) {
			return LinkUpCondition(), nil
		},
	})

	r.RegisterProbe("CheckReachability", &registry.RegisteredProbe{
		NewSettings: func() any {
			return &ReachabilitySettings{TimeoutMS: 1000}
		},
		Build: func(settings any) (feature.Condition, error) {
			s := settings.(*ReachabilitySettings)
			return ReachabilityCondition(s.Endpoint, time.Duration(s.TimeoutMS)*time.Millisecond)
		},
	})
}

// Definition is the compiled-in feature node used by hosts that do not load
// a manifest. Without a manifest there is no endpoint to probe, so only the
// link check applies.
func Definition() feature.Definition {
	return feature.Definition{
		ID:          FeatureID,
		Description: "Game server networking",
		Conditions:  []feature.Condition{LinkUpCondition()},
	}
}

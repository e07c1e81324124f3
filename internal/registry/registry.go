package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/helix/internal/feature"
)

// Module is the interface all subsystem provider packages implement to be
// compiled into the runtime.
type Module interface {
	Register(r *Registry)
}

// RegisteredProbe holds the compiled Go parts of one condition probe.
type RegisteredProbe struct {
	// NewSettings returns a fresh settings struct to decode manifest
	// settings into. Nil for probes that take no settings.
	NewSettings func() any
	// Build constructs the condition. The settings argument is the struct
	// produced by NewSettings, populated from the manifest; nil when
	// NewSettings is nil.
	Build func(settings any) (feature.Condition, error)
}

// Registry holds every probe handler registered by the compiled-in modules
// for a single application instance.
type Registry struct {
	Probes map[string]*RegisteredProbe
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		Probes: make(map[string]*RegisteredProbe),
	}
}

// RegisterProbe registers a Go probe handler under the given name. A
// duplicate name is a programmer error (two modules claiming the same
// handler), so it panics like a duplicate flag registration would.
func (r *Registry) RegisterProbe(name string, p *RegisteredProbe) {
	if _, exists := r.Probes[name]; exists {
		panic(fmt.Sprintf("probe handler with name '%s' already registered", name))
	}
	if p == nil || p.Build == nil {
		panic(fmt.Sprintf("probe handler '%s' registered without a Build function", name))
	}
	slog.Debug("Registering probe handler.", "name", name)
	r.Probes[name] = p
}

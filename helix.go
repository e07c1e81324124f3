// Package helix exposes the embedded capability facade: a process-wide
// registry of the audio, speech, and network features that the runtime's
// subsystems query before touching hardware. Hosts call Init once during
// startup, the accessors any time after (they are safe before Init and
// simply report false), and Refresh when the environment changes.
package helix

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/ctxlog"
	"github.com/vk/helix/internal/feature"
	"github.com/vk/helix/internal/hcl"
	"github.com/vk/helix/internal/registry"
	"github.com/vk/helix/internal/yamlcfg"
	"github.com/vk/helix/modules/audio"
	"github.com/vk/helix/modules/network"
	"github.com/vk/helix/modules/speech"
)

var (
	// ErrAlreadyInitialized is returned by Init when the facade is already up.
	ErrAlreadyInitialized = errors.New("helix: already initialized")
	// ErrNotInitialized is returned by Refresh before a successful Init.
	ErrNotInitialized = errors.New("helix: not initialized")
)

// Options configures the facade.
type Options struct {
	// ManifestPath points at a feature manifest file or directory. Empty
	// means the compiled-in audio, speech, and network definitions.
	ManifestPath string
	// Loader overrides the manifest loader. When nil, one is picked from
	// the manifest path extension.
	Loader config.Loader
	// Logger receives resolution diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

var (
	initMu   sync.Mutex
	features atomic.Pointer[feature.Registry]
)

// Init builds the process-wide registry and runs the first resolution pass.
// It returns ErrAlreadyInitialized on a second call; use Refresh to
// re-evaluate after environment changes.
func Init(ctx context.Context, opts Options) error {
	initMu.Lock()
	defer initMu.Unlock()

	if features.Load() != nil {
		return ErrAlreadyInitialized
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	reg := feature.NewRegistry()
	if opts.ManifestPath != "" {
		loader := opts.Loader
		if loader == nil {
			loader = loaderFor(opts.ManifestPath)
		}
		if err := registerFromManifest(ctx, reg, loader, opts.ManifestPath); err != nil {
			return err
		}
	} else {
		for _, def := range []feature.Definition{
			audio.Definition(),
			speech.Definition(),
			network.Definition(),
		} {
			if err := reg.Register(def); err != nil {
				return err
			}
		}
	}

	if err := reg.Resolve(ctx); err != nil {
		return err
	}

	features.Store(reg)
	logger.Debug("Capability facade initialized.", "features", len(reg.Definitions()))
	return nil
}

func registerFromManifest(ctx context.Context, reg *feature.Registry, loader config.Loader, path string) error {
	model, err := loader.Load(ctx, path)
	if err != nil {
		return err
	}

	probes := registry.New()
	for _, mod := range []registry.Module{
		&audio.Module{},
		&speech.Module{},
		&network.Module{},
	} {
		mod.Register(probes)
	}
	if err := probes.Validate(ctx, model); err != nil {
		return err
	}

	defs, err := probes.BuildDefinitions(ctx, model)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func loaderFor(path string) config.Loader {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yamlcfg.NewLoader()
	default:
		return hcl.NewLoader()
	}
}

// Refresh re-runs the resolution pass against the current environment, for
// hot-plugged hardware or link changes. On failure the previous states stay
// authoritative.
func Refresh(ctx context.Context) error {
	initMu.Lock()
	defer initMu.Unlock()

	reg := features.Load()
	if reg == nil {
		return ErrNotInitialized
	}
	return reg.Resolve(ctx)
}

// Shutdown tears the facade down. The accessors return false afterwards; a
// subsequent Init starts fresh.
func Shutdown() {
	initMu.Lock()
	defer initMu.Unlock()
	features.Store(nil)
}

func enabled(id string) bool {
	reg := features.Load()
	if reg == nil {
		return false
	}
	return reg.IsEnabled(id)
}

// AudioFeatureEnabled reports whether the audio capability resolved to
// enabled. Safe to call from any goroutine, and before Init (false).
func AudioFeatureEnabled() bool {
	return enabled(audio.FeatureID)
}

// SpeechFeatureEnabled reports whether the speech capability resolved to
// enabled.
func SpeechFeatureEnabled() bool {
	return enabled(speech.FeatureID)
}

// NetworkFeatureEnabled reports whether the network capability resolved to
// enabled.
func NetworkFeatureEnabled() bool {
	return enabled(network.FeatureID)
}

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/ctxlog"
	"github.com/vk/helix/internal/feature"
	"github.com/vk/helix/internal/registry"
)

// App encapsulates the tool's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	probes   *registry.Registry
	features *feature.Registry
	config   *Config

	server *http.Server
}

// NewApp constructs the application: logger, provider registration, manifest
// loading, parity validation, and feature registration. The report goes to
// outW; logs go to logW so a JSON report stays machine-readable. No
// condition is evaluated yet — that happens in Run.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	probes := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(probes)
	}
	logger.Debug("All subsystem modules registered.", "count", len(modules))

	features := feature.NewRegistry()
	if cfg.ManifestPath != "" {
		if loader == nil {
			return nil, fmt.Errorf("manifest path given but no loader configured")
		}
		model, err := loader.Load(ctx, cfg.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		if err := probes.Validate(ctx, model); err != nil {
			return nil, err
		}
		defs, err := probes.BuildDefinitions(ctx, model)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			if err := features.Register(def); err != nil {
				return nil, err
			}
		}
		logger.Debug("Feature nodes registered from manifest.", "count", len(defs))
	} else {
		logger.Debug("No manifest path given, using compiled-in feature definitions.")
		for _, def := range builtinDefinitions() {
			if err := features.Register(def); err != nil {
				return nil, err
			}
		}
	}

	return &App{
		outW:     outW,
		logger:   logger,
		probes:   probes,
		features: features,
		config:   cfg,
	}, nil
}

// Features returns the application's capability registry. This is primarily
// for testing and for the status server.
func (a *App) Features() *feature.Registry {
	return a.features
}

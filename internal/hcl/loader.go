package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/helix/internal/config"
	"github.com/vk/helix/internal/ctxlog"
	"github.com/vk/helix/internal/fsutil"
	"github.com/vk/helix/internal/schema"
)

// Loader implements config.Loader for HCL manifests.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths into a single model.
// Declaring the same feature ID twice, in one file or across files, is an
// error: silently merging two declarations would make the resolved states
// depend on file ordering.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{
		Features: make(map[string]*config.FeatureDefinition),
	}

	parser := hclparse.NewParser()
	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to scan manifest path %s: %w", path, err)
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl manifest files found in path", "path", path)
			continue
		}
		logger.Debug("Found manifest files to load.", "files", filePaths)

		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse %s: %w", filePath, diags)
			}

			var manifest schema.Manifest
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode %s: %w", filePath, diags)
			}

			for _, f := range manifest.Features {
				if _, exists := model.Features[f.ID]; exists {
					return nil, fmt.Errorf("feature %q declared more than once (last in %s)", f.ID, filePath)
				}
				def, err := l.translateFeature(f)
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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/helix/internal/hcl"
	"github.com/vk/helix/internal/yamlcfg"
	"github.com/vk/helix/modules/audio"
	"github.com/vk/helix/modules/network"
	"github.com/vk/helix/modules/speech"
)

func stubEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv(audio.EnvDevice, "default")
	t.Setenv(network.EnvLink, "up")
	t.Setenv(speech.EnvBackend, "definitely-not-a-tts-engine")
}

func TestRun_ShouldExit(t *testing.T) {
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	// Providing an unknown flag will cause cli.Parse to return an error.
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_BrokenManifest(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "features.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`feature "audio" {`), 0600))

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{filePath})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load manifest")
}

func TestRun_CompiledInDefinitions(t *testing.T) {
	stubEnvironment(t)
	out := &bytes.Buffer{}

	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-format", "json"})
	require.NoError(t, err)

	var rows []struct {
		Feature string `json:"feature"`
		State   string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 3)
}

func TestRun_YAMLManifest(t *testing.T) {
	stubEnvironment(t)
	manifest := `
features:
  - id: network
    conditions:
      - name: link_up
        probe: CheckLinkUp
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "features.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte(manifest), 0600))

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{filePath})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "network")
	assert.Contains(t, out.String(), "enabled")
}

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, yamlcfg.NewLoader(), loaderFor("features.yaml"))
	assert.IsType(t, yamlcfg.NewLoader(), loaderFor("features.yml"))
	assert.IsType(t, hcl.NewLoader(), loaderFor("features.hcl"))
	assert.IsType(t, hcl.NewLoader(), loaderFor("manifests/"))
}

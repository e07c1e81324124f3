package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/helix/internal/feature"
	hclloader "github.com/vk/helix/internal/hcl"
	"github.com/vk/helix/modules/audio"
	"github.com/vk/helix/modules/network"
	"github.com/vk/helix/modules/speech"
)

// stubEnvironment forces all hardware probes into a known configuration.
func stubEnvironment(t *testing.T, audioDevice, link string) {
	t.Helper()
	t.Setenv(audio.EnvDevice, audioDevice)
	t.Setenv(network.EnvLink, link)
	t.Setenv(speech.EnvBackend, "definitely-not-a-tts-engine")
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const basicManifest = `
feature "audio" {
  condition "output_device" {
    probe = "CheckOutputDevice"
  }
}

feature "speech" {
  requires = ["audio"]

  condition "synthesizer_backend" {
    probe = "CheckSynthesizerBackend"
  }
}

feature "network" {
  condition "link_up" {
    probe = "CheckLinkUp"
  }
}
`

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	conf, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	a, err := NewApp(out, logs, conf, hclloader.NewLoader())
	require.NoError(t, err)
	return a, out
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults report format", func(t *testing.T) {
		cfg, err := NewConfig(Config{})
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.ReportFormat)
	})

	t.Run("rejects unknown report format", func(t *testing.T) {
		_, err := NewConfig(Config{ReportFormat: "xml"})
		require.Error(t, err)
	})
}

func TestNewApp(t *testing.T) {
	t.Run("manifest-driven registration", func(t *testing.T) {
		stubEnvironment(t, "default", "up")
		a, _ := newTestApp(t, Config{ManifestPath: writeManifest(t, basicManifest)})

		defs := a.Features().Definitions()
		assert.Len(t, defs, 3)
		assert.Contains(t, defs, "audio")
		assert.Contains(t, defs, "speech")
		assert.Contains(t, defs, "network")
	})

	t.Run("compiled-in definitions without manifest", func(t *testing.T) {
		stubEnvironment(t, "default", "up")
		a, _ := newTestApp(t, Config{})

		defs := a.Features().Definitions()
		assert.Len(t, defs, 3)
	})

	t.Run("manifest referencing unknown probe fails", func(t *testing.T) {
		manifest := writeManifest(t, `
feature "audio" {
  condition "device" {
    probe = "NoSuchProbe"
  }
}
`)
		conf, err := NewConfig(Config{ManifestPath: manifest})
		require.NoError(t, err)

		_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, conf, hclloader.NewLoader())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown probe")
	})

	t.Run("broken manifest fails", func(t *testing.T) {
		manifest := writeManifest(t, `feature "audio" {`)
		conf, err := NewConfig(Config{ManifestPath: manifest})
		require.NoError(t, err)

		_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, conf, hclloader.NewLoader())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load manifest")
	})
}

func TestRun(t *testing.T) {
	t.Run("text report reflects resolved states", func(t *testing.T) {
		stubEnvironment(t, "default", "up")
		a, out := newTestApp(t, Config{ManifestPath: writeManifest(t, basicManifest)})

		require.NoError(t, a.Run(context.Background()))

		report := out.String()
		assert.Contains(t, report, "FEATURE")
		assert.Contains(t, report, "audio")
		assert.Contains(t, report, "enabled")
		// No speech backend in the stub environment.
		assert.Contains(t, report, "disabled")
	})

	t.Run("json report", func(t *testing.T) {
		stubEnvironment(t, "none", "up")
		a, out := newTestApp(t, Config{
			ManifestPath: writeManifest(t, basicManifest),
			ReportFormat: "json",
		})

		require.NoError(t, a.Run(context.Background()))

		var rows []reportRow
		require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
		require.Len(t, rows, 3)

		byFeature := make(map[string]reportRow)
		for _, row := range rows {
			byFeature[row.Feature] = row
		}
		assert.Equal(t, "disabled", byFeature["audio"].State)
		assert.Equal(t, "blocked", byFeature["speech"].State)
		assert.Contains(t, byFeature["speech"].Reason, "dependency audio unavailable")
		assert.Equal(t, "enabled", byFeature["network"].State)
	})

	t.Run("resolution failure surfaces", func(t *testing.T) {
		stubEnvironment(t, "default", "up")
		manifest := writeManifest(t, `
feature "a" {
  requires = ["b"]
}
feature "b" {
  requires = ["a"]
}
`)
		a, _ := newTestApp(t, Config{ManifestPath: manifest})

		err := a.Run(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, feature.ErrCyclicDependency)
	})
}

func TestStatusServer(t *testing.T) {
	newResolvedApp := func(t *testing.T) *App {
		t.Helper()
		stubEnvironment(t, "default", "up")
		a, _ := newTestApp(t, Config{ManifestPath: writeManifest(t, basicManifest)})
		require.NoError(t, a.Features().Resolve(context.Background()))
		return a
	}

	t.Run("health", func(t *testing.T) {
		a := newResolvedApp(t)
		srv := httptest.NewServer(a.statusMux())
		defer srv.Close()

		res, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("features snapshot", func(t *testing.T) {
		a := newResolvedApp(t)
		srv := httptest.NewServer(a.statusMux())
		defer srv.Close()

		res, err := http.Get(srv.URL + "/features")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var rows []reportRow
		require.NoError(t, json.NewDecoder(res.Body).Decode(&rows))
		assert.Len(t, rows, 3)
	})

	t.Run("explicit re-resolution", func(t *testing.T) {
		a := newResolvedApp(t)
		srv := httptest.NewServer(a.statusMux())
		defer srv.Close()

		assert.True(t, a.Features().IsEnabled("audio"))

		// Unplug the audio device, then ask for a re-resolve.
		t.Setenv(audio.EnvDevice, "none")
		res, err := http.Post(srv.URL+"/resolve", "", nil)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		assert.False(t, a.Features().IsEnabled("audio"))
	})

	t.Run("resolve only accepts POST", func(t *testing.T) {
		a := newResolvedApp(t)
		srv := httptest.NewServer(a.statusMux())
		defer srv.Close()

		res, err := http.Get(srv.URL + "/resolve")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	})
}

func TestCustomModules(t *testing.T) {
	// A host can swap the compiled-in providers for its own subset.
	stubEnvironment(t, "default", "up")
	conf, err := NewConfig(Config{})
	require.NoError(t, err)

	a, err := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, conf, nil, &audio.Module{})
	require.NoError(t, err)
	assert.Contains(t, a.probes.Probes, "CheckOutputDevice")
	assert.NotContains(t, a.probes.Probes, "CheckLinkUp")
}

package speech

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/helix/internal/registry"
)

// recordingBackend captures utterances; it can optionally block until its
// context is cancelled to simulate a slow renderer.
type recordingBackend struct {
	mu     sync.Mutex
	spoken []Utterance
	block  chan struct{} // non-nil: Speak blocks here or on ctx
}

func (b *recordingBackend) Speak(ctx context.Context, u Utterance) error {
	b.mu.Lock()
	b.spoken = append(b.spoken, u)
	b.mu.Unlock()

	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (b *recordingBackend) snapshot() []Utterance {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Utterance(nil), b.spoken...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func fakeBackendBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-tts")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
	return path
}

func TestBackendCondition(t *testing.T) {
	cond := BackendCondition()
	assert.Equal(t, "synthesizer_backend", cond.Describe())

	t.Run("override points at an installed binary", func(t *testing.T) {
		t.Setenv(EnvBackend, fakeBackendBinary(t))
		assert.True(t, cond.Evaluate())
	})

	t.Run("override points at nothing", func(t *testing.T) {
		t.Setenv(EnvBackend, "definitely-not-a-tts-engine")
		assert.False(t, cond.Evaluate())
	})
}

func TestModuleRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	probe, ok := r.Probes["CheckSynthesizerBackend"]
	require.True(t, ok)

	cond, err := probe.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, "synthesizer_backend", cond.Describe())
}

func TestDefinition(t *testing.T) {
	def := Definition()
	assert.Equal(t, FeatureID, def.ID)
	assert.Equal(t, []string{"audio"}, def.Requires)
	require.Len(t, def.Conditions, 1)
}

func TestSynthesizer(t *testing.T) {
	t.Run("speak before init fails", func(t *testing.T) {
		s := NewSynthesizer(&recordingBackend{})
		err := s.Speak("hello", false)
		require.ErrorIs(t, err, ErrNotInitialized)
	})

	t.Run("utterances carry the settings in effect", func(t *testing.T) {
		backend := &recordingBackend{}
		s := NewSynthesizer(backend)
		require.NoError(t, s.Init())
		defer s.Close()

		s.SetVolume(0.5)
		s.SetLanguage("de-DE")
		s.SetGender(GenderFemale)
		require.NoError(t, s.Speak("hallo", false))

		waitFor(t, func() bool { return len(backend.snapshot()) == 1 })
		u := backend.snapshot()[0]
		assert.Equal(t, "hallo", u.Text)
		assert.Equal(t, "de-DE", u.Language)
		assert.Equal(t, GenderFemale, u.Gender)
		assert.InDelta(t, 0.5, u.Volume, 1e-9)
	})

	t.Run("volume is clamped", func(t *testing.T) {
		s := NewSynthesizer(&recordingBackend{})
		s.SetVolume(7)
		assert.InDelta(t, 1.0, s.volume, 1e-9)
		s.SetVolume(-2)
		assert.InDelta(t, 0.0, s.volume, 1e-9)
	})

	t.Run("interrupt drops pending and cancels current", func(t *testing.T) {
		backend := &recordingBackend{block: make(chan struct{})}
		s := NewSynthesizer(backend)
		require.NoError(t, s.Init())
		defer s.Close()

		require.NoError(t, s.Speak("first", false))
		waitFor(t, func() bool { return len(backend.snapshot()) == 1 })

		require.NoError(t, s.Speak("queued", false))
		require.NoError(t, s.Speak("urgent", true))

		// "queued" was dropped; "urgent" renders once "first" is cancelled.
		waitFor(t, func() bool { return len(backend.snapshot()) == 2 })
		spoken := backend.snapshot()
		assert.Equal(t, "first", spoken[0].Text)
		assert.Equal(t, "urgent", spoken[1].Text)
	})

	t.Run("double init fails", func(t *testing.T) {
		s := NewSynthesizer(&recordingBackend{})
		require.NoError(t, s.Init())
		defer s.Close()
		require.Error(t, s.Init())
	})

	t.Run("init resolves default backend from env", func(t *testing.T) {
		t.Setenv(EnvBackend, fakeBackendBinary(t))
		s := NewSynthesizer(nil)
		require.NoError(t, s.Init())
		s.Close()
	})

	t.Run("init fails without any backend", func(t *testing.T) {
		t.Setenv(EnvBackend, "definitely-not-a-tts-engine")
		s := NewSynthesizer(nil)
		err := s.Init()
		require.ErrorIs(t, err, ErrNoBackend)
	})

	t.Run("close is idempotent and stops speaking", func(t *testing.T) {
		s := NewSynthesizer(&recordingBackend{})
		require.NoError(t, s.Init())
		s.Close()
		s.Close()
		require.ErrorIs(t, s.Speak("late", false), ErrNotInitialized)
	})
}

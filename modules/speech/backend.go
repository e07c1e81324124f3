package speech

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// EnvBackend overrides backend discovery with an explicit command name or
// path.
const EnvBackend = "HELIX_SPEECH_BACKEND"

// backendCandidates are probed in order when no override is set.
var backendCandidates = []string{"espeak-ng", "espeak", "flite", "say"}

// ErrNoBackend is returned when no synthesizer backend can be found.
var ErrNoBackend = errors.New("speech: no synthesizer backend found")

// Backend renders one utterance. Implementations must honor context
// cancellation so an interrupting utterance can cut off the current one.
type Backend interface {
	Speak(ctx context.Context, u Utterance) error
}

// LookupBackend returns the resolved path of the synthesizer command to use.
func LookupBackend() (string, error) {
	if v := os.Getenv(EnvBackend); v != "" {
		path, err := exec.LookPath(v)
		if err != nil {
			return "", ErrNoBackend
		}
		return path, nil
	}

	for _, candidate := range backendCandidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", ErrNoBackend
}

// DefaultBackend resolves the synthesizer command and wraps it as a Backend.
func DefaultBackend() (Backend, error) {
	path, err := LookupBackend()
	if err != nil {
		return nil, err
	}
	return &commandBackend{path: path}, nil
}

// commandBackend shells out to a text-to-speech command, one invocation per
// utterance.
type commandBackend struct {
	path string
}

func (b *commandBackend) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, b.path, u.Text)
	return cmd.Run()
}

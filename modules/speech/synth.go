package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Gender selects the synthesized voice.
type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
	GenderNeutral
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	case GenderNeutral:
		return "neutral"
	default:
		return fmt.Sprintf("Gender(%d)", int(g))
	}
}

// Utterance is one queued speech request, carrying the synthesizer settings
// that were in effect when Speak was called.
type Utterance struct {
	Text     string
	Language string
	Gender   Gender
	Volume   float64
}

// ErrNotInitialized is returned by Speak before Init or after Close.
var ErrNotInitialized = errors.New("speech: synthesizer not initialized")

// Synthesizer queues utterances to a Backend, one at a time, on its own
// goroutine. An interrupting utterance drops everything pending and cancels
// whatever the backend is currently rendering.
type Synthesizer struct {
	mu            sync.Mutex
	backend       Backend
	volume        float64
	language      string
	gender        Gender
	queue         []Utterance
	running       bool
	cancelCurrent context.CancelFunc

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewSynthesizer creates a synthesizer speaking through the given backend.
// A nil backend is resolved to the default command backend during Init.
func NewSynthesizer(backend Backend) *Synthesizer {
	return &Synthesizer{
		backend:  backend,
		volume:   1.0,
		language: "en-US",
		gender:   GenderNeutral,
		wake:     make(chan struct{}, 1),
	}
}

// Init resolves the backend if needed and starts the speaking goroutine.
func (s *Synthesizer) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("speech: synthesizer already initialized")
	}
	if s.backend == nil {
		backend, err := DefaultBackend()
		if err != nil {
			return err
		}
		s.backend = backend
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true
	go s.run()
	return nil
}

// SetVolume sets the voice volume, clamped to [0, 1].
func (s *Synthesizer) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = min(max(volume, 0), 1)
}

// SetLanguage sets the voice language tag ("en-US").
func (s *Synthesizer) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
}

// SetGender sets the synthesized voice gender.
func (s *Synthesizer) SetGender(gender Gender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gender = gender
}

// Speak queues text for synthesis with the current voice settings. With
// interrupt set, pending utterances are dropped and the one currently being
// rendered is cancelled first.
func (s *Synthesizer) Speak(text string, interrupt bool) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	if interrupt {
		s.queue = s.queue[:0]
		if s.cancelCurrent != nil {
			s.cancelCurrent()
		}
	}
	s.queue = append(s.queue, Utterance{
		Text:     text,
		Language: s.language,
		Gender:   s.gender,
		Volume:   s.volume,
	})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of utterances queued but not yet started.
func (s *Synthesizer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Close stops the speaking goroutine, cancelling any in-flight utterance and
// dropping the queue. It blocks until the goroutine exits.
func (s *Synthesizer) Close() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.queue = nil
	if s.cancelCurrent != nil {
		s.cancelCurrent()
	}
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}

func (s *Synthesizer) run() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			u := s.queue[0]
			s.queue = s.queue[1:]
			ctx, cancel := context.WithCancel(context.Background())
			s.cancelCurrent = cancel
			backend := s.backend
			s.mu.Unlock()

			if err := backend.Speak(ctx, u); err != nil && ctx.Err() == nil {
				slog.Warn("Speech backend failed to render utterance.", "error", err)
			}
			cancel()

			s.mu.Lock()
			s.cancelCurrent = nil
			s.mu.Unlock()
		}
	}
}

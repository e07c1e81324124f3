package audio

import (
	"errors"
	"fmt"
	"sync"
)

// bytesPerSample is fixed: the render side produces signed 16-bit PCM.
const bytesPerSample = 2

// periodFrames is the number of frames the device side drains per pull.
const periodFrames = 512

// maxBufferedSeconds bounds how far the render side may run ahead of the
// device. The game loop is expected to check BufferedSampleCount and pace
// itself; the cap only guards against a stalled device callback.
const maxBufferedSeconds = 1

var (
	// ErrBufferFull is returned by QueueBuffer when accepting the buffer
	// would exceed the player's backlog cap.
	ErrBufferFull = errors.New("audio: buffer full")
	// ErrPlayerClosed is returned for operations on a closed player.
	ErrPlayerClosed = errors.New("audio: player closed")
)

// Player queues interleaved 16-bit PCM produced by the game loop for a
// platform audio backend. The render side pushes whole buffers with
// QueueBuffer; the device side pulls with Drain. Both sides may run on
// different goroutines.
type Player struct {
	sampleRate uint32
	channels   uint16

	mu     sync.Mutex
	queue  []byte
	closed bool
}

// NewPlayer creates a player for the given output format.
func NewPlayer(sampleRate uint32, channels uint16) *Player {
	return &Player{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// frameSize is the byte width of one frame (one sample per channel).
func (p *Player) frameSize() int {
	return bytesPerSample * int(p.channels)
}

// BufferSize returns the byte size of one device period, the granularity the
// backend drains at.
func (p *Player) BufferSize() int {
	return periodFrames * p.frameSize()
}

// BufferedSampleCount returns how many frames are queued but not yet drained.
// The game loop polls this to decide whether to synthesize more audio.
func (p *Player) BufferedSampleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) / p.frameSize()
}

// QueueBuffer appends one rendered PCM buffer. The buffer must contain whole
// frames. When the backlog cap is reached the buffer is rejected with
// ErrBufferFull rather than silently dropped, so the caller can back off.
func (p *Player) QueueBuffer(buf []byte) error {
	if len(buf)%p.frameSize() != 0 {
		return fmt.Errorf("audio: buffer length %d is not a whole number of %d-byte frames", len(buf), p.frameSize())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPlayerClosed
	}

	capBytes := int(p.sampleRate) * p.frameSize() * maxBufferedSeconds
	if len(p.queue)+len(buf) > capBytes {
		return ErrBufferFull
	}

	p.queue = append(p.queue, buf...)
	return nil
}

// Drain copies up to len(dst) queued bytes into dst and consumes them,
// returning the number of bytes copied. A short or zero result means the
// queue ran dry; the backend fills the remainder with silence.
func (p *Player) Drain(dst []byte) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := copy(dst, p.queue)
	p.queue = p.queue[n:]
	return n
}

// Close rejects further QueueBuffer calls and drops any queued audio.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.queue = nil
}

package device

import (
	"fmt"
	"sync"
)

// Mock simulates a serial MIDI adapter for dry runs and testing. It
// swallows every frame and keeps a record for inspection.
type Mock struct {
	mu        sync.RWMutex
	connected bool
	frames    [][]byte
}

// Ensure Mock implements Sink.
var _ Sink = (*Mock)(nil)

// NewMock creates a new mocked sink.
func NewMock() *Mock {
	return &Mock{}
}

// Connect simulates connecting to the adapter.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	return nil
}

// Close stops the mocked sink.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.connected = false
	return nil
}

// Write records one frame. The stored copy is detached from p.
func (m *Mock) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return 0, fmt.Errorf("not connected")
	}

	frame := make([]byte, len(p))
	copy(frame, p)
	m.frames = append(m.frames, frame)

	return len(p), nil
}

// Frames returns a copy of every frame written so far.
func (m *Mock) Frames() [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	frames := make([][]byte, len(m.frames))
	copy(frames, m.frames)
	return frames
}

// Reset drops the recorded frames.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = nil
}

// IsConnected returns whether the sink is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

package device

import "io"

// Sink is a destination for the outgoing MIDI byte stream (real or
// mocked).
type Sink interface {
	io.Writer
	Connect() error
	Close() error
	IsConnected() bool
}

// Ensure Serial implements Sink.
var _ Sink = (*Serial)(nil)

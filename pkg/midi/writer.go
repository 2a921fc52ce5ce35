package midi

import (
	"fmt"
	"io"
)

// Writer emits pitch bend frames onto an underlying byte stream.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// SendPitchBend writes one complete frame carrying the given value.
func (w *Writer) SendPitchBend(value uint16) error {
	frame := EncodePitchBend(value)
	if _, err := w.w.Write(frame[:]); err != nil {
		return fmt.Errorf("write pitch bend: %w", err)
	}
	return nil
}

package midi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestEncodePitchBend(t *testing.T) {
	tests := []struct {
		name  string
		value uint16
		want  [3]byte
	}{
		{name: "lowest", value: 0, want: [3]byte{0xE0, 0x00, 0x00}},
		{name: "one below center", value: 8191, want: [3]byte{0xE0, 0x7F, 0x3F}},
		{name: "center", value: CenterValue, want: [3]byte{0xE0, 0x00, 0x40}},
		{name: "highest", value: MaxValue, want: [3]byte{0xE0, 0x7F, 0x7F}},
		{name: "modulation floor", value: 4915, want: [3]byte{0xE0, 0x33, 0x26}},
		{name: "modulation ceiling", value: 11467, want: [3]byte{0xE0, 0x4B, 0x59}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodePitchBend(tt.value))
		})
	}
}

// Every frame must agree with what an independent MIDI implementation
// produces and parses for the same bend value.
func TestEncodeMatchesReferenceLibrary(t *testing.T) {
	for _, value := range []uint16{0, 1, 4915, 8191, 8192, 11467, 16383} {
		frame := EncodePitchBend(value)

		want := gomidi.Pitchbend(0, int16(int(value)-int(CenterValue)))
		assert.Equal(t, []byte(want), frame[:], "value %d", value)

		var (
			channel  uint8
			relative int16
			absolute uint16
		)
		msg := gomidi.Message(frame[:])
		require.True(t, msg.GetPitchBend(&channel, &relative, &absolute), "value %d", value)
		assert.Equal(t, uint8(0), channel, "value %d", value)
		assert.Equal(t, value, absolute, "value %d", value)
	}
}

func TestDecodePitchBend(t *testing.T) {
	tests := []struct {
		name   string
		status byte
		lo     byte
		hi     byte
		want   uint16
		ok     bool
	}{
		{name: "center", status: 0xE0, lo: 0x00, hi: 0x40, want: CenterValue, ok: true},
		{name: "highest", status: 0xE0, lo: 0x7F, hi: 0x7F, want: MaxValue, ok: true},
		{name: "note on is not a bend", status: 0x90, lo: 0x40, hi: 0x40, ok: false},
		{name: "status bit set in low byte", status: 0xE0, lo: 0x80, hi: 0x00, ok: false},
		{name: "status bit set in high byte", status: 0xE0, lo: 0x00, hi: 0xFF, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodePitchBend(tt.status, tt.lo, tt.hi)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWriterSendPitchBend(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.SendPitchBend(CenterValue))
	require.NoError(t, w.SendPitchBend(MaxValue))

	assert.Equal(t, []byte{0xE0, 0x00, 0x40, 0xE0, 0x7F, 0x7F}, buf.Bytes())
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestWriterWrapsSinkError(t *testing.T) {
	sinkErr := errors.New("port gone")
	w := NewWriter(failingWriter{err: sinkErr})

	err := w.SendPitchBend(CenterValue)
	require.Error(t, err)
	assert.ErrorIs(t, err, sinkErr)
}

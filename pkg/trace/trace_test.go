package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gobend/pkg/midi"
)

func writeFrame(t *testing.T, r *Recorder, value uint16) {
	t.Helper()
	frame := midi.EncodePitchBend(value)
	n, err := r.Write(frame[:])
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestRecorder_ParsesWholeFrames(t *testing.T) {
	r := NewRecorder(time.Minute)

	writeFrame(t, r, midi.CenterValue)
	writeFrame(t, r, 4915)

	points := r.Points()
	require.Len(t, points, 2)
	assert.Equal(t, midi.CenterValue, points[0].Value)
	assert.Equal(t, uint16(4915), points[1].Value)
}

func TestRecorder_ReassemblesSplitFrames(t *testing.T) {
	r := NewRecorder(time.Minute)

	stream := []byte{0xE0, 0x00, 0x40, 0xE0, 0x7F, 0x7F}
	for _, b := range stream {
		_, err := r.Write([]byte{b})
		require.NoError(t, err)
	}

	points := r.Points()
	require.Len(t, points, 2)
	assert.Equal(t, midi.CenterValue, points[0].Value)
	assert.Equal(t, midi.MaxValue, points[1].Value)
}

func TestRecorder_SkipsForeignBytes(t *testing.T) {
	r := NewRecorder(time.Minute)

	// A note-on message and a stray data byte mixed into the stream.
	_, err := r.Write([]byte{0x90, 0x45, 0x60, 0x12, 0xE0, 0x00, 0x40})
	require.NoError(t, err)

	points := r.Points()
	require.Len(t, points, 1)
	assert.Equal(t, midi.CenterValue, points[0].Value)
}

func TestRecorder_TrimsOutsideWindow(t *testing.T) {
	r := NewRecorder(time.Second)
	current := time.Unix(1000, 0)
	r.now = func() time.Time { return current }

	writeFrame(t, r, 5000)
	current = current.Add(500 * time.Millisecond)
	writeFrame(t, r, 6000)
	current = current.Add(1500 * time.Millisecond)
	writeFrame(t, r, 7000)

	points := r.Points()
	require.Len(t, points, 1)
	assert.Equal(t, uint16(7000), points[0].Value)
}

func TestRecorder_NotifiesOnUpdate(t *testing.T) {
	r := NewRecorder(time.Minute)

	var lastValues []uint16
	var windowLens []int
	r.OnUpdate(func(points []Point, last Point) {
		lastValues = append(lastValues, last.Value)
		windowLens = append(windowLens, len(points))
	})

	writeFrame(t, r, 8000)
	writeFrame(t, r, 9000)

	assert.Equal(t, []uint16{8000, 9000}, lastValues)
	assert.Equal(t, []int{1, 2}, windowLens)
}

func TestRecorder_CallbackGetsPrivateCopy(t *testing.T) {
	r := NewRecorder(time.Minute)

	var captured []Point
	r.OnUpdate(func(points []Point, last Point) {
		captured = points
	})

	writeFrame(t, r, 8000)
	require.Len(t, captured, 1)
	captured[0].Value = 1

	assert.Equal(t, uint16(8000), r.Points()[0].Value)
}

func TestRecorder_Last(t *testing.T) {
	r := NewRecorder(time.Minute)

	_, _, ok := r.Last()
	assert.False(t, ok)

	writeFrame(t, r, midi.CenterValue)
	writeFrame(t, r, 11467)

	last, frame, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, uint16(11467), last.Value)
	assert.Equal(t, [3]byte{0xE0, 0x4B, 0x59}, frame)
}

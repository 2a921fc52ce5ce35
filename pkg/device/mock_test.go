package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gobend/pkg/midi"
)

func TestMock_Connect_AlreadyConnected(t *testing.T) {
	m := NewMock()

	err := m.Connect()
	assert.NoError(t, err)

	err = m.Connect()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already connected")
}

func TestMock_Write_NotConnected(t *testing.T) {
	m := NewMock()

	_, err := m.Write([]byte{0xE0, 0x00, 0x40})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestMock_RecordsFrames(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Connect())

	w := midi.NewWriter(m)
	require.NoError(t, w.SendPitchBend(midi.CenterValue))
	require.NoError(t, w.SendPitchBend(0))

	frames := m.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, []byte{0xE0, 0x00, 0x40}, frames[0])
	assert.Equal(t, []byte{0xE0, 0x00, 0x00}, frames[1])

	m.Reset()
	assert.Empty(t, m.Frames())
}

func TestMock_WriteCopiesTheFrame(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Connect())

	buf := []byte{0xE0, 0x00, 0x40}
	_, err := m.Write(buf)
	require.NoError(t, err)

	buf[2] = 0x00
	assert.Equal(t, []byte{0xE0, 0x00, 0x40}, m.Frames()[0])
}

func TestMock_CloseAndReconnect(t *testing.T) {
	m := NewMock()

	require.NoError(t, m.Connect())
	assert.True(t, m.IsConnected())

	require.NoError(t, m.Close())
	assert.False(t, m.IsConnected())

	require.NoError(t, m.Connect())
	assert.True(t, m.IsConnected())
}

package lfo

import "github.com/itohio/gobend/pkg/midi"

// DefaultStrength is the fraction of the full bend range the modulation
// sweeps around center.
const DefaultStrength = 0.4

// Bounds is the modulation window inside the 14-bit bend range.
type Bounds struct {
	Min int
	Max int
}

// NewBounds derives the modulation window for the given strength. The
// float products are truncated, so the default strength yields
// {4915, 11467}.
func NewBounds(strength float64) Bounds {
	center := float64(midi.CenterValue)
	return Bounds{
		Min: int(center - strength*center),
		Max: int(center + strength*center - 1),
	}
}

// control maps a depth-scaled waveform sample onto the window. A zero
// product lands within one step of center regardless of depth.
func (b Bounds) control(depth int, sample int8) int {
	return rescale(depth*int(sample), -32768, 32767, b.Min, b.Max)
}

// brightness grades how far a control value sits above the window floor,
// 0 at Min up to 255 at Max.
func (b Bounds) brightness(value int) uint8 {
	return uint8(rescale(value, b.Min, b.Max, 0, 255))
}

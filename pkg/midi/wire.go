package midi

const (
	// StatusPitchBend is the status byte of a pitch bend message on
	// channel 0, the only channel the engine addresses.
	StatusPitchBend byte = 0xE0

	// CenterValue is the bend value that leaves the remote pitch alone.
	CenterValue uint16 = 8192
	// MaxValue is the largest encodable bend value.
	MaxValue uint16 = 16383

	// Baud is the classic MIDI serial rate.
	Baud = 31250
)

// EncodePitchBend splits a 14-bit bend value into a three byte wire
// frame: status, then the low and high 7-bit halves of the value.
func EncodePitchBend(value uint16) [3]byte {
	return [3]byte{StatusPitchBend, byte(value & 0x7F), byte((value >> 7) & 0x7F)}
}

// DecodePitchBend reassembles a bend value from a wire frame. It reports
// false when the bytes do not form a pitch bend message.
func DecodePitchBend(status, lo, hi byte) (uint16, bool) {
	if status != StatusPitchBend || lo > 0x7F || hi > 0x7F {
		return 0, false
	}
	return uint16(hi)<<7 | uint16(lo), true
}

package wavetable

import "github.com/chewxy/math32"

const (
	// Size is the number of samples in one full waveform cycle.
	Size = 256
	// Mask folds an arbitrary phase onto a valid table index.
	Mask = Size - 1

	amplitude = 127
)

// sine holds one signed single-cycle sine, filled once at startup and
// never mutated afterwards.
var sine [Size]int8

func init() {
	for i := range sine {
		sine[i] = int8(math32.Round(amplitude * math32.Sin(2*math32.Pi*float32(i)/Size)))
	}
}

// Sample returns the waveform value at the given phase. Phases outside
// [0, Size) wrap onto the cycle.
func Sample(phase int) int8 {
	return sine[phase&Mask]
}

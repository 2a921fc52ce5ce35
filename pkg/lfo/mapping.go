package lfo

import "time"

const (
	// AnalogMax is the top of the raw 10-bit control domain.
	AnalogMax = 1023

	// PeriodMinMicros and PeriodMaxMicros bound the per-step pause.
	PeriodMinMicros = 1000
	PeriodMaxMicros = 10000

	// DepthMax is the top of the modulation depth scale.
	DepthMax = 255
)

// rescale maps x from [inMin, inMax] onto [outMin, outMax] with
// truncating integer division.
func rescale(x, inMin, inMax, outMin, outMax int) int {
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// periodFor converts a raw rate reading into the step pause. Low
// readings oscillate fast, the top reading stretches one waveform
// step to 10ms.
func periodFor(raw uint16) time.Duration {
	return time.Duration(rescale(int(raw), 0, AnalogMax, PeriodMinMicros, PeriodMaxMicros)) * time.Microsecond
}

// depthFor converts a raw depth reading onto the modulation depth scale.
func depthFor(raw uint16) int {
	return rescale(int(raw), 0, AnalogMax, 0, DepthMax)
}

package lfo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/itohio/gobend/pkg/midi"
	"github.com/itohio/gobend/pkg/wavetable"
)

// Controls exposes the raw performer inputs the engine samples on every
// step.
type Controls interface {
	// Rate returns the raw oscillation rate reading in [0, AnalogMax].
	Rate() uint16
	// Depth returns the raw modulation depth reading in [0, AnalogMax].
	Depth() uint16
	// Released reports the switch line level: true while the footswitch
	// is released and the pull-up holds the line high.
	Released() bool
}

// Feedback receives the engine's visual level, 0 when idle.
type Feedback interface {
	SetBrightness(level uint8)
}

// Engine turns the control inputs into a paced stream of pitch bend
// frames. It is single threaded: one Step is one full pass of the
// sample, compute and emit loop.
type Engine struct {
	controls Controls
	out      *midi.Writer
	feedback Feedback
	bounds   Bounds

	phase       int
	wasReleased bool
}

// New wires an engine to its inputs, byte sink and indicator. The
// switch is taken as released at start, so powering up bypassed stays
// silent until the first press.
func New(controls Controls, sink io.Writer, feedback Feedback) *Engine {
	return &Engine{
		controls:    controls,
		out:         midi.NewWriter(sink),
		feedback:    feedback,
		bounds:      NewBounds(DefaultStrength),
		wasReleased: true,
	}
}

// Step runs one loop iteration and returns the pause to hold before the
// next one. Rate and depth are remapped on every step, pressed or not.
func (e *Engine) Step() (time.Duration, error) {
	period := periodFor(e.controls.Rate())
	depth := depthFor(e.controls.Depth())
	value := e.bounds.control(depth, wavetable.Sample(e.phase))

	released := e.controls.Released()
	switch {
	case !released:
		if err := e.out.SendPitchBend(uint16(value)); err != nil {
			return 0, err
		}
		e.feedback.SetBrightness(e.bounds.brightness(value))
	case !e.wasReleased:
		// One neutral frame recenters the remote pitch on release.
		if err := e.out.SendPitchBend(midi.CenterValue); err != nil {
			return 0, err
		}
		e.feedback.SetBrightness(0)
	}
	e.wasReleased = released

	e.phase = (e.phase + 1) & wavetable.Mask
	return period, nil
}

// Run steps the engine until ctx is done or the sink fails. The pause
// between steps is a plain blocking sleep, so cancellation is noticed
// on the next step.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		pause, err := e.Step()
		if err != nil {
			return fmt.Errorf("engine step: %w", err)
		}
		time.Sleep(pause)
	}
}

//go:build tinygo

//go:generate tinygo flash -target=arduino

package main

import (
	"context"
	"machine"

	"github.com/itohio/gobend/pkg/lfo"
)

var (
	adcRate  machine.ADC
	adcDepth machine.ADC
	uart     = machine.UART0
	pwm      = machine.Timer2
	ledCh    uint8
)

// pedal adapts the board peripherals to the engine's control and
// feedback ports.
type pedal struct{}

var (
	_ lfo.Controls = pedal{}
	_ lfo.Feedback = pedal{}
)

func (pedal) Rate() uint16  { return adcRate.Get() >> ADC_SHIFT }
func (pedal) Depth() uint16 { return adcDepth.Get() >> ADC_SHIFT }

// Released reads the raw switch line. The pull-up holds it high until
// the footswitch shorts it to ground.
func (pedal) Released() bool { return PIN_SWITCH.Get() }

func (pedal) SetBrightness(level uint8) {
	pwm.Set(ledCh, uint32(level)*pwm.Top()/255)
}

func main() {
	// Footswitch with the internal pull-up: low level means pressed
	PIN_SWITCH.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	// Configure ADC pins for the two pots
	machine.InitADC()
	adcRate = machine.ADC{Pin: PIN_RATE}
	adcDepth = machine.ADC{Pin: PIN_DEPTH}
	adcRate.Configure(machine.ADCConfig{})
	adcDepth.Configure(machine.ADCConfig{})

	// Configure the indicator LED PWM
	if err := pwm.Configure(machine.PWMConfig{}); err != nil {
		println("failed to configure PWM")
		return
	}
	ch, err := pwm.Channel(PIN_LED)
	if err != nil {
		println("failed to configure PWM channel")
		return
	}
	ledCh = ch

	// Configure UART for the MIDI stream. From here on the line carries
	// pitch bend frames only, so no more console output.
	uart.Configure(machine.UARTConfig{
		BaudRate: MIDI_BAUD_RATE,
	})

	hw := pedal{}
	engine := lfo.New(hw, uart, hw)

	// The context never cancels on hardware; Run only returns if a UART
	// write fails, and the loop restarts the stream.
	for {
		engine.Run(context.Background())
	}
}

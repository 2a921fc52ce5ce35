//go:build tinygo

package main

import (
	"machine"

	"github.com/itohio/gobend/pkg/midi"
)

const (
	// Control pins
	PIN_RATE   = machine.ADC0 // oscillation rate pot
	PIN_DEPTH  = machine.ADC1 // modulation depth pot
	PIN_SWITCH = machine.D2   // footswitch, pull-up wiring: low = pressed
	PIN_LED    = machine.D11  // indicator LED, PWM on Timer2

	// ADC configuration
	ADC_RESOLUTION = 10                  // AVR ADC resolution in bits (10-bit = 0-1023)
	ADC_SHIFT      = 16 - ADC_RESOLUTION // Get() left-aligns readings to 16 bits

	// Serial configuration
	// Baud rate check: MIDI is fixed at 31,250 baud, 8N1 framing.
	// Worst case is one 3-byte pitch bend frame per step at the fastest
	// period (1ms) = 3,000 bytes/sec. UART 8N1: 10 bits/byte = 30,000
	// bits/sec, inside the 31,250 bits/sec the line provides.
	MIDI_BAUD_RATE = midi.Baud
)

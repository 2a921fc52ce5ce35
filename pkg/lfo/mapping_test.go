package lfo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodFor(t *testing.T) {
	tests := []struct {
		name string
		raw  uint16
		want time.Duration
	}{
		{name: "bottom of the range", raw: 0, want: time.Millisecond},
		{name: "midpoint truncates", raw: 512, want: 5504 * time.Microsecond},
		{name: "top of the range", raw: AnalogMax, want: 10 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, periodFor(tt.raw))
		})
	}
}

func TestDepthFor(t *testing.T) {
	tests := []struct {
		name string
		raw  uint16
		want int
	}{
		{name: "bottom of the range", raw: 0, want: 0},
		{name: "barely turned is still zero", raw: 4, want: 0},
		{name: "midpoint", raw: 512, want: 127},
		{name: "top of the range", raw: AnalogMax, want: DepthMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, depthFor(tt.raw))
		})
	}
}

func TestNewBounds(t *testing.T) {
	tests := []struct {
		name     string
		strength float64
		want     Bounds
	}{
		{name: "default window", strength: DefaultStrength, want: Bounds{Min: 4915, Max: 11467}},
		{name: "half range", strength: 0.5, want: Bounds{Min: 4096, Max: 12287}},
		{name: "full range", strength: 1, want: Bounds{Min: 0, Max: 16383}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBounds(tt.strength))
		})
	}
}

func TestControlValue(t *testing.T) {
	b := NewBounds(DefaultStrength)

	tests := []struct {
		name   string
		depth  int
		sample int8
		want   int
	}{
		{name: "zero depth pins near center", depth: 0, sample: 127, want: 8191},
		{name: "zero sample pins near center", depth: DepthMax, sample: 0, want: 8191},
		{name: "full depth at positive peak", depth: DepthMax, sample: 127, want: 11428},
		{name: "full depth at negative extreme", depth: DepthMax, sample: -128, want: 4927},
		{name: "half depth partway up", depth: 127, sample: 64, want: 9003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.control(tt.depth, tt.sample))
		})
	}
}

func TestControlStaysInsideWindow(t *testing.T) {
	b := NewBounds(DefaultStrength)
	for depth := 0; depth <= DepthMax; depth++ {
		for sample := -128; sample <= 127; sample++ {
			v := b.control(depth, int8(sample))
			if v < b.Min || v > b.Max {
				t.Fatalf("control(%d, %d) = %d outside [%d, %d]", depth, sample, v, b.Min, b.Max)
			}
		}
	}
}

func TestZeroDepthPinsNearCenterForAnySample(t *testing.T) {
	b := NewBounds(DefaultStrength)
	for sample := -128; sample <= 127; sample++ {
		if v := b.control(0, int8(sample)); v != 8191 {
			t.Fatalf("control(0, %d) = %d, want 8191", sample, v)
		}
	}
}

func TestBrightness(t *testing.T) {
	b := NewBounds(DefaultStrength)

	tests := []struct {
		name  string
		value int
		want  uint8
	}{
		{name: "window floor is dark", value: b.Min, want: 0},
		{name: "near center is half bright", value: 8191, want: 127},
		{name: "window ceiling is full", value: b.Max, want: 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.brightness(tt.value))
		})
	}
}

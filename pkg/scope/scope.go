package scope

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"

	"github.com/itohio/gobend/pkg/config"
	"github.com/itohio/gobend/pkg/lfo"
	"github.com/itohio/gobend/pkg/trace"
)

// ScopeWidget is a custom Fyne widget that displays the outgoing bend
// stream oscilloscope-style.
type ScopeWidget struct {
	widget.BaseWidget

	cfg    *config.Config
	bounds lfo.Bounds

	// Data (protected by mu)
	mu         sync.RWMutex
	points     []trace.Point
	engaged    bool
	brightness uint8

	// Display buffer (reused for downsampling)
	displayPoints []trace.Point

	// Auto-scaling
	yMin, yMax float32
	xMin, xMax time.Time

	maxDisplayPoints int
}

// New creates a new ScopeWidget instance. The bounds mark the
// modulation window drawn as reference lines.
func New(cfg *config.Config, bounds lfo.Bounds) *ScopeWidget {
	s := &ScopeWidget{
		cfg:              cfg,
		bounds:           bounds,
		displayPoints:    make([]trace.Point, 0, cfg.Scope.MaxPoints),
		maxDisplayPoints: cfg.Scope.MaxPoints,
	}
	s.ExtendBaseWidget(s)
	// Trigger initial refresh to display empty scope
	s.Refresh()
	return s
}

// UpdateData updates the widget with a new window of emitted values.
// This should be called from the trace callback using fyne.Do().
func (s *ScopeWidget) UpdateData(points []trace.Point, engaged bool, brightness uint8) {
	s.mu.Lock()

	// Downsample for display (reuse buffer)
	s.displayPoints = trace.Downsample(s.displayPoints, points, s.maxDisplayPoints)

	// Store full data
	s.points = points
	s.engaged = engaged
	s.brightness = brightness

	// Calculate auto-scaling
	s.updateAutoScale()

	s.mu.Unlock()

	// Refresh the widget (must be outside lock to avoid potential deadlock)
	s.Refresh()
}

// updateAutoScale calculates the axis ranges from current data.
func (s *ScopeWidget) updateAutoScale() {
	window := time.Duration(s.cfg.Scope.WindowSeconds * float64(time.Second))

	if len(s.displayPoints) == 0 {
		// Empty scope shows the whole modulation window
		s.yMin = float32(s.bounds.Min)
		s.yMax = float32(s.bounds.Max)
		s.xMin = time.Now()
		s.xMax = s.xMin.Add(window)
		return
	}

	s.yMin = float32(s.displayPoints[0].Value)
	s.yMax = s.yMin
	for _, p := range s.displayPoints {
		s.yMin = math32.Min(s.yMin, float32(p.Value))
		s.yMax = math32.Max(s.yMax, float32(p.Value))
	}

	// Add 10% margin
	span := s.yMax - s.yMin
	if span == 0 {
		span = 1
	}
	margin := span * 0.1
	s.yMin -= margin
	s.yMax += margin

	// Time range
	s.xMin = s.displayPoints[0].At
	s.xMax = s.displayPoints[len(s.displayPoints)-1].At
	// Ensure minimum window
	if s.xMax.Sub(s.xMin) < window {
		s.xMax = s.xMin.Add(window)
	}
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	grid := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:    s,
		grid:     grid,
		objects:  []fyne.CanvasObject{grid},
		lastSize: fyne.Size{Width: 0, Height: 0},
	}
}

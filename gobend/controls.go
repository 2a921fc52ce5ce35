package main

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gobend/pkg/lfo"
)

// panelControls implements the engine's control port with on-screen
// widgets standing in for the two pots and the footswitch.
type panelControls struct {
	mu       sync.RWMutex
	rate     uint16
	depth    uint16
	released bool
}

var _ lfo.Controls = (*panelControls)(nil)

func newPanelControls() *panelControls {
	return &panelControls{
		rate:     lfo.AnalogMax / 2,
		depth:    lfo.AnalogMax / 2,
		released: true, // starts bypassed, like an untouched pedal
	}
}

func (p *panelControls) Rate() uint16 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rate
}

func (p *panelControls) Depth() uint16 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.depth
}

func (p *panelControls) Released() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.released
}

func (p *panelControls) setRate(raw uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rate = raw
}

func (p *panelControls) setDepth(raw uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.depth = raw
}

func (p *panelControls) setReleased(released bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released = released
}

// ledIndicator implements the engine's feedback port with a small orange
// dot whose opacity follows the brightness level.
type ledIndicator struct {
	mu         sync.Mutex
	level      uint8
	lastRedraw time.Time

	dot *canvas.Circle
}

var _ lfo.Feedback = (*ledIndicator)(nil)

func newLEDIndicator() *ledIndicator {
	dot := canvas.NewCircle(color.NRGBA{R: 255, G: 165, B: 0, A: 0})
	dot.StrokeColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	dot.StrokeWidth = 1
	return &ledIndicator{dot: dot}
}

// SetBrightness is called from the engine goroutine on every step, so
// redraws are throttled the same way scope updates are. A zero level is
// always let through, it marks the release.
func (l *ledIndicator) SetBrightness(level uint8) {
	const redrawInterval = 16 * time.Millisecond // ~60 FPS

	l.mu.Lock()
	l.level = level
	now := time.Now()
	if level != 0 && now.Sub(l.lastRedraw) < redrawInterval {
		l.mu.Unlock()
		return
	}
	l.lastRedraw = now
	l.mu.Unlock()

	fyne.Do(func() {
		l.dot.FillColor = color.NRGBA{R: 255, G: 165, B: 0, A: level}
		l.dot.Refresh()
	})
}

// Level returns the current brightness level.
func (l *ledIndicator) Level() uint8 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// createControlPanel builds the bottom panel: rate and depth sliders,
// the footswitch button and the indicator LED.
func createControlPanel(state *appState) fyne.CanvasObject {
	panel := newPanelControls()
	state.panel = panel

	led := newLEDIndicator()
	state.led = led

	rateSlider := widget.NewSlider(0, float64(lfo.AnalogMax))
	rateSlider.Step = 1
	rateSlider.SetValue(float64(panel.Rate()))
	rateSlider.OnChanged = func(v float64) {
		panel.setRate(uint16(v))
	}

	depthSlider := widget.NewSlider(0, float64(lfo.AnalogMax))
	depthSlider.Step = 1
	depthSlider.SetValue(float64(panel.Depth()))
	depthSlider.OnChanged = func(v float64) {
		panel.setDepth(uint16(v))
	}

	footswitchBtn := widget.NewButton("Engage", func() {
		handleFootswitchToggle(state)
	})
	footswitchBtn.Disable()
	state.footswitchBtn = footswitchBtn

	// Fixed-size slot so the circle has a size to draw in
	ledSlot := container.NewGridWrap(fyne.NewSize(28, 28), led.dot)

	return container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Rate"), nil, rateSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Depth"), nil, depthSlider),
		container.NewHBox(footswitchBtn, ledSlot),
	)
}

// handleFootswitchToggle flips the footswitch between engaged and
// bypassed. The engine picks the new level up on its next step.
func handleFootswitchToggle(state *appState) {
	if state.chain == nil || !state.chain.sink.IsConnected() {
		return
	}

	state.panel.setReleased(!state.panel.Released())
	updateFootswitchButton(state)
}

// updateFootswitchButton updates the footswitch button's visual state.
func updateFootswitchButton(state *appState) {
	if state.panel.Released() {
		state.footswitchBtn.SetText("Engage")
		state.footswitchBtn.Importance = widget.MediumImportance
	} else {
		state.footswitchBtn.SetText("Release")
		state.footswitchBtn.Importance = widget.HighImportance
	}
	state.footswitchBtn.Refresh()
}

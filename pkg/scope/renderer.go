package scope

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"

	"github.com/itohio/gobend/pkg/midi"
	"github.com/itohio/gobend/pkg/trace"
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Background
	grid *canvas.Rectangle

	// Grid lines
	gridLines []*canvas.Line
	gridTexts []*canvas.Text

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	// Background fills entire widget
	r.grid.Resize(size)

	// Check if size changed
	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		r.lastSize = size
		// Size changed, trigger widget refresh to redraw with new dimensions
		// Use BaseWidget.Refresh() to properly trigger Fyne's refresh cycle
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *scopeRenderer) Refresh() {
	r.scope.mu.RLock()
	points := r.scope.displayPoints
	engaged := r.scope.engaged
	brightness := r.scope.brightness
	yMin := r.scope.yMin
	yMax := r.scope.yMax
	xMin := r.scope.xMin
	xMax := r.scope.xMax
	r.scope.mu.RUnlock()

	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	// Clear old objects (but keep grid)
	r.objects = []fyne.CanvasObject{r.grid}
	r.gridLines = r.gridLines[:0]
	r.gridTexts = r.gridTexts[:0]

	// Calculate margins
	marginLeft := float32(60.0)
	marginRight := float32(20.0)
	marginTop := float32(20.0)
	marginBottom := float32(40.0)

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	// Draw grid
	r.drawGrid(plotX, plotY, plotWidth, plotHeight, yMin, yMax, xMin, xMax)

	// Draw neutral center and window edges
	r.drawReferenceLines(plotX, plotY, plotWidth, plotHeight, yMin, yMax)

	// Draw the emitted values (orange line)
	if len(points) > 1 {
		r.drawValueLine(plotX, plotY, plotWidth, plotHeight, points, yMin, yMax, xMin, xMax)
	}

	// Draw bypass state indicator
	r.drawStatus(plotX, plotY, engaged, brightness)
}

// drawGrid draws the oscilloscope-style grid.
func (r *scopeRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight float32, yMin, yMax float32, xMin, xMax time.Time) {
	// Horizontal grid lines (bend values)
	numHLines := 8
	for i := 0; i <= numHLines; i++ {
		y := plotY + float32(i)*plotHeight/float32(numHLines)
		line := canvas.NewLine(color.RGBA{R: 40, G: 40, B: 40, A: 255})
		line.Position1 = fyne.NewPos(plotX, y)
		line.Position2 = fyne.NewPos(plotX+plotWidth, y)
		line.StrokeWidth = 1
		r.gridLines = append(r.gridLines, line)
		r.objects = append(r.objects, line)

		// Y-axis label
		value := yMax - float32(i)*(yMax-yMin)/float32(numHLines)
		text := canvas.NewText(formatBend(value), color.RGBA{R: 150, G: 150, B: 150, A: 255})
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y-6))
		r.gridTexts = append(r.gridTexts, text)
		r.objects = append(r.objects, text)
	}

	// Vertical grid lines (time)
	numVLines := 10
	for i := 0; i <= numVLines; i++ {
		x := plotX + float32(i)*plotWidth/float32(numVLines)
		line := canvas.NewLine(color.RGBA{R: 40, G: 40, B: 40, A: 255})
		line.Position1 = fyne.NewPos(x, plotY)
		line.Position2 = fyne.NewPos(x, plotY+plotHeight)
		line.StrokeWidth = 1
		r.gridLines = append(r.gridLines, line)
		r.objects = append(r.objects, line)

		// X-axis label
		timeOffset := float64(i) * xMax.Sub(xMin).Seconds() / float64(numVLines)
		timeVal := xMin.Add(time.Duration(timeOffset * float64(time.Second)))
		text := canvas.NewText(formatTime(timeVal.Sub(xMin)), color.RGBA{R: 150, G: 150, B: 150, A: 255})
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, plotY+plotHeight+5))
		r.gridTexts = append(r.gridTexts, text)
		r.objects = append(r.objects, text)
	}
}

// drawReferenceLines marks the neutral value and the modulation window
// edges when they fall inside the visible range.
func (r *scopeRenderer) drawReferenceLines(plotX, plotY, plotWidth, plotHeight float32, yMin, yMax float32) {
	refs := []struct {
		value int
		col   color.RGBA
	}{
		{value: int(midi.CenterValue), col: color.RGBA{R: 0, G: 140, B: 70, A: 255}},
		{value: r.scope.bounds.Min, col: color.RGBA{R: 90, G: 90, B: 90, A: 255}},
		{value: r.scope.bounds.Max, col: color.RGBA{R: 90, G: 90, B: 90, A: 255}},
	}

	for _, ref := range refs {
		v := float32(ref.value)
		if v < yMin || v > yMax {
			continue
		}
		y := plotY + plotHeight - (v-yMin)/(yMax-yMin)*plotHeight
		line := canvas.NewLine(ref.col)
		line.Position1 = fyne.NewPos(plotX, y)
		line.Position2 = fyne.NewPos(plotX+plotWidth, y)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)
	}
}

// drawValueLine draws the emitted value curve (orange).
func (r *scopeRenderer) drawValueLine(plotX, plotY, plotWidth, plotHeight float32, points []trace.Point, yMin, yMax float32, xMin, xMax time.Time) {
	if len(points) < 2 {
		return
	}

	span := float32(xMax.Sub(xMin).Seconds())
	if span <= 0 || yMax <= yMin {
		return
	}

	positions := make([]fyne.Position, 0, len(points))
	for _, p := range points {
		x := plotX + float32(p.At.Sub(xMin).Seconds())/span*plotWidth
		y := plotY + plotHeight - (float32(p.Value)-yMin)/(yMax-yMin)*plotHeight
		positions = append(positions, fyne.NewPos(x, y))
	}

	// Draw connected line segments
	for i := 0; i < len(positions)-1; i++ {
		line := canvas.NewLine(color.RGBA{R: 255, G: 165, B: 0, A: 255}) // Orange
		line.Position1 = positions[i]
		line.Position2 = positions[i+1]
		line.StrokeWidth = 1.5
		r.objects = append(r.objects, line)
	}
}

// drawStatus shows the bypass state and the indicator level.
func (r *scopeRenderer) drawStatus(plotX, plotY float32, engaged bool, brightness uint8) {
	status := "bypassed"
	col := color.RGBA{R: 150, G: 150, B: 150, A: 255}
	if engaged {
		status = "engaged " + formatInt(int64(brightness))
		col = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	}

	text := canvas.NewText(status, col)
	text.TextSize = 11
	text.Alignment = fyne.TextAlignLeading
	text.Move(fyne.NewPos(plotX+10, plotY+10))
	r.objects = append(r.objects, text)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {
	// Cleanup handled by Fyne
}

// Helper functions for formatting

func formatBend(v float32) string {
	return formatInt(int64(math32.Round(v)))
}

func formatTime(d time.Duration) string {
	if d < time.Second {
		return formatFloat(float32(d.Seconds()), 2) + "s"
	}
	return formatFloat(float32(d.Seconds()), 1) + "s"
}

func formatFloat(v float32, decimals int) string {
	str := ""
	if v < 0 {
		str = "-"
		v = -v
	}
	intPart := int64(v)
	str += formatInt(intPart)
	if decimals > 0 {
		frac := v - float32(intPart)
		fracStr := formatInt(int64(math32.Round(frac * math32.Pow(10, float32(decimals)))))
		// Pad with zeros
		for len(fracStr) < decimals {
			fracStr = "0" + fracStr
		}
		str += "." + fracStr
	}
	return str
}

func formatInt(v int64) string {
	if v == 0 {
		return "0"
	}
	str := ""
	neg := v < 0
	if neg {
		v = -v
	}
	for v > 0 {
		str = string(rune('0'+v%10)) + str
		v /= 10
	}
	if neg {
		str = "-" + str
	}
	return str
}

package trace

import (
	"sync"
	"time"

	"github.com/itohio/gobend/pkg/midi"
)

// Point is one emitted bend value and its arrival time.
type Point struct {
	At    time.Time
	Value uint16
}

// Recorder taps the outgoing byte stream and keeps a time window of the
// emitted bend values for display. It is meant to sit behind an
// io.MultiWriter next to the real sink.
//
// The points buffer is a FIFO ordered oldest first. Removal is based on
// timestamp (time window), not number of points.
type Recorder struct {
	window time.Duration

	mu        sync.RWMutex
	points    []Point
	last      Point
	lastFrame [3]byte
	hasFrame  bool

	// Streaming parser state. A frame may arrive split across writes,
	// so partial frames are carried over. Only the single emitting
	// goroutine calls Write.
	frame [3]byte
	have  int

	callbacks []func(points []Point, last Point)
	cbMu      sync.RWMutex

	now func() time.Time
}

// NewRecorder creates a recorder keeping the given time window of
// points.
func NewRecorder(window time.Duration) *Recorder {
	return &Recorder{
		window: window,
		now:    time.Now,
	}
}

// Write consumes a chunk of the outgoing stream. Frames may be split or
// batched arbitrarily; bytes that do not belong to a pitch bend frame
// are skipped. Write never fails.
func (r *Recorder) Write(p []byte) (int, error) {
	for _, b := range p {
		if b >= 0x80 {
			// A status byte restarts the frame, any other message is
			// not ours to record.
			if b == midi.StatusPitchBend {
				r.frame[0] = b
				r.have = 1
			} else {
				r.have = 0
			}
			continue
		}

		if r.have == 0 {
			continue
		}

		r.frame[r.have] = b
		r.have++
		if r.have == 3 {
			r.have = 0
			if value, ok := midi.DecodePitchBend(r.frame[0], r.frame[1], r.frame[2]); ok {
				r.record(value, r.frame)
			}
		}
	}

	return len(p), nil
}

// record appends one decoded value, trims points that fell out of the
// window and notifies callbacks outside the lock.
func (r *Recorder) record(value uint16, frame [3]byte) {
	pt := Point{At: r.now(), Value: value}

	r.mu.Lock()
	r.points = append(r.points, pt)
	r.last = pt
	r.lastFrame = frame
	r.hasFrame = true

	cutoff := pt.At.Add(-r.window)
	cutoffIndex := 0
	for i, p := range r.points {
		if p.At.After(cutoff) {
			cutoffIndex = i
			break
		}
	}
	if cutoffIndex > 0 {
		r.points = r.points[cutoffIndex:]
	}
	r.mu.Unlock()

	r.notifyCallbacks(pt)
}

// Points returns a copy of the current window of points.
func (r *Recorder) Points() []Point {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Point, len(r.points))
	copy(result, r.points)
	return result
}

// Last returns the newest point and its raw frame bytes. It reports
// false until the first frame lands.
func (r *Recorder) Last() (Point, [3]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.hasFrame {
		return Point{}, [3]byte{}, false
	}
	return r.last, r.lastFrame, true
}

// OnUpdate registers a callback invoked after every recorded frame. The
// callback receives a private copy of the window and the newest point,
// and should return quickly.
func (r *Recorder) OnUpdate(callback func(points []Point, last Point)) {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	r.callbacks = append(r.callbacks, callback)
}

// notifyCallbacks copies the window under the read lock, then calls the
// callbacks without holding any lock.
func (r *Recorder) notifyCallbacks(last Point) {
	r.mu.RLock()
	pointsCopy := make([]Point, len(r.points))
	copy(pointsCopy, r.points)
	r.mu.RUnlock()

	r.cbMu.RLock()
	callbacks := make([]func(points []Point, last Point), len(r.callbacks))
	copy(callbacks, r.callbacks)
	r.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(pointsCopy, last)
		}
	}
}

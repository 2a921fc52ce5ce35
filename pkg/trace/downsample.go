package trace

// Downsample reduces a window of points to a maximum count for display.
// Uses simple decimation.
// Destination-based: reuses dst if it has sufficient capacity, otherwise
// allocates new. Returns the destination slice.
// If len(points) <= maxPoints, copies all points to dst.
func Downsample(dst []Point, points []Point, maxPoints int) []Point {
	if len(points) <= maxPoints {
		if cap(dst) >= len(points) {
			dst = dst[:len(points)]
			copy(dst, points)
			return dst
		}
		result := make([]Point, len(points))
		copy(result, points)
		return result
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0] // Reset length but keep capacity
	} else {
		dst = make([]Point, 0, maxPoints)
	}

	// Calculate step size for decimation
	step := float64(len(points)) / float64(maxPoints)

	for i := 0; i < maxPoints; i++ {
		idx := int(float64(i) * step)
		if idx < len(points) {
			dst = append(dst, points[idx])
		}
	}

	return dst
}

// Package motion turns consecutive frame pairs into motion samples and
// keeps the short rolling window the gesture classifier reads.
package motion

import (
	"image"
	"sync"
)

// Detection constants
const (
	// DefaultStride samples every Nth pixel in both axes.
	DefaultStride = 4
	// DefaultLumaThreshold is the per-sample luminance delta that
	// counts as movement.
	DefaultLumaThreshold = 28.0
	// DefaultMinChangedSamples is the floor below which a frame pair
	// counts as still; sensor noise and light flicker stay under it.
	DefaultMinChangedSamples = 15
)

// Sample is the centroid of the pixels that moved between two
// consecutive frames, in working-buffer coordinates.
type Sample struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp"` // Unix milliseconds
}

// Detector computes motion samples by differencing the luminance of
// two frames of identical dimensions. It holds no frame state; the
// caller owns both buffers.
type Detector struct {
	stride     int
	threshold  float64
	minChanged int
	mu         sync.Mutex
}

// NewDetector creates a Detector with the given sampling stride,
// luminance threshold and changed-sample floor. Non-positive values
// fall back to the defaults.
func NewDetector(stride int, threshold float64, minChanged int) *Detector {
	if stride <= 0 {
		stride = DefaultStride
	}
	if threshold <= 0 {
		threshold = DefaultLumaThreshold
	}
	if minChanged <= 0 {
		minChanged = DefaultMinChangedSamples
	}
	return &Detector{
		stride:     stride,
		threshold:  threshold,
		minChanged: minChanged,
	}
}

// Detect compares prev and cur and returns the motion centroid
// stamped with now (Unix milliseconds).
//
// Algorithm:
// 1. Visit every strideth pixel in both axes
// 2. Luminance per pixel: 0.299R + 0.587G + 0.114B
// 3. |delta| > threshold marks the pixel as moving
// 4. Fewer moving pixels than the floor: no motion
// 5. Otherwise the sample is the mean position of the moving pixels
func (d *Detector) Detect(prev, cur *image.RGBA, now int64) (Sample, bool) {
	d.mu.Lock()
	stride, threshold, minChanged := d.stride, d.threshold, d.minChanged
	d.mu.Unlock()

	if prev == nil || cur == nil {
		return Sample{}, false
	}
	if prev.Rect != cur.Rect {
		return Sample{}, false
	}

	var (
		changed int
		sumX    int
		sumY    int
	)

	width := cur.Rect.Dx()
	height := cur.Rect.Dy()

	for y := 0; y < height; y += stride {
		row := y * cur.Stride
		for x := 0; x < width; x += stride {
			i := row + x*4
			delta := luminance(cur.Pix, i) - luminance(prev.Pix, i)
			if delta < 0 {
				delta = -delta
			}
			if delta > threshold {
				changed++
				sumX += x
				sumY += y
			}
		}
	}

	if changed < minChanged {
		return Sample{}, false
	}

	return Sample{
		X:         float64(sumX) / float64(changed),
		Y:         float64(sumY) / float64(changed),
		Timestamp: now,
	}, true
}

// SetThreshold sets the luminance delta threshold. Values less than or
// equal to 0 are ignored.
func (d *Detector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.threshold = threshold
}

// SetMinChanged sets the changed-sample floor. Values less than or
// equal to 0 are ignored.
func (d *Detector) SetMinChanged(minChanged int) {
	if minChanged <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.minChanged = minChanged
}

func luminance(pix []uint8, i int) float64 {
	return 0.299*float64(pix[i]) + 0.587*float64(pix[i+1]) + 0.114*float64(pix[i+2])
}

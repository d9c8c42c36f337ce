package gesture

import (
	"math"
	"time"

	"github.com/ayusman/airnav/internal/motion"
)

// Tap defaults
const (
	// DefaultStabilityRadius is how far the centroid may wander, in
	// working-buffer pixels, and still count as holding still.
	DefaultStabilityRadius = 10.0
	// DefaultStableFrames is how many consecutive stable motion ticks
	// fire a tap.
	DefaultStableFrames = 10
	// DefaultTapCooldown follows every tap. Shorter than the swipe
	// cooldown and fully independent of it.
	DefaultTapCooldown = 800 * time.Millisecond
)

// TapDetector fires when the motion centroid holds still long enough.
// It runs beside the swipe channel, fed the same per-tick samples, and
// keeps its own cooldown.
type TapDetector struct {
	radius   float64
	required int
	cooldown int64 // milliseconds
	refX     float64
	refY     float64
	hasRef   bool
	stable   int
	lastTap  int64 // Unix milliseconds, 0 = never
}

// NewTapDetector creates a tap detector. Non-positive arguments fall
// back to the defaults.
func NewTapDetector(radius float64, required int, cooldown time.Duration) *TapDetector {
	if radius <= 0 {
		radius = DefaultStabilityRadius
	}
	if required <= 0 {
		required = DefaultStableFrames
	}
	if cooldown <= 0 {
		cooldown = DefaultTapCooldown
	}
	return &TapDetector{
		radius:   radius,
		required: required,
		cooldown: cooldown.Milliseconds(),
	}
}

// Observe feeds one motion centroid. When the stationary requirement
// is met it returns (x, y, true) with the current centroid, not the
// reference point, so the click lands where the hand actually is.
//
// During the tap cooldown the counter stays at zero but the reference
// keeps tracking the centroid, so a hand that never moved still needs
// a full fresh stable run after the cooldown expires.
func (t *TapDetector) Observe(s motion.Sample) (x, y float64, fired bool) {
	if t.lastTap != 0 && s.Timestamp-t.lastTap < t.cooldown {
		t.refX, t.refY = s.X, s.Y
		t.hasRef = true
		t.stable = 0
		return 0, 0, false
	}

	if !t.hasRef {
		t.refX, t.refY = s.X, s.Y
		t.hasRef = true
		t.stable = 0
		return 0, 0, false
	}

	if math.Hypot(s.X-t.refX, s.Y-t.refY) > t.radius {
		// Moved: new reference, start over.
		t.refX, t.refY = s.X, s.Y
		t.stable = 0
		return 0, 0, false
	}

	t.stable++
	if t.stable < t.required {
		return 0, 0, false
	}

	t.stable = 0
	t.lastTap = s.Timestamp
	t.refX, t.refY = s.X, s.Y
	return s.X, s.Y, true
}

// StableCount returns how many consecutive ticks the centroid has held
// still.
func (t *TapDetector) StableCount() int {
	return t.stable
}

// LastTap returns the Unix-millisecond time of the last fired tap, or
// 0.
func (t *TapDetector) LastTap() int64 {
	return t.lastTap
}

// Reset clears the reference point, the counter and the cooldown
// anchor.
func (t *TapDetector) Reset() {
	t.refX, t.refY = 0, 0
	t.hasRef = false
	t.stable = 0
	t.lastTap = 0
}

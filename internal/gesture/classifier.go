package gesture

import (
	"math"
	"time"

	"github.com/ayusman/airnav/internal/motion"
)

// Classifier defaults
const (
	// DefaultMinSamples is the fewest window samples worth judging.
	DefaultMinSamples = 4
	// DefaultMinSwipeDuration rejects single-frame spikes.
	DefaultMinSwipeDuration = 80 * time.Millisecond
	// DefaultThresholdX is the horizontal displacement a swipe must
	// cover, in working-buffer pixels.
	DefaultThresholdX = 70.0
	// DefaultThresholdY is the vertical displacement a swipe must
	// cover. Lower than X: vertical hand travel is physically shorter.
	DefaultThresholdY = 48.0
)

// Classifier judges a motion-history window by the displacement
// between its first and last samples. It is stateless; confirmation
// and cooldown live in Confirmer.
type Classifier struct {
	minSamples  int
	minDuration int64 // milliseconds
	thresholdX  float64
	thresholdY  float64
}

// NewClassifier creates a classifier. Non-positive arguments fall back
// to the defaults.
func NewClassifier(minSamples int, minDuration time.Duration, thresholdX, thresholdY float64) *Classifier {
	if minSamples <= 0 {
		minSamples = DefaultMinSamples
	}
	if minDuration <= 0 {
		minDuration = DefaultMinSwipeDuration
	}
	if thresholdX <= 0 {
		thresholdX = DefaultThresholdX
	}
	if thresholdY <= 0 {
		thresholdY = DefaultThresholdY
	}
	return &Classifier{
		minSamples:  minSamples,
		minDuration: minDuration.Milliseconds(),
		thresholdX:  thresholdX,
		thresholdY:  thresholdY,
	}
}

// Classify returns the gesture the window describes, or None.
//
// The dominant axis wins: a diagonal move classifies by whichever
// displacement is larger, and only if it clears that axis' threshold.
// The camera image is mirrored, so pixels moving left (dx < 0) are the
// user moving their hand to their own left.
func (c *Classifier) Classify(samples []motion.Sample) Kind {
	if len(samples) < c.minSamples {
		return None
	}

	first := samples[0]
	last := samples[len(samples)-1]

	dt := last.Timestamp - first.Timestamp
	if dt < c.minDuration {
		return None
	}

	dx := last.X - first.X
	dy := last.Y - first.Y
	adx := math.Abs(dx)
	ady := math.Abs(dy)

	switch {
	case adx > c.thresholdX && adx > ady:
		if dx < 0 {
			return SwipeLeft
		}
		return SwipeRight
	case ady > c.thresholdY && ady > adx:
		if dy > 0 {
			return SwipeDown
		}
		return SwipeUp
	}

	return None
}

// Package engine owns the camera lease and advances the detection
// pipeline one cooperative tick at a time: motion, classification,
// confirmation, tap, dispatch.
package engine

import (
	"fmt"
	"time"

	"github.com/ayusman/airnav/internal/capture"
	"github.com/ayusman/airnav/internal/gesture"
	"github.com/ayusman/airnav/internal/motion"
)

// DefaultTickInterval is roughly one display refresh.
const DefaultTickInterval = 33 * time.Millisecond

// DefaultVideoReadyTimeout bounds how long the engine waits for the
// first decoded frame before declaring the camera unusable.
const DefaultVideoReadyTimeout = 5 * time.Second

// DefaultConsumerName identifies the engine to the capture manager.
const DefaultConsumerName = "gesture-engine"

// Config collects every tunable of the pipeline. Start from
// DefaultConfig and override fields as needed.
type Config struct {
	// Working buffer dimensions the sampler shrinks frames to.
	SampleWidth  int
	SampleHeight int

	// Motion detection.
	Stride        int
	LumaThreshold float64
	MinChanged    int

	// History and classification.
	HistoryWindow    time.Duration
	MinSamples       int
	MinSwipeDuration time.Duration
	ThresholdX       float64
	ThresholdY       float64

	// Confirmation.
	ConfirmFrames int
	Cooldown      time.Duration

	// Tap detection.
	TapRadius   float64
	TapFrames   int
	TapCooldown time.Duration

	// Lifecycle.
	VideoReadyTimeout time.Duration
	TickInterval      time.Duration
	ConsumerName      string
}

// DefaultConfig returns the tuning the engine ships with.
func DefaultConfig() Config {
	return Config{
		SampleWidth:  capture.DefaultSampleWidth,
		SampleHeight: capture.DefaultSampleHeight,

		Stride:        motion.DefaultStride,
		LumaThreshold: motion.DefaultLumaThreshold,
		MinChanged:    motion.DefaultMinChangedSamples,

		HistoryWindow:    motion.DefaultWindow,
		MinSamples:       gesture.DefaultMinSamples,
		MinSwipeDuration: gesture.DefaultMinSwipeDuration,
		ThresholdX:       gesture.DefaultThresholdX,
		ThresholdY:       gesture.DefaultThresholdY,

		ConfirmFrames: gesture.DefaultConfirmFrames,
		Cooldown:      gesture.DefaultCooldown,

		TapRadius:   gesture.DefaultStabilityRadius,
		TapFrames:   gesture.DefaultStableFrames,
		TapCooldown: gesture.DefaultTapCooldown,

		VideoReadyTimeout: DefaultVideoReadyTimeout,
		TickInterval:      DefaultTickInterval,
		ConsumerName:      DefaultConsumerName,
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.SampleWidth <= 0 || c.SampleHeight <= 0 {
		return fmt.Errorf("engine: sample dimensions %dx%d", c.SampleWidth, c.SampleHeight)
	}
	if c.Stride <= 0 {
		return fmt.Errorf("engine: stride %d", c.Stride)
	}
	if c.LumaThreshold <= 0 {
		return fmt.Errorf("engine: luminance threshold %f", c.LumaThreshold)
	}
	if c.MinChanged <= 0 {
		return fmt.Errorf("engine: min changed samples %d", c.MinChanged)
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("engine: history window %s", c.HistoryWindow)
	}
	if c.MinSamples < 2 {
		return fmt.Errorf("engine: min classify samples %d", c.MinSamples)
	}
	if c.MinSwipeDuration <= 0 {
		return fmt.Errorf("engine: min swipe duration %s", c.MinSwipeDuration)
	}
	if c.ThresholdX <= 0 || c.ThresholdY <= 0 {
		return fmt.Errorf("engine: swipe thresholds %f/%f", c.ThresholdX, c.ThresholdY)
	}
	if c.ConfirmFrames <= 0 {
		return fmt.Errorf("engine: confirm frames %d", c.ConfirmFrames)
	}
	if c.Cooldown <= 0 {
		return fmt.Errorf("engine: cooldown %s", c.Cooldown)
	}
	if c.TapRadius <= 0 || c.TapFrames <= 0 || c.TapCooldown <= 0 {
		return fmt.Errorf("engine: tap tuning %f/%d/%s", c.TapRadius, c.TapFrames, c.TapCooldown)
	}
	if c.VideoReadyTimeout <= 0 {
		return fmt.Errorf("engine: video ready timeout %s", c.VideoReadyTimeout)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("engine: tick interval %s", c.TickInterval)
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("engine: empty consumer name")
	}
	return nil
}

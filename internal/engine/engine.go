package engine

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/ayusman/airnav/internal/capture"
	"github.com/ayusman/airnav/internal/gesture"
	"github.com/ayusman/airnav/internal/motion"
	"github.com/ayusman/airnav/internal/nav"
)

// CameraStatus is the camera's state as shown in the diagnostic
// overlay.
type CameraStatus string

const (
	// CameraOff means the engine holds no camera.
	CameraOff CameraStatus = "off"
	// CameraStarting means the lease is held but no frame has been
	// decoded yet.
	CameraStarting CameraStatus = "starting"
	// CameraActive means frames are flowing.
	CameraActive CameraStatus = "active"
	// CameraUnavailable means acquisition or the stream itself failed.
	CameraUnavailable CameraStatus = "unavailable"
)

// Status is a point-in-time snapshot of the pipeline.
type Status struct {
	Running        bool         `json:"running"`
	Camera         CameraStatus `json:"camera"`
	Route          nav.Route    `json:"route"`
	PendingKind    gesture.Kind `json:"pendingKind"`
	PendingCount   int          `json:"pendingCount"`
	StableFrames   int          `json:"stableFrames"`
	LastGesture    gesture.Kind `json:"lastGesture,omitempty"`
	LastGestureAt  int64        `json:"lastGestureAt,omitempty"`
	LastTapAt      int64        `json:"lastTapAt,omitempty"`
	CooldownUntil  int64        `json:"cooldownUntil,omitempty"`
	FramesIngested uint64       `json:"framesIngested"`
	TicksSkipped   uint64       `json:"ticksSkipped"`
}

// GestureCallback is invoked after a gesture has been dispatched.
// x and y are the motion centroid in working-buffer coordinates; at is
// Unix milliseconds.
type GestureCallback func(kind gesture.Kind, x, y float64, at int64)

type dispatchEvent struct {
	kind gesture.Kind
	x    float64
	y    float64
	at   int64
}

// Engine advances the detection pipeline one cooperative Tick at a
// time. It never spawns goroutines of its own; the caller owns the
// tick cadence.
type Engine struct {
	cfg        Config
	manager    *capture.Manager
	dispatcher *nav.Dispatcher
	sampler    *capture.Sampler
	detector   *motion.Detector
	history    *motion.History
	classifier *gesture.Classifier
	confirmer  *gesture.Confirmer
	taps       *gesture.TapDetector

	mu        sync.Mutex
	running   bool
	lease     *capture.Lease
	startedAt int64 // first tick after Start, Unix ms
	ready     bool
	camera    CameraStatus
	lastKind  gesture.Kind
	lastAt    int64
	lastTapAt int64
	skipped   uint64
	onGesture GestureCallback
}

// New creates an engine over the capture manager and dispatcher.
func New(cfg Config, manager *capture.Manager, dispatcher *nav.Dispatcher) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, fmt.Errorf("engine: nil capture manager")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("engine: nil dispatcher")
	}

	return &Engine{
		cfg:        cfg,
		manager:    manager,
		dispatcher: dispatcher,
		sampler:    capture.NewSampler(cfg.SampleWidth, cfg.SampleHeight),
		detector:   motion.NewDetector(cfg.Stride, cfg.LumaThreshold, cfg.MinChanged),
		history:    motion.NewHistory(cfg.HistoryWindow),
		classifier: gesture.NewClassifier(cfg.MinSamples, cfg.MinSwipeDuration, cfg.ThresholdX, cfg.ThresholdY),
		confirmer:  gesture.NewConfirmer(cfg.ConfirmFrames, cfg.Cooldown),
		taps:       gesture.NewTapDetector(cfg.TapRadius, cfg.TapFrames, cfg.TapCooldown),
		camera:     CameraOff,
	}, nil
}

// RegisterGestureCallback sets the function called after every
// dispatched gesture. Must be set before Start.
func (e *Engine) RegisterGestureCallback(fn GestureCallback) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onGesture = fn
}

// Start acquires the camera and arms the pipeline. Starting a running
// engine is a no-op. On acquisition failure nothing is held and the
// status reports the camera unavailable.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	lease, err := e.manager.Acquire(e.cfg.ConsumerName)
	if err != nil {
		e.camera = CameraUnavailable
		return fmt.Errorf("engine start: %w", err)
	}

	e.lease = lease
	e.running = true
	e.ready = false
	e.startedAt = 0
	e.camera = CameraStarting

	log.Printf("engine: started, camera held by %s", e.cfg.ConsumerName)
	return nil
}

// Stop releases the camera and clears every retained buffer, so a
// later Start begins from a clean slate. Stopping a stopped engine is
// a no-op. Stop is synchronous: when it returns, the device is
// released.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.camera = CameraOff
}

func (e *Engine) stopLocked() {
	if !e.running {
		return
	}
	e.running = false

	if e.lease != nil {
		e.lease.Release()
		e.lease = nil
	}

	e.sampler.Reset()
	e.history.Clear()
	e.confirmer.Reset()
	e.taps.Reset()
	e.ready = false
	e.startedAt = 0
	e.camera = CameraOff

	log.Printf("engine: stopped, camera released")
}

// Running reports whether the pipeline is armed.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Tick advances the pipeline once. now is Unix milliseconds and must
// not decrease between calls. The call is bounded and non-blocking; a
// tick that cannot make progress records a skip and returns.
//
// Order within a tick: frame read, downsample, motion detection,
// history append, then the swipe channel (cooldown gate, classify,
// confirm) and the tap channel on the same sample. Dispatch and the
// gesture callback run after the pipeline state has settled, outside
// the engine lock.
func (e *Engine) Tick(now int64) {
	for _, ev := range e.advance(now) {
		var err error
		if ev.kind == gesture.Tap {
			err = e.dispatcher.DispatchTap(ev.x, ev.y)
		} else {
			err = e.dispatcher.DispatchSwipe(ev.kind)
		}
		if err != nil {
			log.Printf("engine: dispatch %s: %v", ev.kind, err)
		}

		if fn := e.callback(); fn != nil {
			fn(ev.kind, ev.x, ev.y, ev.at)
		}
	}
}

func (e *Engine) callback() GestureCallback {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onGesture
}

func (e *Engine) advance(now int64) []dispatchEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}
	if e.startedAt == 0 {
		e.startedAt = now
	}

	if !e.lease.Active() {
		log.Printf("engine: camera preempted by %s", e.manager.Holder())
		e.stopLocked()
		return nil
	}

	img, err := e.lease.Source().ReadFrame()
	if err != nil {
		e.skipped++

		if !e.ready {
			if now-e.startedAt > e.cfg.VideoReadyTimeout.Milliseconds() {
				log.Printf("engine: no frame within %s, giving up: %v", e.cfg.VideoReadyTimeout, err)
				e.stopLocked()
				e.camera = CameraUnavailable
			}
			return nil
		}

		if errors.Is(err, capture.ErrCameraUnavailable) {
			log.Printf("engine: camera lost: %v", err)
			e.stopLocked()
			e.camera = CameraUnavailable
		}
		return nil
	}

	if !e.ready {
		e.ready = true
		e.camera = CameraActive
		log.Printf("engine: video ready after %dms", now-e.startedAt)
	}

	e.sampler.Ingest(img)
	prev, cur, ok := e.sampler.Frames()
	if !ok {
		return nil
	}

	sample, moved := e.detector.Detect(prev, cur, now)
	if !moved {
		return nil
	}

	e.history.Append(sample)

	var events []dispatchEvent

	if !e.confirmer.InCooldown(now) {
		kind := e.classifier.Classify(e.history.Samples())
		if committed := e.confirmer.Observe(kind, now); committed != gesture.None {
			e.history.Clear()
			e.lastKind = committed
			e.lastAt = now
			events = append(events, dispatchEvent{kind: committed, x: sample.X, y: sample.Y, at: now})
		}
	}

	if x, y, fired := e.taps.Observe(sample); fired {
		e.lastKind = gesture.Tap
		e.lastAt = now
		e.lastTapAt = now
		events = append(events, dispatchEvent{kind: gesture.Tap, x: x, y: y, at: now})
	}

	return events
}

// Status returns a snapshot of the pipeline for the diagnostic
// overlay and the status API.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	pendingKind, pendingCount := e.confirmer.Pending()

	s := Status{
		Running:        e.running,
		Camera:         e.camera,
		Route:          e.dispatcher.Route(),
		PendingKind:    pendingKind,
		PendingCount:   pendingCount,
		StableFrames:   e.taps.StableCount(),
		LastGesture:    e.lastKind,
		LastGestureAt:  e.lastAt,
		LastTapAt:      e.lastTapAt,
		FramesIngested: e.sampler.FrameCount(),
		TicksSkipped:   e.skipped,
	}
	if commit := e.confirmer.LastCommit(); commit > 0 {
		s.CooldownUntil = commit + e.cfg.Cooldown.Milliseconds()
	}
	return s
}

// Snapshot returns a copy of the current working buffer for the
// preview stream, or nil while no frame has been ingested.
func (e *Engine) Snapshot() *image.RGBA {
	return e.sampler.Snapshot()
}

// SetLumaThreshold adjusts the motion detector's luminance threshold
// on a live engine.
func (e *Engine) SetLumaThreshold(v float64) {
	e.detector.SetThreshold(v)
}

// SetMinChanged adjusts the motion detector's changed-sample floor on
// a live engine.
func (e *Engine) SetMinChanged(n int) {
	e.detector.SetMinChanged(n)
}

// Config returns the tuning the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

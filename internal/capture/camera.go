// Package capture provides camera ownership, video sources and the
// fixed-size frame sampler that feeds the detection pipeline.
package capture

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Default capture settings. The full-resolution frame is downsampled
// by the Sampler before any per-pixel work happens, so the native
// resolution only affects capture bandwidth.
const (
	DefaultDeviceID = 0
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultFPS      = 30
)

// ErrCameraUnavailable is returned when the capture device cannot be
// opened or has stopped delivering frames entirely.
var ErrCameraUnavailable = errors.New("camera unavailable")

// ErrCameraNotOpen is returned when trying to read from a source that
// is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// ErrVideoNotReady is returned while the device is open but has not
// delivered a decodable frame yet. Drivers commonly produce nothing
// for the first few hundred milliseconds after opening.
var ErrVideoNotReady = errors.New("video not ready")

// VideoSource defines the interface for video inputs, so the pipeline
// can run against real hardware or a scripted source in tests.
type VideoSource interface {
	Open() error
	Close() error
	ReadFrame() (image.Image, error)
	Ready() bool
	IsOpen() bool
}

// Webcam captures frames from a local camera device using GoCV.
// A single reusable Mat holds the decoded frame between reads.
type Webcam struct {
	deviceID int
	width    int
	height   int
	fps      float64
	capture  *gocv.VideoCapture
	frame    gocv.Mat
	frames   uint64
	mu       sync.Mutex
	running  bool
}

// NewWebcam creates a source for the given device ID. Width, height
// and fps are requested from the driver on Open; zero values keep the
// driver defaults.
func NewWebcam(deviceID, width, height int, fps float64) *Webcam {
	return &Webcam{
		deviceID: deviceID,
		width:    width,
		height:   height,
		fps:      fps,
	}
}

// Open opens the camera device and requests the configured capture
// properties. Errors wrap ErrCameraUnavailable so callers can tell a
// missing device apart from transient read failures.
func (w *Webcam) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("webcam %d: already open", w.deviceID)
	}

	capture, err := gocv.OpenVideoCapture(w.deviceID)
	if err != nil {
		return fmt.Errorf("%w: open device %d: %v", ErrCameraUnavailable, w.deviceID, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return fmt.Errorf("%w: device %d did not open", ErrCameraUnavailable, w.deviceID)
	}

	if w.width > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(w.width))
	}
	if w.height > 0 {
		capture.Set(gocv.VideoCaptureFrameHeight, float64(w.height))
	}
	if w.fps > 0 {
		capture.Set(gocv.VideoCaptureFPS, w.fps)
	}

	w.capture = capture
	w.frame = gocv.NewMat()
	w.frames = 0
	w.running = true

	return nil
}

// Close releases the device handle synchronously, so the hardware
// indicator goes out as soon as the call returns. Closing a closed
// source is a no-op.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	w.frames = 0

	w.frame.Close()
	err := w.capture.Close()
	w.capture = nil
	if err != nil {
		return fmt.Errorf("webcam %d: close device: %w", w.deviceID, err)
	}

	return nil
}

// ReadFrame decodes the next frame. A read failure wraps
// ErrCameraUnavailable; an empty frame wraps ErrVideoNotReady, which
// callers treat as a skip rather than a fault.
func (w *Webcam) ReadFrame() (image.Image, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil, ErrCameraNotOpen
	}

	if ok := w.capture.Read(&w.frame); !ok {
		return nil, fmt.Errorf("%w: device %d read failed", ErrCameraUnavailable, w.deviceID)
	}
	if w.frame.Empty() {
		return nil, fmt.Errorf("%w: device %d empty frame", ErrVideoNotReady, w.deviceID)
	}

	img, err := w.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("webcam %d: convert frame: %w", w.deviceID, err)
	}
	w.frames++

	return img, nil
}

// Ready returns true once at least one frame has been decoded since
// Open.
func (w *Webcam) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running && w.frames > 0
}

// IsOpen returns true if the device is currently open.
func (w *Webcam) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running
}

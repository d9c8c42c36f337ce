package nav

import (
	"fmt"
	"sync"

	"github.com/ayusman/airnav/internal/gesture"
)

// Dispatch defaults
const (
	// DefaultScrollStep is the distance one vertical swipe scrolls,
	// in CSS pixels.
	DefaultScrollStep = 240
	// DefaultScrollContainer is the well-known id of the app's main
	// scroll area.
	DefaultScrollContainer = "content-scroll"
)

// DefaultViewport is assumed until the hosting UI reports its real
// size.
var DefaultViewport = Viewport{Width: 390, Height: 844}

// Config carries the dispatcher's fixed wiring.
type Config struct {
	// Routes is the swipe adjacency table. Nil means DefaultMap.
	Routes Map
	// ScrollStep is the per-swipe scroll distance in CSS pixels.
	ScrollStep int
	// ScrollContainer is the id of the scrollable element.
	ScrollContainer string
	// MirrorX mirrors tap X coordinates; front cameras deliver a
	// mirrored image.
	MirrorX bool
	// FrameWidth and FrameHeight are the working-buffer dimensions
	// tap centroids arrive in.
	FrameWidth  int
	FrameHeight int
	// Viewport is the initial viewport before the UI reports one.
	Viewport Viewport
}

// Dispatcher turns committed gestures into Surface calls, using the
// current route to decide where a horizontal swipe lands.
type Dispatcher struct {
	surface   Surface
	routes    Map
	step      int
	container string
	mirrorX   bool
	frameW    float64
	frameH    float64

	mu       sync.Mutex
	route    Route
	viewport Viewport
}

// NewDispatcher validates the route map and returns a dispatcher
// writing to surface.
func NewDispatcher(surface Surface, cfg Config) (*Dispatcher, error) {
	if surface == nil {
		return nil, fmt.Errorf("nav: nil surface")
	}
	if cfg.Routes == nil {
		cfg.Routes = DefaultMap()
	}
	if err := cfg.Routes.Validate(); err != nil {
		return nil, fmt.Errorf("nav: %w", err)
	}
	if cfg.ScrollStep <= 0 {
		cfg.ScrollStep = DefaultScrollStep
	}
	if cfg.ScrollContainer == "" {
		cfg.ScrollContainer = DefaultScrollContainer
	}
	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return nil, fmt.Errorf("nav: frame dimensions %dx%d", cfg.FrameWidth, cfg.FrameHeight)
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		cfg.Viewport = DefaultViewport
	}

	return &Dispatcher{
		surface:   surface,
		routes:    cfg.Routes,
		step:      cfg.ScrollStep,
		container: cfg.ScrollContainer,
		mirrorX:   cfg.MirrorX,
		frameW:    float64(cfg.FrameWidth),
		frameH:    float64(cfg.FrameHeight),
		route:     RouteHome,
		viewport:  cfg.Viewport,
	}, nil
}

// SetRoute records the screen the UI is currently showing.
func (d *Dispatcher) SetRoute(r Route) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.route = r
}

// Route returns the screen the dispatcher believes is active.
func (d *Dispatcher) Route() Route {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.route
}

// SetViewport records the UI's reported size for tap mapping.
func (d *Dispatcher) SetViewport(v Viewport) {
	if v.Width <= 0 || v.Height <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = v
}

// Viewport returns the viewport taps are currently mapped onto.
func (d *Dispatcher) Viewport() Viewport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport
}

// DispatchSwipe applies a confirmed swipe. Horizontal swipes navigate
// along the route map and quietly do nothing in a terminal direction;
// vertical swipes scroll, with the direction inverted so an upward
// hand motion pulls later content into view.
func (d *Dispatcher) DispatchSwipe(kind gesture.Kind) error {
	d.mu.Lock()
	route := d.route
	d.mu.Unlock()

	if route == RouteScan {
		return nil
	}

	switch kind {
	case gesture.SwipeLeft, gesture.SwipeRight:
		neighbors, ok := d.routes.Neighbors(route)
		if !ok {
			return nil
		}
		target := neighbors.Left
		if kind == gesture.SwipeRight {
			target = neighbors.Right
		}
		if target == "" {
			return nil
		}
		if err := d.surface.Navigate(target); err != nil {
			return fmt.Errorf("navigate %s: %w", target, err)
		}
		d.mu.Lock()
		d.route = target
		d.mu.Unlock()
		return nil

	case gesture.SwipeUp:
		if err := d.surface.ScrollBy(d.container, d.step, true); err != nil {
			return fmt.Errorf("scroll down: %w", err)
		}
		return nil

	case gesture.SwipeDown:
		if err := d.surface.ScrollBy(d.container, -d.step, true); err != nil {
			return fmt.Errorf("scroll up: %w", err)
		}
		return nil
	}

	return fmt.Errorf("dispatch: %q is not a swipe", kind)
}

// DispatchTap maps a working-buffer centroid onto the viewport and
// clicks there. X is un-mirrored when the camera image is mirrored, so
// the click lands where the user sees their hand.
func (d *Dispatcher) DispatchTap(x, y float64) error {
	d.mu.Lock()
	route := d.route
	vp := d.viewport
	d.mu.Unlock()

	if route == RouteScan {
		return nil
	}

	fx := x / d.frameW
	if d.mirrorX {
		fx = 1 - fx
	}
	fy := y / d.frameH

	vx := clamp(int(fx*float64(vp.Width)), 0, vp.Width-1)
	vy := clamp(int(fy*float64(vp.Height)), 0, vp.Height-1)

	if err := d.surface.ClickAt(vx, vy); err != nil {
		return fmt.Errorf("click at (%d, %d): %w", vx, vy, err)
	}
	return nil
}

// Routes returns the adjacency table for the API surface.
func (d *Dispatcher) Routes() Map {
	return d.routes
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

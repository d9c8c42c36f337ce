package nav

import (
	"errors"
	"testing"

	"github.com/ayusman/airnav/internal/gesture"
)

type scrollCall struct {
	container string
	delta     int
	smooth    bool
}

type clickCall struct {
	x, y int
}

type fakeSurface struct {
	navigated []Route
	scrolls   []scrollCall
	clicks    []clickCall
	err       error
}

func (f *fakeSurface) Navigate(route Route) error {
	if f.err != nil {
		return f.err
	}
	f.navigated = append(f.navigated, route)
	return nil
}

func (f *fakeSurface) ScrollBy(containerID string, delta int, smooth bool) error {
	if f.err != nil {
		return f.err
	}
	f.scrolls = append(f.scrolls, scrollCall{containerID, delta, smooth})
	return nil
}

func (f *fakeSurface) ClickAt(x, y int) error {
	if f.err != nil {
		return f.err
	}
	f.clicks = append(f.clicks, clickCall{x, y})
	return nil
}

func newTestDispatcher(t *testing.T, surface Surface, mirror bool) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(surface, Config{
		MirrorX:     mirror,
		FrameWidth:  320,
		FrameHeight: 240,
		Viewport:    Viewport{Width: 390, Height: 844},
	})
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}
	return d
}

func TestNewDispatcher_Validation(t *testing.T) {
	surface := &fakeSurface{}

	if _, err := NewDispatcher(nil, Config{FrameWidth: 320, FrameHeight: 240}); err == nil {
		t.Error("nil surface should be rejected")
	}

	if _, err := NewDispatcher(surface, Config{FrameWidth: 0, FrameHeight: 240}); err == nil {
		t.Error("zero frame width should be rejected")
	}

	bad := Config{
		Routes:      Map{RouteHome: {Left: Route("/missing")}},
		FrameWidth:  320,
		FrameHeight: 240,
	}
	if _, err := NewDispatcher(surface, bad); err == nil {
		t.Error("invalid route map should be rejected")
	}
}

func TestDispatcher_HorizontalSwipes(t *testing.T) {
	tests := []struct {
		name       string
		route      Route
		kind       gesture.Kind
		wantTarget Route
	}{
		{
			name:       "home swiped right",
			route:      RouteHome,
			kind:       gesture.SwipeRight,
			wantTarget: RouteTasks,
		},
		{
			name:       "tasks swiped left",
			route:      RouteTasks,
			kind:       gesture.SwipeLeft,
			wantTarget: RouteHome,
		},
		{
			name:       "documents swiped right reaches the vault",
			route:      RouteDocuments,
			kind:       gesture.SwipeRight,
			wantTarget: RouteDocVault,
		},
		{
			name:       "home swiped left is terminal",
			route:      RouteHome,
			kind:       gesture.SwipeLeft,
			wantTarget: "",
		},
		{
			name:       "profile is terminal both ways",
			route:      RouteProfile,
			kind:       gesture.SwipeRight,
			wantTarget: "",
		},
		{
			name:       "unknown screen has no targets",
			route:      Route("/nowhere"),
			kind:       gesture.SwipeRight,
			wantTarget: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := &fakeSurface{}
			d := newTestDispatcher(t, surface, true)
			d.SetRoute(tt.route)

			if err := d.DispatchSwipe(tt.kind); err != nil {
				t.Fatalf("DispatchSwipe() error = %v", err)
			}

			if tt.wantTarget == "" {
				if len(surface.navigated) != 0 {
					t.Fatalf("navigated %v, want nothing", surface.navigated)
				}
				if got := d.Route(); got != tt.route {
					t.Errorf("Route() = %q, want unchanged %q", got, tt.route)
				}
				return
			}

			if len(surface.navigated) != 1 || surface.navigated[0] != tt.wantTarget {
				t.Fatalf("navigated %v, want [%s]", surface.navigated, tt.wantTarget)
			}
			if got := d.Route(); got != tt.wantTarget {
				t.Errorf("Route() = %q, want %q", got, tt.wantTarget)
			}
		})
	}
}

func TestDispatcher_VerticalSwipesInvert(t *testing.T) {
	surface := &fakeSurface{}
	d := newTestDispatcher(t, surface, true)
	d.SetRoute(RouteTasks)

	if err := d.DispatchSwipe(gesture.SwipeUp); err != nil {
		t.Fatalf("DispatchSwipe(up) error = %v", err)
	}
	if err := d.DispatchSwipe(gesture.SwipeDown); err != nil {
		t.Fatalf("DispatchSwipe(down) error = %v", err)
	}

	if len(surface.scrolls) != 2 {
		t.Fatalf("got %d scrolls, want 2", len(surface.scrolls))
	}

	// Hand up pulls later content into view: positive delta.
	up := surface.scrolls[0]
	if up.delta != DefaultScrollStep {
		t.Errorf("swipe_up delta = %d, want %d", up.delta, DefaultScrollStep)
	}
	if up.container != DefaultScrollContainer {
		t.Errorf("swipe_up container = %q, want %q", up.container, DefaultScrollContainer)
	}
	if !up.smooth {
		t.Error("swipe_up should scroll smoothly")
	}

	down := surface.scrolls[1]
	if down.delta != -DefaultScrollStep {
		t.Errorf("swipe_down delta = %d, want %d", down.delta, -DefaultScrollStep)
	}
}

func TestDispatcher_SuppressedOnScanScreen(t *testing.T) {
	surface := &fakeSurface{}
	d := newTestDispatcher(t, surface, true)
	d.SetRoute(RouteScan)

	if err := d.DispatchSwipe(gesture.SwipeUp); err != nil {
		t.Fatalf("DispatchSwipe() error = %v", err)
	}
	if err := d.DispatchTap(160, 120); err != nil {
		t.Fatalf("DispatchTap() error = %v", err)
	}

	if len(surface.navigated)+len(surface.scrolls)+len(surface.clicks) != 0 {
		t.Error("nothing should reach the surface while the scan screen is active")
	}
}

func TestDispatcher_TapMapping(t *testing.T) {
	surface := &fakeSurface{}
	d := newTestDispatcher(t, surface, true)
	d.SetRoute(RouteTasks)

	// Mirrored: frame x=80 of 320 is fx 0.25, un-mirrored to 0.75.
	if err := d.DispatchTap(80, 120); err != nil {
		t.Fatalf("DispatchTap() error = %v", err)
	}

	if len(surface.clicks) != 1 {
		t.Fatalf("got %d clicks, want 1", len(surface.clicks))
	}
	click := surface.clicks[0]
	if click.x != 292 {
		t.Errorf("click x = %d, want 292", click.x)
	}
	if click.y != 422 {
		t.Errorf("click y = %d, want 422", click.y)
	}
}

func TestDispatcher_TapMappingUnmirrored(t *testing.T) {
	surface := &fakeSurface{}
	d := newTestDispatcher(t, surface, false)
	d.SetRoute(RouteTasks)

	if err := d.DispatchTap(80, 120); err != nil {
		t.Fatalf("DispatchTap() error = %v", err)
	}

	click := surface.clicks[0]
	if click.x != 97 {
		t.Errorf("click x = %d, want 97", click.x)
	}
}

func TestDispatcher_TapClamped(t *testing.T) {
	surface := &fakeSurface{}
	d := newTestDispatcher(t, surface, false)
	d.SetRoute(RouteTasks)

	if err := d.DispatchTap(320, 240); err != nil {
		t.Fatalf("DispatchTap() error = %v", err)
	}

	click := surface.clicks[0]
	if click.x != 389 || click.y != 843 {
		t.Errorf("click = (%d, %d), want clamped to (389, 843)", click.x, click.y)
	}
}

func TestDispatcher_SetViewport(t *testing.T) {
	surface := &fakeSurface{}
	d := newTestDispatcher(t, surface, false)
	d.SetRoute(RouteTasks)

	d.SetViewport(Viewport{Width: 800, Height: 600})
	if err := d.DispatchTap(160, 120); err != nil {
		t.Fatalf("DispatchTap() error = %v", err)
	}

	click := surface.clicks[0]
	if click.x != 400 || click.y != 300 {
		t.Errorf("click = (%d, %d), want (400, 300)", click.x, click.y)
	}

	// Degenerate sizes are ignored.
	d.SetViewport(Viewport{Width: 0, Height: 600})
	if got := d.Viewport(); got.Width != 800 {
		t.Errorf("Viewport().Width = %d, want 800", got.Width)
	}
}

func TestDispatcher_SurfaceErrors(t *testing.T) {
	boom := errors.New("bridge down")
	surface := &fakeSurface{err: boom}
	d := newTestDispatcher(t, surface, true)
	d.SetRoute(RouteHome)

	if err := d.DispatchSwipe(gesture.SwipeRight); !errors.Is(err, boom) {
		t.Errorf("DispatchSwipe() error = %v, want wrapped %v", err, boom)
	}

	// A failed navigation must not move the tracked route.
	if got := d.Route(); got != RouteHome {
		t.Errorf("Route() after failed navigate = %q, want %q", got, RouteHome)
	}

	if err := d.DispatchTap(10, 10); !errors.Is(err, boom) {
		t.Errorf("DispatchTap() error = %v, want wrapped %v", err, boom)
	}
}

func TestDispatcher_RejectsNonSwipe(t *testing.T) {
	surface := &fakeSurface{}
	d := newTestDispatcher(t, surface, true)

	if err := d.DispatchSwipe(gesture.Tap); err == nil {
		t.Error("DispatchSwipe(Tap) should be an error")
	}
	if err := d.DispatchSwipe(gesture.None); err == nil {
		t.Error("DispatchSwipe(None) should be an error")
	}
}

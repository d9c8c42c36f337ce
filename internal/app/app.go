// Package app wires the gesture engine to its policy: the persisted
// enable toggle, the scan-screen suspension rule, gesture event
// recording and the tick loop that drives the pipeline.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/airnav/internal/engine"
	"github.com/ayusman/airnav/internal/gesture"
	"github.com/ayusman/airnav/internal/nav"
	"github.com/ayusman/airnav/internal/store"
)

// GestureListener is notified after every dispatched gesture, outside
// any lock. route is the screen the gesture happened on.
type GestureListener func(kind gesture.Kind, route nav.Route, at int64)

// Config holds the collaborators the app orchestrates.
type Config struct {
	Store      *store.Store
	Engine     *engine.Engine
	Dispatcher *nav.Dispatcher
}

// Status combines the engine snapshot with the app-level toggle.
type Status struct {
	engine.Status
	Enabled bool `json:"enabled"`
}

// App owns the engine lifecycle. The engine runs only while the
// persisted toggle is on and the UI is not showing the scan screen.
type App struct {
	config     Config
	store      *store.Store
	engine     *engine.Engine
	dispatcher *nav.Dispatcher

	mu        sync.RWMutex
	enabled   bool
	route     nav.Route
	stopCh    chan struct{}
	listeners []GestureListener
}

// New creates the app, restores the persisted toggle and threshold
// overrides, and hooks gesture recording into the engine.
func New(config Config) (*App, error) {
	if config.Store == nil || config.Engine == nil || config.Dispatcher == nil {
		return nil, fmt.Errorf("app: store, engine and dispatcher are all required")
	}

	a := &App{
		config:     config,
		store:      config.Store,
		engine:     config.Engine,
		dispatcher: config.Dispatcher,
		route:      nav.RouteHome,
	}

	settings := a.store.Settings()
	a.enabled = settings.GetBool(store.SettingEngineEnabled, false)

	// Stored overrides; zero means none and the setters ignore it.
	a.engine.SetLumaThreshold(settings.GetFloat(store.SettingLumaThreshold, 0))
	a.engine.SetMinChanged(settings.GetInt(store.SettingMinChanged, 0))

	a.engine.RegisterGestureCallback(a.handleGesture)

	return a, nil
}

// Start launches the tick loop and, if the toggle allows it, the
// engine. A failed engine start is logged, not fatal; the status
// snapshot carries the camera state and the user can retry via the
// toggle.
func (a *App) Start() error {
	a.mu.Lock()
	if a.stopCh != nil {
		a.mu.Unlock()
		return nil
	}
	a.stopCh = make(chan struct{})
	stopCh := a.stopCh
	enabled := a.enabled
	route := a.route
	a.mu.Unlock()

	if enabled && route != nav.RouteScan {
		if err := a.engine.Start(); err != nil {
			log.Printf("app: engine start: %v", err)
		}
	}

	go a.runLoop(stopCh)

	log.Println("app: started")
	return nil
}

// Stop halts the tick loop and the engine.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	a.engine.Stop()
	log.Println("app: stopped")
}

// SetEnabled flips the user toggle, persists it, and starts or stops
// the engine accordingly. Enabling while the scan screen is active
// only records the wish; the engine starts once the scanner yields.
func (a *App) SetEnabled(enabled bool) error {
	a.mu.Lock()
	a.enabled = enabled
	route := a.route
	a.mu.Unlock()

	if err := a.store.Settings().SetBool(store.SettingEngineEnabled, enabled); err != nil {
		log.Printf("app: persist toggle: %v", err)
	}

	if !enabled {
		a.engine.Stop()
		return nil
	}
	if route == nav.RouteScan {
		return nil
	}
	if err := a.engine.Start(); err != nil {
		return fmt.Errorf("enable engine: %w", err)
	}
	return nil
}

// IsEnabled returns the user toggle.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetRoute records the screen the UI reports and applies the
// scan-screen rule: on /scan the engine is stopped outright, camera
// released; anywhere else it resumes if the toggle is on.
func (a *App) SetRoute(raw string) {
	route := nav.NormalizeRoute(raw)

	a.mu.Lock()
	a.route = route
	enabled := a.enabled
	a.mu.Unlock()

	a.dispatcher.SetRoute(route)

	if route == nav.RouteScan {
		if a.engine.Running() {
			log.Println("app: scan screen active, suspending engine")
			a.engine.Stop()
		}
		return
	}

	if enabled && !a.engine.Running() {
		if err := a.engine.Start(); err != nil {
			log.Printf("app: resume engine: %v", err)
		}
	}
}

// Route returns the screen the app believes is active.
func (a *App) Route() nav.Route {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.route
}

// SetViewport forwards the UI's reported size to the dispatcher.
func (a *App) SetViewport(width, height int) {
	a.dispatcher.SetViewport(nav.Viewport{Width: width, Height: height})
}

// AddGestureListener registers a listener for dispatched gestures.
// Must be called before Start.
func (a *App) AddGestureListener(fn GestureListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// Status returns the combined engine and app snapshot.
func (a *App) Status() Status {
	return Status{
		Status:  a.engine.Status(),
		Enabled: a.IsEnabled(),
	}
}

// Engine returns the engine instance.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Store returns the backing store.
func (a *App) Store() *store.Store {
	return a.store
}

// Dispatcher returns the action dispatcher.
func (a *App) Dispatcher() *nav.Dispatcher {
	return a.dispatcher
}

// handleGesture records the event and fans it out to listeners. It
// runs on the tick goroutine after dispatch, outside the engine lock.
func (a *App) handleGesture(kind gesture.Kind, x, y float64, at int64) {
	a.mu.RLock()
	route := a.route
	listeners := make([]GestureListener, len(a.listeners))
	copy(listeners, a.listeners)
	a.mu.RUnlock()

	event := &store.GestureEvent{
		ID:         uuid.NewString(),
		Kind:       string(kind),
		Route:      string(route),
		X:          x,
		Y:          y,
		DetectedAt: time.UnixMilli(at),
	}
	if err := a.store.Events().Create(event); err != nil {
		log.Printf("app: record gesture: %v", err)
	}

	for _, fn := range listeners {
		fn(kind, route, at)
	}
}

// Package nav maps confirmed gestures onto navigation effects in the
// hosting UI: route changes, scrolling and synthetic clicks.
package nav

import (
	"fmt"
	"strings"
)

// Route identifies a screen in the hosting app.
type Route string

// The screens the engine navigates between.
const (
	RouteHome      Route = "/home"
	RouteTasks     Route = "/tasks"
	RouteDocuments Route = "/documents"
	RouteDocVault  Route = "/docvault"
	RouteProfile   Route = "/profile"
	// RouteScan is the camera capture screen. The engine is suspended
	// entirely while it is active; the scanner needs the device.
	RouteScan Route = "/scan"
)

// Neighbors names the routes a horizontal swipe reaches from a screen.
// An empty route means that direction is terminal.
type Neighbors struct {
	Left  Route `json:"left,omitempty"`
	Right Route `json:"right,omitempty"`
}

// Map is the read-only swipe adjacency table. Screens missing from the
// map have no swipe targets at all.
type Map map[Route]Neighbors

// DefaultMap returns the adjacency table for the reminder app:
// home, tasks, documents and the document vault form a left-to-right
// chain, the profile screen is terminal in both directions, and the
// scan screen is absent because the engine never runs there.
func DefaultMap() Map {
	return Map{
		RouteHome:      {Right: RouteTasks},
		RouteTasks:     {Left: RouteHome, Right: RouteDocuments},
		RouteDocuments: {Left: RouteTasks, Right: RouteDocVault},
		RouteDocVault:  {Left: RouteDocuments},
		RouteProfile:   {},
	}
}

// Validate checks that every neighbor target is itself a screen in the
// map, so a swipe can never navigate to a route nothing handles.
func (m Map) Validate() error {
	for route, n := range m {
		for _, target := range []Route{n.Left, n.Right} {
			if target == "" {
				continue
			}
			if _, ok := m[target]; !ok {
				return fmt.Errorf("route %s: swipe target %s is not in the map", route, target)
			}
		}
	}
	return nil
}

// Neighbors returns the swipe targets for r.
func (m Map) Neighbors(r Route) (Neighbors, bool) {
	n, ok := m[r]
	return n, ok
}

// NormalizeRoute reduces a raw location string to its canonical form:
// lowercased path with query, fragment and trailing slashes stripped.
func NormalizeRoute(raw string) Route {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ToLower(strings.TrimSpace(raw))
	for len(raw) > 1 && strings.HasSuffix(raw, "/") {
		raw = raw[:len(raw)-1]
	}
	if raw == "" {
		return Route("/")
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return Route(raw)
}

package nav

// Viewport is the hosting UI's visible size in CSS pixels, reported
// over the bridge so tap coordinates can be mapped onto it.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Surface is where dispatched gestures land. In production it is the
// hosting UI behind the websocket bridge; tests use an in-memory fake.
type Surface interface {
	// Navigate moves the UI to the given screen.
	Navigate(route Route) error

	// ScrollBy scrolls the container by delta CSS pixels, positive
	// toward the bottom of the page. An empty containerID means the
	// UI's main scroll area.
	ScrollBy(containerID string, delta int, smooth bool) error

	// ClickAt activates whatever sits under the viewport coordinate.
	// An empty spot is fine; the UI ignores the click.
	ClickAt(x, y int) error
}

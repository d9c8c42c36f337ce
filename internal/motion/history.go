package motion

import "time"

// DefaultWindow is the rolling window the history retains. Long enough
// to span a deliberate swipe, short enough that two gestures never
// share a window.
const DefaultWindow = 450 * time.Millisecond

// History is the rolling window of recent motion samples, ordered by
// timestamp. Entries are only ever appended or dropped, never edited
// in place.
type History struct {
	window  int64 // milliseconds
	samples []Sample
}

// NewHistory creates a history with the given window. Non-positive
// windows fall back to DefaultWindow.
func NewHistory(window time.Duration) *History {
	if window <= 0 {
		window = DefaultWindow
	}
	return &History{window: window.Milliseconds()}
}

// Append adds s and drops every entry older than the window relative
// to s.Timestamp.
func (h *History) Append(s Sample) {
	cutoff := s.Timestamp - h.window

	drop := 0
	for drop < len(h.samples) && h.samples[drop].Timestamp < cutoff {
		drop++
	}
	if drop > 0 {
		h.samples = append(h.samples[:0], h.samples[drop:]...)
	}

	h.samples = append(h.samples, s)
}

// Samples returns the window contents, oldest first. The slice is
// owned by the history and is only valid until the next Append or
// Clear.
func (h *History) Samples() []Sample {
	return h.samples
}

// Len returns the number of samples currently retained.
func (h *History) Len() int {
	return len(h.samples)
}

// First returns the oldest retained sample.
func (h *History) First() (Sample, bool) {
	if len(h.samples) == 0 {
		return Sample{}, false
	}
	return h.samples[0], true
}

// Last returns the newest retained sample.
func (h *History) Last() (Sample, bool) {
	if len(h.samples) == 0 {
		return Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Clear empties the window.
func (h *History) Clear() {
	h.samples = h.samples[:0]
}

// Package gesture classifies motion history into discrete gestures and
// guards them behind confirmation counts and cooldowns.
package gesture

// Kind represents a recognized gesture.
type Kind string

const (
	// None means the current window does not look like any gesture.
	None Kind = "none"
	// SwipeLeft is a horizontal hand move to the user's left.
	SwipeLeft Kind = "swipe_left"
	// SwipeRight is a horizontal hand move to the user's right.
	SwipeRight Kind = "swipe_right"
	// SwipeUp is a vertical hand move away from the floor.
	SwipeUp Kind = "swipe_up"
	// SwipeDown is a vertical hand move toward the floor.
	SwipeDown Kind = "swipe_down"
	// Tap is a hand held stationary, dispatched as a click.
	Tap Kind = "tap"
)

// IsSwipe returns true for the four directional swipe kinds.
func (k Kind) IsSwipe() bool {
	switch k {
	case SwipeLeft, SwipeRight, SwipeUp, SwipeDown:
		return true
	}
	return false
}

// Valid returns true for every kind this package can emit.
func (k Kind) Valid() bool {
	return k == None || k == Tap || k.IsSwipe()
}

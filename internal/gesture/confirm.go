package gesture

import "time"

// Confirmation defaults
const (
	// DefaultConfirmFrames is how many consecutive motion ticks must
	// agree before a swipe commits.
	DefaultConfirmFrames = 3
	// DefaultCooldown follows every committed swipe; nothing is even
	// classified until it expires.
	DefaultCooldown = 1000 * time.Millisecond
)

// Confirmer debounces classifier output. A swipe commits only after
// the same kind arrives on enough consecutive motion ticks; every
// commit opens a cooldown window during which the caller must not
// feed the confirmer at all.
type Confirmer struct {
	required   int
	cooldown   int64 // milliseconds
	pending    Kind
	count      int
	lastCommit int64 // Unix milliseconds, 0 = never
}

// NewConfirmer creates a confirmer. Non-positive arguments fall back
// to the defaults.
func NewConfirmer(required int, cooldown time.Duration) *Confirmer {
	if required <= 0 {
		required = DefaultConfirmFrames
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Confirmer{
		required: required,
		cooldown: cooldown.Milliseconds(),
	}
}

// InCooldown reports whether now falls inside the cooldown window
// opened by the last commit. Callers check this before classifying;
// the gate sits in front of the whole confirmation path, not just the
// commit.
func (c *Confirmer) InCooldown(now int64) bool {
	return c.lastCommit != 0 && now-c.lastCommit < c.cooldown
}

// Observe feeds one classifier result and returns the committed kind,
// or None while confirmation is still accumulating.
//
// None resets the pending state. A kind different from the pending one
// restarts the count at 1; agreement counts up until the requirement
// is met, which commits, clears the pending state and opens the
// cooldown window at now.
func (c *Confirmer) Observe(kind Kind, now int64) Kind {
	if !kind.IsSwipe() {
		c.pending = None
		c.count = 0
		return None
	}

	if kind == c.pending {
		c.count++
	} else {
		c.pending = kind
		c.count = 1
	}

	if c.count < c.required {
		return None
	}

	c.pending = None
	c.count = 0
	c.lastCommit = now
	return kind
}

// Pending returns the kind currently accumulating confirmations and
// how many ticks have agreed on it.
func (c *Confirmer) Pending() (Kind, int) {
	if c.pending == None || c.pending == "" {
		return None, 0
	}
	return c.pending, c.count
}

// LastCommit returns the Unix-millisecond time of the last committed
// swipe, or 0.
func (c *Confirmer) LastCommit() int64 {
	return c.lastCommit
}

// Reset clears the pending state and the cooldown anchor.
func (c *Confirmer) Reset() {
	c.pending = None
	c.count = 0
	c.lastCommit = 0
}

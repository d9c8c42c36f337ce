package gesture

import (
	"testing"
	"time"

	"github.com/ayusman/airnav/internal/motion"
)

func stillSample(x, y float64, ts int64) motion.Sample {
	return motion.Sample{X: x, Y: y, Timestamp: ts}
}

func TestTapDetector_FiresAfterStableRun(t *testing.T) {
	d := NewTapDetector(10, 3, 500*time.Millisecond)

	// First sample anchors the reference.
	if _, _, fired := d.Observe(stillSample(100, 100, 1000)); fired {
		t.Fatal("anchor sample should not fire")
	}

	if _, _, fired := d.Observe(stillSample(103, 101, 1033)); fired {
		t.Fatal("stable count 1 should not fire")
	}
	if _, _, fired := d.Observe(stillSample(98, 99, 1066)); fired {
		t.Fatal("stable count 2 should not fire")
	}

	x, y, fired := d.Observe(stillSample(104, 102, 1099))
	if !fired {
		t.Fatal("stable count 3 should fire")
	}

	// The tap lands at the current centroid, not the anchor.
	if x != 104 || y != 102 {
		t.Errorf("tap at (%.0f, %.0f), want (104, 102)", x, y)
	}
	if got := d.LastTap(); got != 1099 {
		t.Errorf("LastTap() = %d, want 1099", got)
	}
	if got := d.StableCount(); got != 0 {
		t.Errorf("StableCount() after fire = %d, want 0", got)
	}
}

func TestTapDetector_WanderResets(t *testing.T) {
	d := NewTapDetector(10, 3, 500*time.Millisecond)

	d.Observe(stillSample(100, 100, 1000))
	d.Observe(stillSample(102, 100, 1033))
	d.Observe(stillSample(101, 103, 1066))

	// A jump beyond the radius re-anchors and clears the run.
	if _, _, fired := d.Observe(stillSample(140, 100, 1099)); fired {
		t.Fatal("wandering sample should not fire")
	}
	if got := d.StableCount(); got != 0 {
		t.Fatalf("StableCount() after wander = %d, want 0", got)
	}

	// The run restarts around the new reference.
	d.Observe(stillSample(142, 101, 1133))
	d.Observe(stillSample(139, 99, 1166))
	if _, _, fired := d.Observe(stillSample(141, 100, 1199)); !fired {
		t.Error("fresh stable run around the new reference should fire")
	}
}

func TestTapDetector_Cooldown(t *testing.T) {
	d := NewTapDetector(10, 2, 500*time.Millisecond)

	d.Observe(stillSample(100, 100, 1000))
	d.Observe(stillSample(100, 100, 1033))
	if _, _, fired := d.Observe(stillSample(100, 100, 1066)); !fired {
		t.Fatal("expected tap to fire")
	}

	// Held still inside the cooldown: nothing accumulates.
	for ts := int64(1100); ts < 1566; ts += 100 {
		if _, _, fired := d.Observe(stillSample(100, 100, ts)); fired {
			t.Fatalf("tap fired during cooldown at %d", ts)
		}
		if got := d.StableCount(); got != 0 {
			t.Fatalf("StableCount() during cooldown = %d, want 0", got)
		}
	}

	// After the cooldown a full stable run is needed again.
	if _, _, fired := d.Observe(stillSample(100, 100, 1600)); fired {
		t.Fatal("first post-cooldown sample should only count, not fire")
	}
	if _, _, fired := d.Observe(stillSample(100, 100, 1633)); !fired {
		t.Error("full fresh run after cooldown should fire")
	}
}

func TestTapDetector_Reset(t *testing.T) {
	d := NewTapDetector(10, 2, 500*time.Millisecond)

	d.Observe(stillSample(100, 100, 1000))
	d.Observe(stillSample(100, 100, 1033))
	d.Observe(stillSample(100, 100, 1066))
	if d.LastTap() == 0 {
		t.Fatal("expected a fired tap before Reset")
	}

	d.Reset()
	if got := d.LastTap(); got != 0 {
		t.Errorf("LastTap() after Reset = %d, want 0", got)
	}
	if got := d.StableCount(); got != 0 {
		t.Errorf("StableCount() after Reset = %d, want 0", got)
	}
}

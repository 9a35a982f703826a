package schedule

import (
	"testing"
	"time"

	"tableflip.dev/mercury/pkg/timeutil"
)

func mustParse(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := timeutil.ParseDateKey(key)
	if err != nil {
		t.Fatalf("parse %s: %v", key, err)
	}
	return d
}

func fixedClock(t *testing.T, key string) func() time.Time {
	d := mustParse(t, key)
	return func() time.Time { return d }
}

func TestNavigatorTwoWeeksForward(t *testing.T) {
	n := NewNavigator()
	n.SetNow(fixedClock(t, "2025-06-01")) // a Sunday

	n.NextWeek()
	w := n.NextWeek()
	if got := timeutil.DateKey(w.Start); got != "2025-06-15" {
		t.Fatalf("expected 2025-06-15 after two NextWeek calls, got %s", got)
	}
}

func TestJumpToTodayFromElsewhere(t *testing.T) {
	n := NewNavigator()
	n.SetNow(fixedClock(t, "2025-06-20")) // a Friday

	n.PreviousWeek()
	n.PreviousWeek()
	w := n.JumpToToday()
	if got := timeutil.DateKey(w.Start); got != "2025-06-15" {
		t.Fatalf("expected week of 2025-06-15, got %s", got)
	}
}

func TestGenerationDiscardsStaleFetches(t *testing.T) {
	n := NewNavigator()
	n.SetNow(fixedClock(t, "2025-06-01"))

	gen := n.Generation()
	if !n.Current(gen) {
		t.Fatal("current generation should be current")
	}
	n.NextWeek()
	if n.Current(gen) {
		t.Fatal("a fetch issued before NextWeek must be stale afterwards")
	}
	if !n.Current(n.Generation()) {
		t.Fatal("latest generation should be current")
	}
}

func TestEveryTransitionBumpsGeneration(t *testing.T) {
	n := NewNavigator()
	n.SetNow(fixedClock(t, "2025-06-01"))

	seen := map[uint64]bool{n.Generation(): true}
	n.PreviousWeek()
	seen[n.Generation()] = true
	n.NextWeek()
	seen[n.Generation()] = true
	n.JumpToToday()
	seen[n.Generation()] = true
	if len(seen) != 4 {
		t.Fatalf("expected 4 distinct generations, got %d", len(seen))
	}
}

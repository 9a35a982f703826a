package timeutil

import (
	"testing"
	"time"
)

func TestStartOfWeekFallsOnSunday(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   time.Time
		want string
	}{
		{"sunday maps to itself", time.Date(2025, time.June, 1, 15, 30, 0, 0, time.Local), "2025-06-01"},
		{"mid week", time.Date(2025, time.June, 4, 9, 0, 0, 0, time.Local), "2025-06-01"},
		{"saturday", time.Date(2025, time.June, 7, 23, 59, 0, 0, time.Local), "2025-06-01"},
		{"month boundary", time.Date(2025, time.July, 2, 0, 0, 0, 0, time.Local), "2025-06-29"},
		{"year boundary", time.Date(2026, time.January, 1, 12, 0, 0, 0, time.Local), "2025-12-28"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := StartOfWeek(tc.in)
			if got.Weekday() != time.Sunday {
				t.Fatalf("expected Sunday, got %s", got.Weekday())
			}
			if key := DateKey(got); key != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, key)
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Fatalf("time of day not zeroed: %v", got)
			}
			if diff := tc.in.Sub(got); diff < 0 || diff >= 7*24*time.Hour+time.Hour {
				t.Fatalf("start not within the week of input: %v", diff)
			}
		})
	}
}

func TestDaysInWeekReturnsSevenConsecutiveDays(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)
	days := DaysInWeek(start)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for i, d := range days {
		want := start.AddDate(0, 0, i)
		if !d.Equal(want) {
			t.Fatalf("day %d: expected %v, got %v", i, want, d)
		}
	}
	if days[0].Weekday() != time.Sunday || days[6].Weekday() != time.Saturday {
		t.Fatalf("week not Sunday..Saturday: %s..%s", days[0].Weekday(), days[6].Weekday())
	}
}

func TestDateKeyUsesLocalCalendarDay(t *testing.T) {
	// 23:30 local must key to the local day even when the UTC day differs.
	d := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.FixedZone("UTC+10", 10*3600))
	if key := DateKey(d); key != "2025-06-10" {
		t.Fatalf("expected 2025-06-10, got %s", key)
	}
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	d, err := ParseDateKey("2025-06-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DateKey(d) != "2025-06-04" {
		t.Fatalf("round trip failed: %s", DateKey(d))
	}
}

func TestWindowBounds(t *testing.T) {
	w := WindowFor(time.Date(2025, time.June, 20, 10, 0, 0, 0, time.Local))
	if DateKey(w.Start) != "2025-06-15" {
		t.Fatalf("expected window start 2025-06-15, got %s", DateKey(w.Start))
	}
	if DateKey(w.End()) != "2025-06-21" {
		t.Fatalf("expected window end 2025-06-21, got %s", DateKey(w.End()))
	}
	eod := w.EndOfDay()
	if eod.Hour() != 23 || eod.Minute() != 59 || eod.Second() != 59 {
		t.Fatalf("unexpected end-of-day boundary: %v", eod)
	}
	if !w.Contains(time.Date(2025, time.June, 21, 23, 0, 0, 0, time.Local)) {
		t.Fatal("window should contain its last day")
	}
	if w.Contains(time.Date(2025, time.June, 22, 0, 0, 0, 0, time.Local)) {
		t.Fatal("window should not contain the following Sunday")
	}
	if DateKey(w.Previous().Start) != "2025-06-08" || DateKey(w.Next().Start) != "2025-06-22" {
		t.Fatalf("previous/next off by: %s %s", DateKey(w.Previous().Start), DateKey(w.Next().Start))
	}
}

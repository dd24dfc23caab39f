package domain

import (
	"testing"
	"time"
)

func TestDutyStatusValid(t *testing.T) {
	for _, s := range []DutyStatus{StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if DutyStatus("napping").Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
}

func TestDutyStatusOnDuty(t *testing.T) {
	if !StatusDriving.OnDuty() || !StatusOnDutyNotDriving.OnDuty() {
		t.Fatalf("driving and on-duty-not-driving must count as on duty")
	}
	if StatusOffDuty.OnDuty() || StatusSleeperBerth.OnDuty() {
		t.Fatalf("off duty and sleeper berth must not count as on duty")
	}
}

func TestSegmentEndTime(t *testing.T) {
	start := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)
	seg := Segment{StartTime: start, DurationHours: 1.5}

	want := time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC)
	if got := seg.EndTime(); !got.Equal(want) {
		t.Fatalf("expected end time %v, got %v", want, got)
	}
}

func TestSplitComplement(t *testing.T) {
	cases := []struct {
		hours float64
		want  float64
		ok    bool
	}{
		{7, 3, true},
		{3, 7, true},
		{8, 2, true},
		{2, 8, true},
		{5, 0, false},
		{10, 0, false},
		{0, 0, false},
	}
	for _, c := range cases {
		got, ok := SplitComplement(c.hours)
		if ok != c.ok || got != c.want {
			t.Fatalf("SplitComplement(%v) = (%v, %v), want (%v, %v)", c.hours, got, ok, c.want, c.ok)
		}
	}
}

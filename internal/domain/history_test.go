package domain

import "testing"

func TestWeeklyModeValid(t *testing.T) {
	if !Mode60x7.Valid() || !Mode70x8.Valid() {
		t.Fatalf("expected both standard modes to be valid")
	}
	if WeeklyMode("65/7").Valid() {
		t.Fatalf("expected unknown mode to be invalid")
	}
}

func TestWeeklyModeWindowAndCap(t *testing.T) {
	if Mode60x7.WindowDays() != 7 || Mode60x7.CapHours() != 60 {
		t.Fatalf("60/7 mode: got window=%d cap=%v", Mode60x7.WindowDays(), Mode60x7.CapHours())
	}
	if Mode70x8.WindowDays() != 8 || Mode70x8.CapHours() != 70 {
		t.Fatalf("70/8 mode: got window=%d cap=%v", Mode70x8.WindowDays(), Mode70x8.CapHours())
	}
}

func TestWeeklyHoursRemaining(t *testing.T) {
	state := DriverState{WeeklyMode: Mode70x8, WeeklyHoursUsed: 61.5}
	if got := state.WeeklyHoursRemaining(); got != 8.5 {
		t.Fatalf("expected 8.5 hours remaining, got %v", got)
	}

	state.WeeklyHoursUsed = 75
	if got := state.WeeklyHoursRemaining(); got != 0 {
		t.Fatalf("expected remaining floored at zero, got %v", got)
	}
}

package services

import (
	"time"

	"eld-trip-service/internal/domain"
)

// Tolerance for accumulated floating-point drift in hour arithmetic.
const clockEpsilon = 1e-9

// AdvanceDriving accrues driving time against every clock. It fails with
// LimitExceeded if the driving or duty-window clock would pass its cap; the
// synthesizer must schedule a rest before that can happen.
//
// The duty-window clock is skipped while a split-sleeper first half is
// pending (paused, not reset).
func AdvanceDriving(state *domain.DriverState, lim EffectiveLimits, hours, miles float64, at time.Time) error {
	if state.DrivingClock+hours > lim.DrivingHours+clockEpsilon {
		return &domain.LimitExceededError{Clock: "driving", Limit: lim.DrivingHours, At: at}
	}
	paused := state.PendingSplit != nil
	if !paused && state.DutyWindowClock+hours > lim.DutyWindowHours+clockEpsilon {
		return &domain.LimitExceededError{Clock: "duty_window", Limit: lim.DutyWindowHours, At: at}
	}

	state.DrivingClock += hours
	state.SinceBreakDriving += hours
	if !paused {
		state.DutyWindowClock += hours
	}
	state.WeeklyHoursUsed += hours
	return nil
}

// AdvanceDuty accrues non-driving on-duty time. Driving clocks are untouched.
func AdvanceDuty(state *domain.DriverState, lim EffectiveLimits, hours float64, at time.Time) error {
	paused := state.PendingSplit != nil
	if !paused && state.DutyWindowClock+hours > lim.DutyWindowHours+clockEpsilon {
		return &domain.LimitExceededError{Clock: "duty_window", Limit: lim.DutyWindowHours, At: at}
	}

	if !paused {
		state.DutyWindowClock += hours
	}
	state.WeeklyHoursUsed += hours
	return nil
}

// AdvanceOff accrues off-duty or sleeper time. Nothing is accumulated; a
// span of at least the full-rest threshold resets the driving, break, and
// duty-window clocks and opens a new calculation period.
func AdvanceOff(state *domain.DriverState, lim EffectiveLimits, hours float64) {
	if hours+clockEpsilon >= lim.FullRestHours {
		resetDutyClocks(state)
	}
}

// TakeBreak records a 30-minute rest break. It only restarts the 8-hour
// break clock; it is not a qualifying rest and leaves the driving and
// duty-window clocks alone.
func TakeBreak(state *domain.DriverState) {
	state.SinceBreakDriving = 0
}

// CompleteSplitPair applies the combined effect of a finished split-sleeper
// pair: both halves together count as one qualifying rest.
func CompleteSplitPair(state *domain.DriverState) {
	state.PendingSplit = nil
	resetDutyClocks(state)
}

// Apply34HrRestart resets the rolling weekly accumulator. Callable only once
// a prior off-duty span of at least 34 consecutive hours is confirmed; a 34h
// span also satisfies the full-rest threshold, so the duty clocks reset too.
func Apply34HrRestart(state *domain.DriverState) {
	state.WeeklyHoursUsed = 0
	state.RestartApplied = true
	resetDutyClocks(state)
}

func resetDutyClocks(state *domain.DriverState) {
	state.DrivingClock = 0
	state.SinceBreakDriving = 0
	state.DutyWindowClock = 0
}

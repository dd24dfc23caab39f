package domain

// ExceptionSet holds the regulatory options enabled for one synthesis run.
// Flags are composable except where the rules forbid it: only one of
// ShortHaul16Hr and AdverseConditions may extend the duty window.
type ExceptionSet struct {
	SplitSleeper      bool `json:"split_sleeper"`
	AdverseConditions bool `json:"adverse_conditions"`
	AirMile           bool `json:"air_mile"`
	ShortHaul16Hr     bool `json:"short_haul_16hr"`
}

// DriverState is the mutable clock state threaded through one synthesis run.
// It is created fresh per run; runs never share state.
type DriverState struct {
	// DrivingClock is hours driven since the last qualifying rest (11h cap).
	DrivingClock float64 `json:"driving_clock"`
	// DutyWindowClock is on-duty hours since coming on duty (14h cap).
	DutyWindowClock float64 `json:"duty_window_clock"`
	// SinceBreakDriving is driving hours since the last 30-minute break.
	SinceBreakDriving float64 `json:"since_break_driving"`
	// WeeklyHoursUsed is the rolling accumulator under WeeklyMode.
	WeeklyHoursUsed float64 `json:"weekly_hours_used"`

	WeeklyMode WeeklyMode   `json:"weekly_mode"`
	Exceptions ExceptionSet `json:"active_exceptions"`

	// ShortHaulUsedInPrior7Days is an eligibility fact supplied by the
	// caller; the engine enforces the once-per-7-days cap from it but never
	// re-derives it.
	ShortHaulUsedInPrior7Days bool `json:"short_haul_used_in_prior_7_days,omitempty"`

	// PendingSplit references an unmatched first-half sleeper segment
	// awaiting its pair. While set, the driving and duty-window clocks are
	// paused, not reset.
	PendingSplit *Segment `json:"pending_split_segment,omitempty"`

	// RestartApplied records that a 34-hour restart was recognized during
	// the run.
	RestartApplied bool `json:"restart_applied,omitempty"`
}

// WeeklyHoursRemaining returns hours left under the rolling cap, floored at
// zero.
func (d *DriverState) WeeklyHoursRemaining() float64 {
	rem := d.WeeklyMode.CapHours() - d.WeeklyHoursUsed
	if rem < 0 {
		return 0
	}
	return rem
}

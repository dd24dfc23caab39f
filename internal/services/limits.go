package services

import (
	"eld-trip-service/internal/domain"
)

// Operational constants shared by the clock model and synthesizer. The
// driving and duty-window caps live in EffectiveLimits because exceptions
// can move them; these do not move.
const (
	AverageSpeedMPH      = 60.0
	FuelingIntervalMiles = 1000.0
	FuelingHours         = 0.5
	PickupDropoffHours   = 1.0
	InspectionHours      = 0.25
	BreakHours           = 0.5
	RestartHours         = 34.0
)

// EffectiveLimits are the clock thresholds in force for a synthesis run,
// resolved once from the active exception set. The clock model consumes
// these as parameters and stays exception-agnostic.
type EffectiveLimits struct {
	DrivingHours    float64
	DutyWindowHours float64
	BreakAfterHours float64
	FullRestHours   float64

	// AdverseExtended marks limits carrying the adverse-conditions +2h,
	// which applies to the current duty period only.
	AdverseExtended bool
}

// WithoutAdverse returns the limits that apply once the duty period that
// claimed the adverse-conditions extension ends.
func (l EffectiveLimits) WithoutAdverse() EffectiveLimits {
	if !l.AdverseExtended {
		return l
	}
	return EffectiveLimits{
		DrivingHours:    baseDrivingHours,
		DutyWindowHours: baseDutyWindowHours,
		BreakAfterHours: l.BreakAfterHours,
		FullRestHours:   l.FullRestHours,
	}
}

const (
	baseDrivingHours    = 11.0
	baseDutyWindowHours = 14.0
	baseBreakAfterHours = 8.0
	baseFullRestHours   = 10.0
)

// ResolveLimits maps the active exception set to effective thresholds.
//
// Only one of short_haul_16hr and adverse_conditions may extend the duty
// window in a run; requesting both fails rather than silently summing
// extensions. The short-haul once-per-7-days cap is enforced from the
// supplied eligibility fact.
func ResolveLimits(state *domain.DriverState) (EffectiveLimits, error) {
	lim := EffectiveLimits{
		DrivingHours:    baseDrivingHours,
		DutyWindowHours: baseDutyWindowHours,
		BreakAfterHours: baseBreakAfterHours,
		FullRestHours:   baseFullRestHours,
	}

	ex := state.Exceptions
	if ex.ShortHaul16Hr && ex.AdverseConditions {
		return EffectiveLimits{}, domain.ErrConflictingExceptions
	}

	if ex.ShortHaul16Hr {
		if state.ShortHaulUsedInPrior7Days {
			return EffectiveLimits{}, &domain.ValidationError{
				Field:  "active_exceptions.short_haul_16hr",
				Reason: "already used once in the rolling 7-day period",
			}
		}
		lim.DutyWindowHours = 16
	}

	if ex.AdverseConditions {
		// The regulation grants +2h on both clocks, not a doubling.
		lim.DrivingHours = baseDrivingHours + 2
		lim.DutyWindowHours = baseDutyWindowHours + 2
		lim.AdverseExtended = true
	}

	return lim, nil
}

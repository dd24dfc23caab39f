package services

import (
	"fmt"

	"eld-trip-service/internal/domain"
)

// CheckCompliance audits a finished schedule shift by shift against the
// supplied limits. A shift is the on-duty span between qualifying rests.
// The synthesizer never emits a violating schedule; the audit exists so
// stored or externally replayed schedules can be verified with the same
// arithmetic.
func CheckCompliance(segments []domain.Segment, lim EffectiveLimits) domain.ComplianceReport {
	violations := []string{}

	type shift struct {
		driving float64
		onDuty  float64
		open    bool
	}

	shifts := []shift{}
	current := shift{}

	for _, seg := range segments {
		switch seg.Status {
		case domain.StatusDriving, domain.StatusOnDutyNotDriving:
			current.open = true
			current.onDuty += seg.DurationHours
			if seg.Status == domain.StatusDriving {
				current.driving += seg.DurationHours
			}
		case domain.StatusSleeperBerth, domain.StatusOffDuty:
			// A completed split pair closes a shift just as a full rest does.
			qualifying := seg.DurationHours+clockEpsilon >= lim.FullRestHours ||
				(seg.RestBreak == domain.RestSplitSleep && seg.SleeperSegment == 2 && seg.PairedWith != "")
			if qualifying {
				if current.open {
					shifts = append(shifts, current)
				}
				current = shift{}
			}
		}
	}
	if current.open {
		shifts = append(shifts, current)
	}

	for i, s := range shifts {
		if s.driving > lim.DrivingHours+clockEpsilon {
			violations = append(violations, fmt.Sprintf(
				"shift %d: %.1fh driving exceeds the %.0f-hour limit", i+1, s.driving, lim.DrivingHours))
		}
		if s.onDuty > lim.DutyWindowHours+clockEpsilon {
			violations = append(violations, fmt.Sprintf(
				"shift %d: %.1fh on duty exceeds the %.0f-hour window", i+1, s.onDuty, lim.DutyWindowHours))
		}
	}

	return domain.ComplianceReport{
		Compliant:   len(violations) == 0,
		Violations:  violations,
		TotalShifts: len(shifts),
	}
}

// BuildSummary aggregates a finished schedule for list and response views.
func BuildSummary(plan domain.TripPlan, schedule domain.Schedule) domain.TripSummary {
	var driving, onDuty, rest float64
	var fuelStops, restBreaks int

	for _, seg := range schedule.Segments {
		switch seg.Status {
		case domain.StatusDriving:
			driving += seg.DurationHours
			onDuty += seg.DurationHours
		case domain.StatusOnDutyNotDriving:
			onDuty += seg.DurationHours
		default:
			rest += seg.DurationHours
		}

		switch seg.Activity {
		case "Fueling":
			fuelStops++
		case "30-Minute Break":
			restBreaks++
		}
		if seg.RestBreak == domain.RestFull || seg.RestBreak == domain.RestFullRestart {
			restBreaks++
		}
	}

	end := schedule.EndTime()
	return domain.TripSummary{
		StartTime:          plan.StartTime,
		EndTime:            end,
		TotalDurationHours: end.Sub(plan.StartTime).Hours(),
		TotalDrivingHours:  driving,
		TotalOnDutyHours:   onDuty,
		TotalRestHours:     rest,
		FuelStops:          fuelStops,
		RestBreaks:         restBreaks,
	}
}

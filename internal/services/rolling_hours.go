package services

import (
	"fmt"

	"eld-trip-service/internal/domain"
)

// RollingHoursResult reports hours used and remaining under a rolling
// weekly mode.
type RollingHoursResult struct {
	Mode           domain.WeeklyMode         `json:"mode"`
	HoursUsed      float64                   `json:"hours_used"`
	HoursAvailable float64                   `json:"hours_available"`
	DailyBreakdown []domain.DailyHoursRecord `json:"daily_breakdown"`
}

// CalculateRollingHours sums the trailing window of the driver's daily
// history under the 60/7 or 70/8 rule. History is supplied oldest first;
// entries older than the window roll off, and a history shorter than the
// window counts missing days as zero. The input is never mutated.
func CalculateRollingHours(history []domain.DailyHoursRecord, mode domain.WeeklyMode) (RollingHoursResult, error) {
	if !mode.Valid() {
		return RollingHoursResult{}, &domain.ValidationError{
			Field:  "mode",
			Reason: fmt.Sprintf("must be %q or %q, got %q", domain.Mode60x7, domain.Mode70x8, mode),
		}
	}
	for i, rec := range history {
		if rec.OnDutyHours < 0 || rec.OnDutyHours > 24 {
			return RollingHoursResult{}, &domain.ValidationError{
				Field:  fmt.Sprintf("history[%d].on_duty_hours", i),
				Reason: fmt.Sprintf("must be within [0, 24], got %v", rec.OnDutyHours),
			}
		}
	}

	window := mode.WindowDays()
	trailing := history
	if len(trailing) > window {
		trailing = trailing[len(trailing)-window:]
	}

	var used float64
	breakdown := make([]domain.DailyHoursRecord, len(trailing))
	for i, rec := range trailing {
		used += rec.OnDutyHours
		breakdown[i] = rec
	}

	available := mode.CapHours() - used
	if available < 0 {
		available = 0
	}

	return RollingHoursResult{
		Mode:           mode,
		HoursUsed:      used,
		HoursAvailable: available,
		DailyBreakdown: breakdown,
	}, nil
}

package domain

// WeeklyMode selects the rolling on-duty limit in force for the carrier.
type WeeklyMode string

const (
	// Mode60x7 caps on-duty time at 60 hours over 7 consecutive days.
	Mode60x7 WeeklyMode = "60/7"
	// Mode70x8 caps on-duty time at 70 hours over 8 consecutive days.
	Mode70x8 WeeklyMode = "70/8"
)

func (m WeeklyMode) Valid() bool {
	return m == Mode60x7 || m == Mode70x8
}

// WindowDays returns the length of the rolling window in days.
func (m WeeklyMode) WindowDays() int {
	if m == Mode60x7 {
		return 7
	}
	return 8
}

// CapHours returns the on-duty cap over the rolling window.
func (m WeeklyMode) CapHours() float64 {
	if m == Mode60x7 {
		return 60
	}
	return 70
}

// DailyHoursRecord is one day of a driver's duty history, supplied oldest
// first by the caller and never mutated by the engine.
type DailyHoursRecord struct {
	Date        string  `json:"date"`
	OnDutyHours float64 `json:"on_duty_hours"`
}

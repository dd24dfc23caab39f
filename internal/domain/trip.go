package domain

import "time"

// LegKind distinguishes the deadhead leg to the pickup from the loaded leg
// to the dropoff. The kind drives which fixed-duration stops the schedule
// synthesizer wraps around the leg's driving time.
type LegKind string

const (
	LegToPickup  LegKind = "to_pickup"
	LegToDropoff LegKind = "to_dropoff"
)

// TripLeg is one ordered span of the planned route.
type TripLeg struct {
	Start         Coordinates `json:"start"`
	End           Coordinates `json:"end"`
	DistanceMiles float64     `json:"distance_miles"`
	Kind          LegKind     `json:"kind"`
	Label         string      `json:"label"`
}

// TripPlan is the ordered route the synthesizer schedules against.
type TripPlan struct {
	Legs      []TripLeg `json:"legs"`
	StartTime time.Time `json:"start_time"`
}

// TotalDistanceMiles sums leg distances.
func (p TripPlan) TotalDistanceMiles() float64 {
	var total float64
	for _, leg := range p.Legs {
		total += leg.DistanceMiles
	}
	return total
}

// Schedule is the synthesizer's output: the ordered duty-status timeline,
// the final clock state, and the end-of-trip restart advisory.
type Schedule struct {
	Segments           []Segment   `json:"segments"`
	FinalState         DriverState `json:"final_state"`
	Available34HrReset bool        `json:"available_34hr_restart"`
}

// TotalDrivingHours sums driving segment durations.
func (s Schedule) TotalDrivingHours() float64 {
	var total float64
	for _, seg := range s.Segments {
		if seg.Status == StatusDriving {
			total += seg.DurationHours
		}
	}
	return total
}

// EndTime returns when the last segment ends; zero for an empty schedule.
func (s Schedule) EndTime() time.Time {
	if len(s.Segments) == 0 {
		return time.Time{}
	}
	return s.Segments[len(s.Segments)-1].EndTime()
}

// DailyLog is one calendar day of the schedule in ELD log-sheet form.
type DailyLog struct {
	Date         time.Time `json:"date"`
	Segments     []Segment `json:"segments"`
	TotalDriving float64   `json:"total_driving"`
	TotalOnDuty  float64   `json:"total_on_duty"`
	TotalOffDuty float64   `json:"total_off_duty"`
	TotalSleeper float64   `json:"total_sleeper"`
	TotalMiles   float64   `json:"total_miles"`
}

// ComplianceReport is a post-hoc audit of a finished schedule.
type ComplianceReport struct {
	Compliant   bool     `json:"compliant"`
	Violations  []string `json:"violations"`
	TotalShifts int      `json:"total_shifts"`
}

// TripSummary aggregates a finished schedule for list views.
type TripSummary struct {
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	TotalDurationHours float64   `json:"total_duration_hours"`
	TotalDrivingHours  float64   `json:"total_driving_hours"`
	TotalOnDutyHours   float64   `json:"total_on_duty_hours"`
	TotalRestHours     float64   `json:"total_rest_hours"`
	FuelStops          int       `json:"fuel_stops"`
	RestBreaks         int       `json:"rest_breaks"`
}

// DriverInfo is carrier paperwork carried through to the stored trip.
type DriverInfo struct {
	DriverName    string `json:"driver_name"`
	CarrierName   string `json:"carrier_name"`
	MainOffice    string `json:"main_office"`
	VehicleNumber string `json:"vehicle_number"`
}

// Trip is the persisted planning result.
type Trip struct {
	TripID     string           `json:"trip_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Plan       TripPlan         `json:"plan"`
	Schedule   Schedule         `json:"schedule"`
	DailyLogs  []DailyLog       `json:"daily_logs"`
	Compliance ComplianceReport `json:"hos_compliance"`
	Summary    TripSummary      `json:"summary"`
	Driver     DriverInfo       `json:"driver_info"`
}

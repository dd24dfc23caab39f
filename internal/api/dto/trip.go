package dto

import (
	"time"

	"eld-trip-service/internal/domain"
)

type LocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type PlanTripRequest struct {
	CurrentLocation LocationRequest `json:"current_location"`
	PickupLocation  LocationRequest `json:"pickup_location"`
	DropoffLocation LocationRequest `json:"dropoff_location"`

	CurrentCycleUsed  float64                   `json:"current_cycle_used"`
	WeeklyMode        string                    `json:"weekly_mode"`
	DailyHoursHistory []domain.DailyHoursRecord `json:"daily_hours_history"`
	StartTime         *time.Time                `json:"start_time"`

	UseSplitSleeper           bool `json:"use_split_sleeper"`
	UseAdverseConditions      bool `json:"use_adverse_conditions"`
	UseAirMileException       bool `json:"use_air_mile_exception"`
	UseShortHaul16Hr          bool `json:"use_short_haul_16hr"`
	ShortHaulUsedInPrior7Days bool `json:"short_haul_used_in_prior_7_days"`
	Request34HrRestart        bool `json:"request_34hr_restart"`

	DriverName    string `json:"driver_name"`
	CarrierName   string `json:"carrier_name"`
	MainOffice    string `json:"main_office"`
	VehicleNumber string `json:"vehicle_number"`
}

type SegmentResponse struct {
	SegmentID        string             `json:"segment_id"`
	Activity         string             `json:"activity"`
	DutyStatus       string             `json:"duty_status"`
	StartTime        time.Time          `json:"start_time"`
	DurationHours    float64            `json:"duration_hours"`
	DistanceMiles    float64            `json:"distance_miles,omitempty"`
	Location         domain.Coordinates `json:"location"`
	Place            *domain.Place      `json:"place,omitempty"`
	Remarks          string             `json:"remarks,omitempty"`
	RestBreakType    string             `json:"rest_break_type"`
	SleeperSegment   int                `json:"sleeper_segment,omitempty"`
	PairedWith       string             `json:"paired_with,omitempty"`
	ExcludesFrom14Hr bool               `json:"excludes_from_14hr,omitempty"`
}

type DailyLogResponse struct {
	Date         string            `json:"date"`
	TotalMiles   float64           `json:"total_miles"`
	TotalDriving float64           `json:"total_driving"`
	TotalOnDuty  float64           `json:"total_on_duty"`
	TotalOffDuty float64           `json:"total_off_duty"`
	TotalSleeper float64           `json:"total_sleeper"`
	Segments     []SegmentResponse `json:"segments"`
}

type PlanTripResponse struct {
	TripID              string                  `json:"trip_id"`
	TotalDistanceMiles  float64                 `json:"total_distance_miles"`
	TotalDrivingHours   float64                 `json:"total_driving_hours"`
	EstimatedTotalHours float64                 `json:"estimated_total_hours"`
	Schedule            []SegmentResponse       `json:"schedule"`
	DailyLogs           []DailyLogResponse      `json:"daily_logs"`
	HOSCompliance       domain.ComplianceReport `json:"hos_compliance"`
	Summary             domain.TripSummary      `json:"summary"`
	FinalState          domain.DriverState      `json:"final_state"`
	Available34HrReset  bool                    `json:"available_34hr_restart"`
}

type TripListItem struct {
	TripID     string             `json:"trip_id"`
	CreatedAt  time.Time          `json:"created_at"`
	DriverName string             `json:"driver_name"`
	Summary    domain.TripSummary `json:"summary"`
}

type ListTripsResponse struct {
	Trips []TripListItem `json:"trips"`
}

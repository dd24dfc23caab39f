package domain

import "time"

// DutyStatus classifies a span of time on the driver's daily log.
// Exactly one status applies to a segment; no segment spans two statuses.
type DutyStatus string

const (
	StatusOffDuty          DutyStatus = "off_duty"
	StatusSleeperBerth     DutyStatus = "sleeper_berth"
	StatusDriving          DutyStatus = "driving"
	StatusOnDutyNotDriving DutyStatus = "on_duty_not_driving"
)

func (s DutyStatus) Valid() bool {
	switch s {
	case StatusOffDuty, StatusSleeperBerth, StatusDriving, StatusOnDutyNotDriving:
		return true
	}
	return false
}

// OnDuty reports whether time in this status counts against the duty window
// and the weekly cycle.
func (s DutyStatus) OnDuty() bool {
	return s == StatusDriving || s == StatusOnDutyNotDriving
}

// RestBreakType tags rest segments by the regulatory purpose they serve.
type RestBreakType string

const (
	RestNone        RestBreakType = "none"
	RestSplitSleep  RestBreakType = "split_sleeper"
	RestFull        RestBreakType = "full_rest"
	RestFullRestart RestBreakType = "full_restart"
)

// Segment is a contiguous block of trip time in a single duty status.
//
// Split sleeper berth periods come in linked pairs: each half carries
// SleeperSegment (1 or 2) and PairedWith holds the partner's SegmentID.
// PairedWith is a lookup key, never an ownership relation; exactly one other
// segment in the schedule carries the reciprocal reference.
type Segment struct {
	SegmentID     string        `json:"segment_id"`
	Activity      string        `json:"activity"`
	Status        DutyStatus    `json:"duty_status"`
	StartTime     time.Time     `json:"start_time"`
	DurationHours float64       `json:"duration_hours"`
	DistanceMiles float64       `json:"distance_miles,omitempty"`
	Location      Coordinates   `json:"location"`
	Remarks       string        `json:"remarks,omitempty"`
	RestBreak     RestBreakType `json:"rest_break_type"`

	// SleeperSegment is 1 or 2 and set only when RestBreak is RestSplitSleep.
	SleeperSegment int    `json:"sleeper_segment,omitempty"`
	PairedWith     string `json:"paired_with,omitempty"`

	// ExcludesFrom14Hr is true exactly when the segment pauses the
	// duty-window clock instead of resetting or consuming it.
	ExcludesFrom14Hr bool `json:"excludes_from_14hr,omitempty"`
}

// EndTime returns the instant the segment ends on the trip timeline.
func (s Segment) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationHours * float64(time.Hour)))
}

// SplitComplement returns the partner duration required to complete a split
// sleeper pair, or false when the duration cannot start a valid pair.
// Valid pairs are {7,3} and {8,2} hours, in either order.
func SplitComplement(hours float64) (float64, bool) {
	switch hours {
	case 7:
		return 3, true
	case 3:
		return 7, true
	case 8:
		return 2, true
	case 2:
		return 8, true
	}
	return 0, false
}

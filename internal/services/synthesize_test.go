package services

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"eld-trip-service/internal/domain"
)

var (
	nashville = domain.Coordinates{Lat: 36.1627, Lon: -86.7816}
	memphis   = domain.Coordinates{Lat: 35.1495, Lon: -90.0490}
	dallas    = domain.Coordinates{Lat: 32.7767, Lon: -96.7970}
)

func tripStart() time.Time {
	return time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)
}

func singleLegPlan(miles float64) domain.TripPlan {
	return domain.TripPlan{
		StartTime: tripStart(),
		Legs: []domain.TripLeg{
			{Start: memphis, End: dallas, DistanceMiles: miles, Kind: domain.LegToPickup, Label: "Current Location to Pickup"},
		},
	}
}

func twoLegPlan(toPickup, toDropoff float64) domain.TripPlan {
	return domain.TripPlan{
		StartTime: tripStart(),
		Legs: []domain.TripLeg{
			{Start: nashville, End: memphis, DistanceMiles: toPickup, Kind: domain.LegToPickup, Label: "Current Location to Pickup"},
			{Start: memphis, End: dallas, DistanceMiles: toDropoff, Kind: domain.LegToDropoff, Label: "Pickup to Dropoff"},
		},
	}
}

func seed70() SeedState {
	return SeedState{WeeklyMode: domain.Mode70x8}
}

func countActivity(segments []domain.Segment, activity string) int {
	n := 0
	for _, seg := range segments {
		if seg.Activity == activity {
			n++
		}
	}
	return n
}

func totalDrivenMiles(segments []domain.Segment) float64 {
	var miles float64
	for _, seg := range segments {
		miles += seg.DistanceMiles
	}
	return miles
}

func TestSynthesizeShortTrip(t *testing.T) {
	schedule, err := Synthesize(twoLegPlan(60, 120), seed70())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	activities := make([]string, 0, len(schedule.Segments))
	for _, seg := range schedule.Segments {
		activities = append(activities, seg.Activity)
	}
	want := []string{"Pre-Trip Inspection", "Driving", "Pickup", "Driving", "Dropoff", "Post-Trip Inspection"}
	if !reflect.DeepEqual(activities, want) {
		t.Fatalf("expected activities %v, got %v", want, activities)
	}

	if got := schedule.TotalDrivingHours(); math.Abs(got-3) > 1e-9 {
		t.Fatalf("expected 3h driving for 180 miles, got %v", got)
	}

	wantEnd := tripStart().Add(5*time.Hour + 30*time.Minute)
	if !schedule.EndTime().Equal(wantEnd) {
		t.Fatalf("expected trip end %v, got %v", wantEnd, schedule.EndTime())
	}

	if schedule.FinalState.WeeklyHoursUsed != 5.5 {
		t.Fatalf("expected 5.5 weekly hours used, got %v", schedule.FinalState.WeeklyHoursUsed)
	}
	if schedule.Available34HrReset {
		t.Fatalf("a fresh cycle should not advertise a restart")
	}
}

func TestSynthesizeSegmentsAreContiguous(t *testing.T) {
	schedule, err := Synthesize(singleLegPlan(1200), seed70())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(schedule.Segments); i++ {
		prev, cur := schedule.Segments[i-1], schedule.Segments[i]
		if !cur.StartTime.Equal(prev.EndTime()) {
			t.Fatalf("gap between %s and %s: %v != %v", prev.SegmentID, cur.SegmentID, prev.EndTime(), cur.StartTime)
		}
	}
}

func TestSynthesizeBreakAfterEightDrivingHours(t *testing.T) {
	schedule, err := Synthesize(singleLegPlan(600), seed70())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countActivity(schedule.Segments, "30-Minute Break"); n != 1 {
		t.Fatalf("expected exactly one 30-minute break, got %d", n)
	}

	// The break lands after exactly 8 hours of driving.
	var drivenBefore float64
	for _, seg := range schedule.Segments {
		if seg.Activity == "30-Minute Break" {
			break
		}
		if seg.Status == domain.StatusDriving {
			drivenBefore += seg.DurationHours
		}
	}
	if math.Abs(drivenBefore-8) > 1e-9 {
		t.Fatalf("expected 8h driving before the break, got %v", drivenBefore)
	}

	if n := countActivity(schedule.Segments, "10-Hour Rest"); n != 0 {
		t.Fatalf("a 10h drive needs no full rest, got %d", n)
	}
}

func TestSynthesizeFullRestAfterDrivingLimit(t *testing.T) {
	schedule, err := Synthesize(singleLegPlan(1200), seed70())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countActivity(schedule.Segments, "10-Hour Rest"); n != 1 {
		t.Fatalf("expected exactly one full rest, got %d", n)
	}
	if n := countActivity(schedule.Segments, "Fueling"); n != 1 {
		t.Fatalf("expected one fuel stop in 1200 miles, got %d", n)
	}
	if n := countActivity(schedule.Segments, "30-Minute Break"); n != 2 {
		t.Fatalf("expected two breaks over 20h of driving, got %d", n)
	}

	if got := totalDrivenMiles(schedule.Segments); math.Abs(got-1200) > 1e-6 {
		t.Fatalf("expected 1200 driven miles, got %v", got)
	}

	// Driving before the rest must total exactly the 11-hour limit.
	var drivenBefore float64
	for _, seg := range schedule.Segments {
		if seg.Activity == "10-Hour Rest" {
			if seg.DurationHours != 10 || seg.RestBreak != domain.RestFull {
				t.Fatalf("expected a 10h full rest, got %+v", seg)
			}
			break
		}
		if seg.Status == domain.StatusDriving {
			drivenBefore += seg.DurationHours
		}
	}
	if math.Abs(drivenBefore-11) > 1e-9 {
		t.Fatalf("expected 11h driving before the rest, got %v", drivenBefore)
	}
}

func TestSynthesizeFuelingEveryThousandMiles(t *testing.T) {
	schedule, err := Synthesize(singleLegPlan(2200), seed70())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countActivity(schedule.Segments, "Fueling"); n != 2 {
		t.Fatalf("expected two fuel stops in 2200 miles, got %d", n)
	}

	var miles float64
	for _, seg := range schedule.Segments {
		if seg.Status == domain.StatusDriving {
			miles += seg.DistanceMiles
		}
		if seg.Activity == "Fueling" && math.Mod(miles, 1000) > 1e-6 {
			t.Fatalf("fuel stop at %v miles, not on a 1000-mile boundary", miles)
		}
	}
}

func TestSynthesizeSplitSleeperPair(t *testing.T) {
	seed := seed70()
	seed.Exceptions.SplitSleeper = true

	schedule, err := Synthesize(singleLegPlan(1200), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var halves []domain.Segment
	for _, seg := range schedule.Segments {
		if seg.RestBreak == domain.RestSplitSleep {
			halves = append(halves, seg)
		}
	}
	if len(halves) != 2 {
		t.Fatalf("expected one split pair, got %d halves", len(halves))
	}

	first, second := halves[0], halves[1]
	if first.DurationHours != 7 || second.DurationHours != 3 {
		t.Fatalf("expected a 7h/3h pair, got %v/%v", first.DurationHours, second.DurationHours)
	}
	if first.SleeperSegment != 1 || second.SleeperSegment != 2 {
		t.Fatalf("expected halves tagged 1 and 2, got %d/%d", first.SleeperSegment, second.SleeperSegment)
	}
	if first.PairedWith != second.SegmentID || second.PairedWith != first.SegmentID {
		t.Fatalf("expected reciprocal pairing, got %q/%q", first.PairedWith, second.PairedWith)
	}
	if !first.ExcludesFrom14Hr || !second.ExcludesFrom14Hr {
		t.Fatalf("split halves must pause the duty window")
	}

	if n := countActivity(schedule.Segments, "10-Hour Rest"); n != 0 {
		t.Fatalf("split sleeper replaces the full rest, got %d full rests", n)
	}
	if schedule.FinalState.PendingSplit != nil {
		t.Fatalf("no half may remain pending at trip end")
	}
}

func TestSynthesizeAdverseConditions(t *testing.T) {
	seed := seed70()
	seed.Exceptions.AdverseConditions = true

	// 780 miles is 13 hours of driving: over the base 11h limit, inside the
	// extended one.
	schedule, err := Synthesize(singleLegPlan(780), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countActivity(schedule.Segments, "10-Hour Rest"); n != 0 {
		t.Fatalf("the extension should cover the whole drive, got %d rests", n)
	}
	if got := schedule.TotalDrivingHours(); math.Abs(got-13) > 1e-9 {
		t.Fatalf("expected 13h driving, got %v", got)
	}

	annotated := false
	for _, seg := range schedule.Segments {
		if seg.Status == domain.StatusDriving && strings.Contains(seg.Remarks, "Adverse driving conditions") {
			annotated = true
		}
	}
	if !annotated {
		t.Fatalf("the segment crossing the base limit must carry the adverse remark")
	}
}

func TestSynthesizeAdverseExtensionExpiresAfterRest(t *testing.T) {
	seed := seed70()
	seed.Exceptions.AdverseConditions = true

	// Long enough to need a rest; driving after the rest falls back to 11h.
	schedule, err := Synthesize(singleLegPlan(1600), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var afterRest bool
	var driven float64
	for _, seg := range schedule.Segments {
		if seg.RestBreak == domain.RestFull {
			afterRest = true
			driven = 0
			continue
		}
		if seg.Status == domain.StatusDriving {
			driven += seg.DurationHours
		}
	}
	if !afterRest {
		t.Fatalf("expected a full rest in a 1600-mile trip")
	}
	if driven > 11+1e-9 {
		t.Fatalf("post-rest driving exceeded the base 11h limit: %v", driven)
	}
}

func TestSynthesizeWeeklyExhaustionInsertsRestart(t *testing.T) {
	seed := seed70()
	seed.CycleHoursUsed = 69

	schedule, err := Synthesize(singleLegPlan(120), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countActivity(schedule.Segments, "34-Hour Restart"); n != 1 {
		t.Fatalf("expected one mid-trip restart, got %d", n)
	}
	for _, seg := range schedule.Segments {
		if seg.Activity == "34-Hour Restart" {
			if seg.DurationHours != 34 || seg.RestBreak != domain.RestFullRestart || seg.Status != domain.StatusOffDuty {
				t.Fatalf("malformed restart segment: %+v", seg)
			}
		}
	}
	if !schedule.FinalState.RestartApplied {
		t.Fatalf("expected RestartApplied in the final state")
	}
	if schedule.Available34HrReset {
		t.Fatalf("a restart already taken must not be advertised again")
	}
	if got := totalDrivenMiles(schedule.Segments); math.Abs(got-120) > 1e-6 {
		t.Fatalf("the trip must still complete, got %v of 120 miles", got)
	}
}

func TestSynthesizeAdvertisesRestartWhenCycleNearlySpent(t *testing.T) {
	seed := seed70()
	seed.CycleHoursUsed = 62

	schedule, err := Synthesize(twoLegPlan(60, 120), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countActivity(schedule.Segments, "34-Hour Restart"); n != 0 {
		t.Fatalf("expected no forced restart, got %d", n)
	}
	if !schedule.Available34HrReset {
		t.Fatalf("fewer remaining hours than one driving shift should advertise a restart")
	}
}

func TestSynthesizeRequestedRestartAppended(t *testing.T) {
	seed := seed70()
	seed.RequestRestart = true

	schedule, err := Synthesize(twoLegPlan(60, 120), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := schedule.Segments[len(schedule.Segments)-1]
	if last.Activity != "34-Hour Restart" {
		t.Fatalf("expected trailing restart, got %q", last.Activity)
	}
	if schedule.FinalState.WeeklyHoursUsed != 0 {
		t.Fatalf("expected weekly accumulator zeroed, got %v", schedule.FinalState.WeeklyHoursUsed)
	}
	if schedule.Available34HrReset {
		t.Fatalf("a restart just taken must not be advertised")
	}
}

func TestSynthesizeShortHaulAlreadyUsed(t *testing.T) {
	seed := seed70()
	seed.Exceptions.ShortHaul16Hr = true
	seed.ShortHaulUsedInPrior7Days = true

	_, err := Synthesize(twoLegPlan(60, 120), seed)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for a spent short-haul allowance, got %v", err)
	}
}

func TestSynthesizeAirMileSuppressesStopRemarks(t *testing.T) {
	seed := seed70()
	seed.Exceptions.AirMile = true

	schedule, err := Synthesize(singleLegPlan(600), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, seg := range schedule.Segments {
		if seg.Activity == "30-Minute Break" && seg.Remarks != "" {
			t.Fatalf("air-mile recordkeeping must leave break remarks empty, got %q", seg.Remarks)
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	seed := seed70()
	seed.Exceptions.SplitSleeper = true

	first, err := Synthesize(singleLegPlan(1200), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Synthesize(singleLegPlan(1200), seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs must replay to identical schedules")
	}
}

func TestSynthesizeConflictingExceptions(t *testing.T) {
	seed := seed70()
	seed.Exceptions.ShortHaul16Hr = true
	seed.Exceptions.AdverseConditions = true

	_, err := Synthesize(twoLegPlan(60, 120), seed)
	if !errors.Is(err, domain.ErrConflictingExceptions) {
		t.Fatalf("expected ErrConflictingExceptions, got %v", err)
	}
}

func TestSynthesizeValidation(t *testing.T) {
	cases := []struct {
		name string
		plan domain.TripPlan
		seed SeedState
	}{
		{"no legs", domain.TripPlan{StartTime: tripStart()}, seed70()},
		{"zero start", domain.TripPlan{Legs: singleLegPlan(100).Legs}, seed70()},
		{"negative distance", singleLegPlan(-5), seed70()},
		{"NaN distance", singleLegPlan(math.NaN()), seed70()},
		{"bad mode", singleLegPlan(100), SeedState{WeeklyMode: "65/7"}},
		{"negative cycle", singleLegPlan(100), SeedState{WeeklyMode: domain.Mode70x8, CycleHoursUsed: -1}},
		{"cycle over cap", singleLegPlan(100), SeedState{WeeklyMode: domain.Mode60x7, CycleHoursUsed: 61}},
		{"bad history", singleLegPlan(100), SeedState{
			WeeklyMode:   domain.Mode70x8,
			DailyHistory: []domain.DailyHoursRecord{{Date: "2025-10-19", OnDutyHours: 25}},
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Synthesize(c.plan, c.seed)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

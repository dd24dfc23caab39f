package services

import (
	"strings"
	"testing"
	"time"

	"eld-trip-service/internal/domain"
)

func TestCheckComplianceOnSynthesizedSchedule(t *testing.T) {
	schedule, err := Synthesize(singleLegPlan(1200), seed70())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := CheckCompliance(schedule.Segments, baseLimits(t))
	if !report.Compliant {
		t.Fatalf("expected a compliant schedule, got violations: %v", report.Violations)
	}
	if report.TotalShifts != 2 {
		t.Fatalf("one full rest splits the trip into two shifts, got %d", report.TotalShifts)
	}
}

func TestCheckComplianceFlagsOverdriving(t *testing.T) {
	start := time.Date(2025, 10, 20, 6, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		{SegmentID: "seg-001", Status: domain.StatusDriving, StartTime: start, DurationHours: 12},
	}

	report := CheckCompliance(segments, baseLimits(t))
	if report.Compliant {
		t.Fatalf("12h of driving in one shift must be flagged")
	}
	if len(report.Violations) != 1 || !strings.Contains(report.Violations[0], "driving") {
		t.Fatalf("expected one driving violation, got %v", report.Violations)
	}
}

func TestCheckComplianceShortRestDoesNotCloseShift(t *testing.T) {
	start := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		{SegmentID: "seg-001", Status: domain.StatusDriving, StartTime: start, DurationHours: 8},
		{SegmentID: "seg-002", Status: domain.StatusOffDuty, StartTime: start.Add(8 * time.Hour), DurationHours: 2},
		{SegmentID: "seg-003", Status: domain.StatusDriving, StartTime: start.Add(10 * time.Hour), DurationHours: 5},
	}

	report := CheckCompliance(segments, baseLimits(t))
	if report.Compliant {
		t.Fatalf("13h of driving around a 2h nap must still be one violating shift")
	}
	if report.TotalShifts != 1 {
		t.Fatalf("a 2h off span must not close the shift, got %d shifts", report.TotalShifts)
	}
}

func TestCheckCompliancePairedSplitClosesShift(t *testing.T) {
	start := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		{SegmentID: "seg-001", Status: domain.StatusDriving, StartTime: start, DurationHours: 8},
		{
			SegmentID: "seg-002", Status: domain.StatusSleeperBerth, StartTime: start.Add(8 * time.Hour),
			DurationHours: 7, RestBreak: domain.RestSplitSleep, SleeperSegment: 1, PairedWith: "seg-003",
		},
		{
			SegmentID: "seg-003", Status: domain.StatusSleeperBerth, StartTime: start.Add(15 * time.Hour),
			DurationHours: 3, RestBreak: domain.RestSplitSleep, SleeperSegment: 2, PairedWith: "seg-002",
		},
		{SegmentID: "seg-004", Status: domain.StatusDriving, StartTime: start.Add(18 * time.Hour), DurationHours: 5},
	}

	report := CheckCompliance(segments, baseLimits(t))
	if !report.Compliant {
		t.Fatalf("a completed split pair qualifies as rest, got violations: %v", report.Violations)
	}
	if report.TotalShifts != 2 {
		t.Fatalf("expected the pair to close the first shift, got %d shifts", report.TotalShifts)
	}
}

func TestBuildSummary(t *testing.T) {
	plan := singleLegPlan(1200)
	schedule, err := Synthesize(plan, seed70())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := BuildSummary(plan, *schedule)
	if !summary.StartTime.Equal(plan.StartTime) {
		t.Fatalf("expected summary start %v, got %v", plan.StartTime, summary.StartTime)
	}
	if !summary.EndTime.Equal(schedule.EndTime()) {
		t.Fatalf("expected summary end %v, got %v", schedule.EndTime(), summary.EndTime)
	}
	if summary.TotalDrivingHours != schedule.TotalDrivingHours() {
		t.Fatalf("driving hours mismatch: %v vs %v", summary.TotalDrivingHours, schedule.TotalDrivingHours())
	}
	if summary.FuelStops != 1 {
		t.Fatalf("expected one fuel stop, got %d", summary.FuelStops)
	}
	// Two 30-minute breaks plus one full rest.
	if summary.RestBreaks != 3 {
		t.Fatalf("expected three rest breaks, got %d", summary.RestBreaks)
	}
	wantDuration := schedule.EndTime().Sub(plan.StartTime).Hours()
	if summary.TotalDurationHours != wantDuration {
		t.Fatalf("expected %vh total duration, got %v", wantDuration, summary.TotalDurationHours)
	}
}

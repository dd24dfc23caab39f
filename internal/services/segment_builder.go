package services

import (
	"fmt"
	"time"

	"eld-trip-service/internal/domain"
)

// activityStatus maps the activity labels the synthesizer emits to the duty
// status each one must carry. Labels outside this table are accepted with
// any valid status.
var activityStatus = map[string]domain.DutyStatus{
	"Driving":              domain.StatusDriving,
	"Pre-Trip Inspection":  domain.StatusOnDutyNotDriving,
	"Post-Trip Inspection": domain.StatusOnDutyNotDriving,
	"Pickup":               domain.StatusOnDutyNotDriving,
	"Dropoff":              domain.StatusOnDutyNotDriving,
	"Fueling":              domain.StatusOnDutyNotDriving,
	"30-Minute Break":      domain.StatusOffDuty,
	"34-Hour Restart":      domain.StatusOffDuty,
}

// SegmentBuilder materializes validated segments with run-scoped sequential
// IDs. IDs are deterministic so identical inputs replay to identical
// schedules.
type SegmentBuilder struct {
	nextID int
}

func NewSegmentBuilder() *SegmentBuilder {
	return &SegmentBuilder{nextID: 1}
}

// Build allocates one segment. Duration must be positive and the duty
// status must match the activity's category.
func (b *SegmentBuilder) Build(
	activity string,
	status domain.DutyStatus,
	start time.Time,
	durationHours float64,
	location domain.Coordinates,
) (domain.Segment, error) {
	if durationHours <= 0 {
		return domain.Segment{}, fmt.Errorf("build segment %q: duration must be positive, got %.4f", activity, durationHours)
	}
	if !status.Valid() {
		return domain.Segment{}, fmt.Errorf("build segment %q: unknown duty status %q", activity, status)
	}
	if want, ok := activityStatus[activity]; ok && want != status {
		return domain.Segment{}, fmt.Errorf("build segment %q: duty status %q conflicts with activity category %q", activity, status, want)
	}

	seg := domain.Segment{
		SegmentID:     fmt.Sprintf("seg-%03d", b.nextID),
		Activity:      activity,
		Status:        status,
		StartTime:     start,
		DurationHours: durationHours,
		Location:      location,
		RestBreak:     domain.RestNone,
	}
	b.nextID++
	return seg, nil
}

// BuildSplitHalf allocates one half of a split sleeper pair. The first half
// is left unpaired; PairSplit back-fills both references once the second
// half exists.
func (b *SegmentBuilder) BuildSplitHalf(
	half int,
	start time.Time,
	durationHours float64,
	location domain.Coordinates,
) (domain.Segment, error) {
	if half != 1 && half != 2 {
		return domain.Segment{}, fmt.Errorf("build split half: half must be 1 or 2, got %d", half)
	}
	if _, ok := domain.SplitComplement(durationHours); !ok {
		return domain.Segment{}, &domain.InvalidSplitPairingError{
			GotHours: durationHours,
			Reason:   fmt.Sprintf("%.1fh is not a valid split sleeper duration", durationHours),
		}
	}

	activity := fmt.Sprintf("Sleeper Berth (Split %d/2)", half)
	seg, err := b.Build(activity, domain.StatusSleeperBerth, start, durationHours, location)
	if err != nil {
		return domain.Segment{}, err
	}

	seg.RestBreak = domain.RestSplitSleep
	seg.SleeperSegment = half
	seg.ExcludesFrom14Hr = true
	return seg, nil
}

// PairSplit links the two halves of a split sleeper pair. The back-fill is
// atomic: either both segments end up referencing each other or neither is
// touched. The second half must be the exact complement of the first.
func PairSplit(first, second *domain.Segment) error {
	if first == nil || second == nil {
		return &domain.InvalidSplitPairingError{Reason: "both halves must exist before pairing"}
	}
	if first.RestBreak != domain.RestSplitSleep || second.RestBreak != domain.RestSplitSleep {
		return &domain.InvalidSplitPairingError{Reason: "only split sleeper segments can be paired"}
	}

	want, ok := domain.SplitComplement(first.DurationHours)
	if !ok || second.DurationHours != want {
		return &domain.InvalidSplitPairingError{
			PendingHours: first.DurationHours,
			GotHours:     second.DurationHours,
		}
	}

	first.PairedWith = second.SegmentID
	second.PairedWith = first.SegmentID
	return nil
}

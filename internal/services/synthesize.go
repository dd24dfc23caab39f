package services

import (
	"fmt"
	"math"
	"time"

	"eld-trip-service/internal/domain"
)

const (
	splitFirstHours = 7.0

	distEpsilon = 1e-6
	// Rooms below this are treated as exhausted rather than scheduling a
	// sub-minute sliver of driving.
	roomEpsilon = 1e-6
)

// SeedState is the caller-supplied driver state a synthesis run starts from.
type SeedState struct {
	CycleHoursUsed            float64
	WeeklyMode                domain.WeeklyMode
	DailyHistory              []domain.DailyHoursRecord
	Exceptions                domain.ExceptionSet
	ShortHaulUsedInPrior7Days bool

	// RequestRestart appends a 34-hour restart after the dropoff instead of
	// merely advertising one.
	RequestRestart bool
}

// Synthesize walks the trip plan leg by leg, advancing simulated time across
// driving sub-segments and inserting the breaks, rests, and restarts the
// clock state demands. It returns the full ordered segment sequence plus the
// final clock state, or no schedule at all on a fatal condition.
//
// The computation is deterministic: identical plan and seed produce an
// identical schedule.
func Synthesize(plan domain.TripPlan, seed SeedState) (*domain.Schedule, error) {
	if err := validateInput(plan, seed); err != nil {
		return nil, err
	}

	state := &domain.DriverState{
		WeeklyHoursUsed:           seed.CycleHoursUsed,
		WeeklyMode:                seed.WeeklyMode,
		Exceptions:                seed.Exceptions,
		ShortHaulUsedInPrior7Days: seed.ShortHaulUsedInPrior7Days,
	}

	limits, err := ResolveLimits(state)
	if err != nil {
		return nil, err
	}

	run := &synthesisRun{
		state:      state,
		limits:     limits,
		adverse:    limits.AdverseExtended,
		builder:    NewSegmentBuilder(),
		now:        plan.StartTime,
		pendingIdx: -1,
	}

	lastLeg := len(plan.Legs) - 1
	for i, leg := range plan.Legs {
		if i == 0 {
			if err := run.onDutyStop("Pre-Trip Inspection", InspectionHours, leg.Start, "Pre-trip vehicle inspection"); err != nil {
				return nil, err
			}
		}
		if leg.Kind == domain.LegToDropoff {
			if err := run.onDutyStop("Pickup", PickupDropoffHours, leg.Start, "Loading at pickup location"); err != nil {
				return nil, err
			}
		}

		if err := run.driveLeg(leg); err != nil {
			return nil, err
		}

		if i == lastLeg {
			if err := run.onDutyStop("Dropoff", PickupDropoffHours, leg.End, "Unloading at dropoff location"); err != nil {
				return nil, err
			}
			if err := run.onDutyStop("Post-Trip Inspection", InspectionHours, leg.End, "Post-trip vehicle inspection"); err != nil {
				return nil, err
			}
		}
	}

	if seed.RequestRestart {
		if err := run.insertRestart(plan.Legs[lastLeg].End); err != nil {
			return nil, err
		}
	}

	available := !state.RestartApplied &&
		state.WeeklyHoursRemaining() < run.currentLimits().DrivingHours

	return &domain.Schedule{
		Segments:           run.segments,
		FinalState:         *state,
		Available34HrReset: available,
	}, nil
}

// synthesisRun carries the per-run simulation cursor.
type synthesisRun struct {
	state   *domain.DriverState
	limits  EffectiveLimits
	builder *SegmentBuilder

	segments   []domain.Segment
	now        time.Time
	totalMiles float64

	// pendingIdx indexes the unpaired split-sleeper first half, -1 if none.
	pendingIdx int

	// adverse is true while the adverse-conditions extension still covers
	// the current duty period; it drops at the first qualifying rest.
	adverse bool
}

// currentLimits returns the thresholds in force at the simulation cursor.
func (r *synthesisRun) currentLimits() EffectiveLimits {
	if r.limits.AdverseExtended && !r.adverse {
		return r.limits.WithoutAdverse()
	}
	return r.limits
}

func (r *synthesisRun) emit(seg domain.Segment) {
	r.segments = append(r.segments, seg)
	r.now = seg.EndTime()
}

// driveLeg converts the leg's distance into driving sub-segments, inserting
// whatever break or rest the clocks require before each one.
func (r *synthesisRun) driveLeg(leg domain.TripLeg) error {
	remaining := leg.DistanceMiles

	for remaining > distEpsilon {
		loc := legPoint(leg, remaining)
		lim := r.currentLimits()

		// The weekly cycle has no mid-trip reset other than a restart.
		if r.state.WeeklyHoursRemaining() <= roomEpsilon {
			if err := r.insertRestart(loc); err != nil {
				return err
			}
			continue
		}

		drivingRoom := lim.DrivingHours - r.state.DrivingClock
		windowRoom := lim.DutyWindowHours - r.state.DutyWindowClock
		if drivingRoom <= roomEpsilon || windowRoom <= roomEpsilon {
			if err := r.insertRest(loc); err != nil {
				return err
			}
			continue
		}

		// A full rest subsumes the 30-minute break, so the rest checks above
		// win whenever both would fire at the same instant.
		if lim.BreakAfterHours-r.state.SinceBreakDriving <= roomEpsilon {
			if err := r.insertBreak(loc); err != nil {
				return err
			}
			continue
		}

		if r.pendingIdx >= 0 {
			return &domain.InvalidSplitPairingError{
				PendingHours: r.segments[r.pendingIdx].DurationHours,
				Reason:       "driving before the pending sleeper half was paired",
			}
		}

		canDriveHours := math.Min(drivingRoom, windowRoom)
		canDriveHours = math.Min(canDriveHours, lim.BreakAfterHours-r.state.SinceBreakDriving)
		canDriveHours = math.Min(canDriveHours, r.state.WeeklyHoursRemaining())

		milesToFuel := FuelingIntervalMiles - math.Mod(r.totalMiles, FuelingIntervalMiles)
		if milesToFuel <= distEpsilon {
			// Rounding in the mileage accumulator can leave a sliver just
			// short of the boundary right after a fuel stop.
			milesToFuel = FuelingIntervalMiles
		}
		driveMiles := math.Min(remaining, math.Min(canDriveHours*AverageSpeedMPH, milesToFuel))
		if driveMiles <= distEpsilon {
			return &domain.LimitExceededError{Clock: "driving", Limit: lim.DrivingHours, At: r.now}
		}
		driveHours := driveMiles / AverageSpeedMPH

		seg, err := r.builder.Build("Driving", domain.StatusDriving, r.now, driveHours, loc)
		if err != nil {
			return fmt.Errorf("drive leg %q: %w", leg.Label, err)
		}
		seg.DistanceMiles = driveMiles
		if leg.Label != "" {
			seg.Remarks = "Driving - " + leg.Label
		}

		beforeDriving := r.state.DrivingClock
		if err := AdvanceDriving(r.state, lim, driveHours, driveMiles, r.now); err != nil {
			return fmt.Errorf("drive leg %q: %w", leg.Label, err)
		}

		// The sub-segment that carries the driver past the base limit is the
		// one the adverse-conditions claim must be recorded on.
		if r.adverse && beforeDriving <= baseDrivingHours+clockEpsilon &&
			r.state.DrivingClock > baseDrivingHours+clockEpsilon {
			seg.Remarks = appendRemark(seg.Remarks, "Adverse driving conditions")
		}

		r.emit(seg)
		r.totalMiles += driveMiles
		remaining -= driveMiles

		if driveMiles == milesToFuel {
			if err := r.onDutyStop("Fueling", FuelingHours, legPoint(leg, remaining), r.stopRemark("Fueling stop")); err != nil {
				return err
			}
		}
	}

	return nil
}

// onDutyStop emits a fixed-duration on-duty segment, first inserting any
// rest or restart the duty window or weekly cycle demands.
func (r *synthesisRun) onDutyStop(activity string, hours float64, loc domain.Coordinates, remark string) error {
	for {
		lim := r.currentLimits()

		if r.state.WeeklyHoursRemaining() < hours-clockEpsilon {
			if err := r.insertRestart(loc); err != nil {
				return err
			}
			continue
		}
		if r.state.DutyWindowClock+hours > lim.DutyWindowHours+clockEpsilon {
			if err := r.insertRest(loc); err != nil {
				return err
			}
			continue
		}

		seg, err := r.builder.Build(activity, domain.StatusOnDutyNotDriving, r.now, hours, loc)
		if err != nil {
			return err
		}
		seg.Remarks = remark

		if err := AdvanceDuty(r.state, lim, hours, r.now); err != nil {
			return fmt.Errorf("on-duty stop %q: %w", activity, err)
		}
		r.emit(seg)
		return nil
	}
}

// insertBreak emits the mandatory 30-minute break. It is not a qualifying
// rest: only the 8-hour break clock restarts.
func (r *synthesisRun) insertBreak(loc domain.Coordinates) error {
	seg, err := r.builder.Build("30-Minute Break", domain.StatusOffDuty, r.now, BreakHours, loc)
	if err != nil {
		return err
	}
	seg.Remarks = r.stopRemark("Required 30-minute rest break")

	AdvanceOff(r.state, r.currentLimits(), BreakHours)
	TakeBreak(r.state)
	r.emit(seg)
	return nil
}

// insertRest emits a qualifying rest: a single 10-hour sleeper period, or,
// with the split-sleeper option active, one half of a 7/3 pair. The first
// half pauses the driving and duty-window clocks; completing the pair resets
// them exactly as a full rest would.
func (r *synthesisRun) insertRest(loc domain.Coordinates) error {
	if r.state.Exceptions.SplitSleeper {
		if r.pendingIdx < 0 {
			seg, err := r.builder.BuildSplitHalf(1, r.now, splitFirstHours, loc)
			if err != nil {
				return err
			}
			r.emit(seg)
			r.pendingIdx = len(r.segments) - 1
			pending := r.segments[r.pendingIdx]
			r.state.PendingSplit = &pending
			return nil
		}

		complement, ok := domain.SplitComplement(r.segments[r.pendingIdx].DurationHours)
		if !ok {
			return &domain.InvalidSplitPairingError{
				PendingHours: r.segments[r.pendingIdx].DurationHours,
				Reason:       "pending half has no valid complement",
			}
		}
		seg, err := r.builder.BuildSplitHalf(2, r.now, complement, loc)
		if err != nil {
			return err
		}
		r.emit(seg)

		second := &r.segments[len(r.segments)-1]
		if err := PairSplit(&r.segments[r.pendingIdx], second); err != nil {
			return err
		}
		CompleteSplitPair(r.state)
		r.pendingIdx = -1
		r.adverse = false
		return nil
	}

	lim := r.currentLimits()
	seg, err := r.builder.Build("10-Hour Rest", domain.StatusSleeperBerth, r.now, lim.FullRestHours, loc)
	if err != nil {
		return err
	}
	seg.RestBreak = domain.RestFull
	seg.Remarks = "Mandatory 10-hour rest period"

	AdvanceOff(r.state, lim, lim.FullRestHours)
	r.adverse = false
	r.emit(seg)
	return nil
}

// insertRestart emits a 34-hour off-duty span and zeroes the weekly cycle.
func (r *synthesisRun) insertRestart(loc domain.Coordinates) error {
	seg, err := r.builder.Build("34-Hour Restart", domain.StatusOffDuty, r.now, RestartHours, loc)
	if err != nil {
		return err
	}
	seg.RestBreak = domain.RestFullRestart
	seg.Remarks = "34-hour restart of the weekly cycle"

	Apply34HrRestart(r.state)
	r.adverse = false
	r.emit(seg)
	return nil
}

// stopRemark suppresses per-stop remark metadata under the air-mile
// exception's simplified recordkeeping.
func (r *synthesisRun) stopRemark(remark string) string {
	if r.state.Exceptions.AirMile {
		return ""
	}
	return remark
}

// legPoint interpolates the cursor's position along a leg from the distance
// still to cover.
func legPoint(leg domain.TripLeg, remainingMiles float64) domain.Coordinates {
	if leg.DistanceMiles <= 0 {
		return leg.Start
	}
	f := (leg.DistanceMiles - remainingMiles) / leg.DistanceMiles
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return domain.Coordinates{
		Lat: leg.Start.Lat + (leg.End.Lat-leg.Start.Lat)*f,
		Lon: leg.Start.Lon + (leg.End.Lon-leg.Start.Lon)*f,
	}
}

func appendRemark(existing, extra string) string {
	if existing == "" {
		return extra
	}
	return existing + "; " + extra
}

// validateInput rejects malformed plans and seeds before any simulation
// state is touched.
func validateInput(plan domain.TripPlan, seed SeedState) error {
	if len(plan.Legs) == 0 {
		return &domain.ValidationError{Field: "trip_plan.legs", Reason: "must contain at least one leg"}
	}
	if plan.StartTime.IsZero() {
		return &domain.ValidationError{Field: "trip_plan.start_time", Reason: "is required"}
	}
	for i, leg := range plan.Legs {
		if math.IsNaN(leg.DistanceMiles) || math.IsInf(leg.DistanceMiles, 0) || leg.DistanceMiles <= 0 {
			return &domain.ValidationError{
				Field:  fmt.Sprintf("trip_plan.legs[%d].distance_miles", i),
				Reason: fmt.Sprintf("must be a positive finite number, got %v", leg.DistanceMiles),
			}
		}
	}

	if !seed.WeeklyMode.Valid() {
		return &domain.ValidationError{
			Field:  "weekly_mode",
			Reason: fmt.Sprintf("must be %q or %q, got %q", domain.Mode60x7, domain.Mode70x8, seed.WeeklyMode),
		}
	}
	if seed.CycleHoursUsed < 0 {
		return &domain.ValidationError{Field: "cycle_hours_used", Reason: "must not be negative"}
	}
	if seed.CycleHoursUsed > seed.WeeklyMode.CapHours() {
		return &domain.ValidationError{
			Field:  "cycle_hours_used",
			Reason: fmt.Sprintf("%.1f exceeds the %.0f-hour cap for mode %s", seed.CycleHoursUsed, seed.WeeklyMode.CapHours(), seed.WeeklyMode),
		}
	}
	for i, rec := range seed.DailyHistory {
		if rec.OnDutyHours < 0 || rec.OnDutyHours > 24 {
			return &domain.ValidationError{
				Field:  fmt.Sprintf("daily_hours_history[%d].on_duty_hours", i),
				Reason: fmt.Sprintf("must be within [0, 24], got %v", rec.OnDutyHours),
			}
		}
	}

	return nil
}

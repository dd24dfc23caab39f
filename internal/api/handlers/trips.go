package handlers

import (
	"log"
	"net/http"
	"time"

	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"eld-trip-service/internal/services"
)

// TripHandler orchestrates the planning pipeline: route legs from the
// routing collaborator, HOS synthesis, reverse-geocoded remarks, and
// persistence. The engine itself never does I/O; everything around it
// happens here.
type TripHandler struct {
	Repo     ports.TripRepository
	Routes   ports.RouteProvider
	Resolver ports.LocationResolver
}

func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	mode := domain.WeeklyMode(req.WeeklyMode)
	if req.WeeklyMode == "" {
		mode = domain.Mode70x8
	}

	start := time.Now().UTC()
	if req.StartTime != nil {
		start = req.StartTime.UTC()
	}

	waypoints := []domain.Coordinates{
		{Lat: req.CurrentLocation.Lat, Lon: req.CurrentLocation.Lon},
		{Lat: req.PickupLocation.Lat, Lon: req.PickupLocation.Lon},
		{Lat: req.DropoffLocation.Lat, Lon: req.DropoffLocation.Lon},
	}

	legs, err := h.Routes.GetRoute(r.Context(), waypoints)
	if err != nil {
		log.Printf("route lookup failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route computation failed")
		return
	}
	for i := range legs {
		if i == len(legs)-1 {
			legs[i].Kind = domain.LegToDropoff
			legs[i].Label = "Pickup to Dropoff"
		} else {
			legs[i].Kind = domain.LegToPickup
			legs[i].Label = "Current Location to Pickup"
		}
	}

	plan := domain.TripPlan{Legs: legs, StartTime: start}
	seed := services.SeedState{
		CycleHoursUsed: req.CurrentCycleUsed,
		WeeklyMode:     mode,
		DailyHistory:   req.DailyHoursHistory,
		Exceptions: domain.ExceptionSet{
			SplitSleeper:      req.UseSplitSleeper,
			AdverseConditions: req.UseAdverseConditions,
			AirMile:           req.UseAirMileException,
			ShortHaul16Hr:     req.UseShortHaul16Hr,
		},
		ShortHaulUsedInPrior7Days: req.ShortHaulUsedInPrior7Days,
		RequestRestart:            req.Request34HrRestart,
	}

	schedule, err := services.Synthesize(plan, seed)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	dailyLogs := services.BuildDailyLogs(*schedule)
	compliance := h.auditSchedule(schedule, seed)
	summary := services.BuildSummary(plan, *schedule)

	trip := &domain.Trip{
		Plan:       plan,
		Schedule:   *schedule,
		DailyLogs:  dailyLogs,
		Compliance: compliance,
		Summary:    summary,
		Driver: domain.DriverInfo{
			DriverName:    req.DriverName,
			CarrierName:   req.CarrierName,
			MainOffice:    req.MainOffice,
			VehicleNumber: req.VehicleNumber,
		},
	}

	tripID, err := h.Repo.SaveTrip(r.Context(), trip)
	if err != nil {
		log.Printf("save trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	places := h.resolvePlaces(r, schedule.Segments)

	res := dto.PlanTripResponse{
		TripID:              tripID,
		TotalDistanceMiles:  plan.TotalDistanceMiles(),
		TotalDrivingHours:   schedule.TotalDrivingHours(),
		EstimatedTotalHours: summary.TotalDurationHours,
		Schedule:            mapSegments(schedule.Segments, places),
		DailyLogs:           mapDailyLogs(dailyLogs, places),
		HOSCompliance:       compliance,
		Summary:             summary,
		FinalState:          schedule.FinalState,
		Available34HrReset:  schedule.Available34HrReset,
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	if tripID == "" {
		writeError(w, r, http.StatusBadRequest, "trip id is required")
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if err != nil {
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if trip == nil {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}

	writeJSON(w, r, http.StatusOK, trip)
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context(), 20)
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripListItem, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripListItem{
			TripID:     t.TripID,
			CreatedAt:  t.CreatedAt,
			DriverName: t.Driver.DriverName,
			Summary:    t.Summary,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// auditSchedule re-checks the finished schedule against the limits the run
// was synthesized under.
func (h *TripHandler) auditSchedule(schedule *domain.Schedule, seed services.SeedState) domain.ComplianceReport {
	state := &domain.DriverState{
		Exceptions:                seed.Exceptions,
		ShortHaulUsedInPrior7Days: seed.ShortHaulUsedInPrior7Days,
	}
	lim, err := services.ResolveLimits(state)
	if err != nil {
		// Synthesis already rejected conflicting exceptions; unreachable.
		return domain.ComplianceReport{Compliant: false, Violations: []string{err.Error()}}
	}
	return services.CheckCompliance(schedule.Segments, lim)
}

// resolvePlaces reverse-geocodes each distinct segment location once.
// Failures degrade to missing place metadata, never to a failed plan.
func (h *TripHandler) resolvePlaces(r *http.Request, segments []domain.Segment) map[string]*domain.Place {
	places := make(map[string]*domain.Place)
	if h.Resolver == nil {
		return places
	}

	for _, seg := range segments {
		key := seg.Location.CacheKey()
		if _, ok := places[key]; ok {
			continue
		}

		place, err := h.Resolver.Resolve(r.Context(), seg.Location)
		if err != nil || place.IsZero() {
			if err != nil {
				log.Printf("resolve place failed: key=%s err=%v", key, err)
			}
			places[key] = nil
			continue
		}
		places[key] = &place
	}
	return places
}

func mapSegments(segments []domain.Segment, places map[string]*domain.Place) []dto.SegmentResponse {
	out := make([]dto.SegmentResponse, 0, len(segments))
	for _, seg := range segments {
		out = append(out, dto.SegmentResponse{
			SegmentID:        seg.SegmentID,
			Activity:         seg.Activity,
			DutyStatus:       string(seg.Status),
			StartTime:        seg.StartTime,
			DurationHours:    seg.DurationHours,
			DistanceMiles:    seg.DistanceMiles,
			Location:         seg.Location,
			Place:            places[seg.Location.CacheKey()],
			Remarks:          seg.Remarks,
			RestBreakType:    string(seg.RestBreak),
			SleeperSegment:   seg.SleeperSegment,
			PairedWith:       seg.PairedWith,
			ExcludesFrom14Hr: seg.ExcludesFrom14Hr,
		})
	}
	return out
}

func mapDailyLogs(logs []domain.DailyLog, places map[string]*domain.Place) []dto.DailyLogResponse {
	out := make([]dto.DailyLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.DailyLogResponse{
			Date:         l.Date.Format("2006-01-02"),
			TotalMiles:   l.TotalMiles,
			TotalDriving: l.TotalDriving,
			TotalOnDuty:  l.TotalOnDuty,
			TotalOffDuty: l.TotalOffDuty,
			TotalSleeper: l.TotalSleeper,
			Segments:     mapSegments(l.Segments, places),
		})
	}
	return out
}

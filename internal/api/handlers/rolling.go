package handlers

import (
	"net/http"

	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/services"
)

// RollingHours answers "how many on-duty hours remain this week" from a
// daily history, independent of trip planning.
func RollingHours(w http.ResponseWriter, r *http.Request) {
	var req dto.RollingHoursRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	mode := domain.WeeklyMode(req.Mode)
	if req.Mode == "" {
		mode = domain.Mode70x8
	}

	result, err := services.CalculateRollingHours(req.DailyHoursHistory, mode)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RollingHoursResponse{
		Mode:           string(result.Mode),
		HoursUsed:      result.HoursUsed,
		HoursAvailable: result.HoursAvailable,
		DailyBreakdown: result.DailyBreakdown,
	})
}

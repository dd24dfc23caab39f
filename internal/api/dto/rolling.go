package dto

import "eld-trip-service/internal/domain"

type RollingHoursRequest struct {
	Mode              string                    `json:"mode"`
	DailyHoursHistory []domain.DailyHoursRecord `json:"daily_hours_history"`
}

type RollingHoursResponse struct {
	Mode           string                    `json:"mode"`
	HoursUsed      float64                   `json:"hours_used"`
	HoursAvailable float64                   `json:"hours_available"`
	DailyBreakdown []domain.DailyHoursRecord `json:"daily_breakdown"`
}

package services

import (
	"time"

	"eld-trip-service/internal/domain"
)

// BuildDailyLogs splits a schedule into per-calendar-day ELD log sheets with
// duty-status totals. A segment belongs to the day it starts on.
func BuildDailyLogs(schedule domain.Schedule) []domain.DailyLog {
	if len(schedule.Segments) == 0 {
		return []domain.DailyLog{}
	}

	logs := []domain.DailyLog{}
	var current *domain.DailyLog

	for _, seg := range schedule.Segments {
		day := truncateToDay(seg.StartTime)

		if current == nil || day.After(current.Date) {
			logs = append(logs, domain.DailyLog{Date: day})
			current = &logs[len(logs)-1]
		}

		current.Segments = append(current.Segments, seg)

		switch seg.Status {
		case domain.StatusDriving:
			current.TotalDriving += seg.DurationHours
			current.TotalOnDuty += seg.DurationHours
			current.TotalMiles += seg.DistanceMiles
		case domain.StatusOnDutyNotDriving:
			current.TotalOnDuty += seg.DurationHours
		case domain.StatusOffDuty:
			current.TotalOffDuty += seg.DurationHours
		case domain.StatusSleeperBerth:
			current.TotalSleeper += seg.DurationHours
		}
	}

	return logs
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

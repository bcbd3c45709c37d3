package services

import (
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/utils"
)

// LockDuration decides how long an accepted companion stays locked. For a
// booking today whose first slot has already started, the lock is a third
// of the time elapsed since that start; anything else gets def.
func LockDuration(date string, slots []models.Slot, now time.Time, loc *time.Location, def time.Duration) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(utils.DateLayout, date, loc)
	if err != nil || !day.Equal(utils.StartOfDay(now, loc)) {
		return def
	}

	var (
		bounds   int
		earliest time.Time
	)
	for _, sl := range slots {
		if start, ok := utils.ParseClock(day, sl.StartTime, loc); ok {
			bounds++
			if earliest.IsZero() || start.Before(earliest) {
				earliest = start
			}
		}
		if _, ok := utils.ParseClock(day, sl.EndTime, loc); ok {
			bounds++
		}
	}
	if bounds < 2 || earliest.IsZero() {
		return def
	}

	d := now.Sub(earliest) / 3
	if d <= 0 {
		return def
	}
	return d
}

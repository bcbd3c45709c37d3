package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"03:04 PM",
	"3:04PM",
	"03:04PM",
	"3 PM",
	"3PM",
}

// ParseClock parses a wall-clock slot boundary such as "08:30" or
// "8:30 AM" and returns it on the given day in loc.
func ParseClock(day time.Time, clock string, loc *time.Location) (time.Time, bool) {
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if clock == "" {
		return time.Time{}, false
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		y, m, d := day.In(loc).Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc), true
	}
	return time.Time{}, false
}

// StartOfDay returns midnight of t's day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func RFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

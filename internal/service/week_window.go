package service

import (
	"time"

	"github.com/noah-isme/timp-schedule-api/internal/models"
)

// WeekWindowFor returns the Monday..Sunday window weekOffset weeks away from
// the week containing now, computed on calendar dates in loc so daylight
// saving transitions never shift a boundary.
func WeekWindowFor(now time.Time, weekOffset int, loc *time.Location) models.WeekWindow {
	local := now.In(loc)
	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day()-daysSinceMonday+7*weekOffset, 0, 0, 0, 0, loc)
	sunday := time.Date(monday.Year(), monday.Month(), monday.Day()+6, 0, 0, 0, 0, loc)
	return models.WeekWindow{Start: monday, End: sunday}
}

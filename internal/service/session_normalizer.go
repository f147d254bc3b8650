package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/timp-schedule-api/internal/models"
)

var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// parseTimestamp reads an ISO-8601 timestamp. Values without an offset are
// interpreted as wall-clock time in loc. The result is expressed in loc.
func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// normalizeAdmission maps one upstream admission of activity onto the fixed
// Session shape. Optional upstream fields default to empty values, a
// missing or unknown status means active and an unparsable end collapses to
// the start.
func normalizeAdmission(activity models.Activity, admission models.Admission, loc *time.Location) (models.Session, error) {
	startsAt, err := parseTimestamp(admission.StartingAt, loc)
	if err != nil {
		return models.Session{}, err
	}
	endsAt, err := parseTimestamp(admission.EndingAt, loc)
	if err != nil || endsAt.Before(startsAt) {
		endsAt = startsAt
	}

	activityUUID := admission.ActivityUUID
	if activityUUID == "" {
		activityUUID = activity.UUID
	}

	return models.Session{
		ID:            models.SessionID(activityUUID, admission.StartingAt),
		ActivityUUID:  activityUUID,
		Name:          activity.Name,
		Description:   activity.Description,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		Professional:  models.Professional{Name: stringValue(admission.ProfessionalName)},
		Activity:      models.SessionActivity{Name: activity.Name, Description: activity.Description},
		Room:          models.Room{Name: stringValue(admission.RoomName)},
		Capacity:      nonNegative(admission.Capacity),
		BookingsCount: nonNegative(admission.BookingsCount),
		Status:        normalizeStatus(admission.Status),
	}, nil
}

func normalizeStatus(raw *string) models.SessionStatus {
	switch strings.ToLower(strings.TrimSpace(stringValue(raw))) {
	case "cancelled", "canceled":
		return models.SessionCancelled
	default:
		return models.SessionActive
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func nonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

package models

import "time"

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCancelled SessionStatus = "cancelled"
)

// Professional is the instructor running a session.
type Professional struct {
	Name string `json:"name"`
}

// SessionActivity carries the activity metadata copied onto a session.
type SessionActivity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Room is the place a session happens in, when the provider reports one.
type Room struct {
	Name string `json:"name"`
}

// Session is the normalized representation of one admission.
type Session struct {
	ID            string          `json:"id"`
	ActivityUUID  string          `json:"activity_uuid"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	StartsAt      time.Time       `json:"starts_at"`
	EndsAt        time.Time       `json:"ends_at"`
	Professional  Professional    `json:"professional"`
	Activity      SessionActivity `json:"activity"`
	Room          Room            `json:"room"`
	Capacity      int             `json:"capacity"`
	BookingsCount int             `json:"bookings_count"`
	Status        SessionStatus   `json:"status"`
}

// SessionID derives the stable identifier of an activity timeslot.
func SessionID(activityUUID, startingAt string) string {
	return activityUUID + "_" + startingAt
}

// Available returns the remaining seats; negative when overbooked.
func (s Session) Available() int {
	return s.Capacity - s.BookingsCount
}

// IsFull reports whether no seats remain.
func (s Session) IsFull() bool {
	return s.Available() <= 0
}

// IsCancelled reports whether the provider cancelled the session.
func (s Session) IsCancelled() bool {
	return s.Status == SessionCancelled
}

// Duration is the scheduled length of the session.
func (s Session) Duration() time.Duration {
	return s.EndsAt.Sub(s.StartsAt)
}

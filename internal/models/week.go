package models

import "time"

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// WeekWindow is an inclusive Monday..Sunday range of local dates.
type WeekWindow struct {
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// StartDate returns the Monday formatted as YYYY-MM-DD.
func (w WeekWindow) StartDate() string {
	return w.Start.Format(DateLayout)
}

// EndDate returns the Sunday formatted as YYYY-MM-DD.
func (w WeekWindow) EndDate() string {
	return w.End.Format(DateLayout)
}

// Dates lists the seven local dates of the window in order.
func (w WeekWindow) Dates() []time.Time {
	dates := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, w.Start.AddDate(0, 0, i))
	}
	return dates
}

// Contains reports whether the local date of t falls inside the window.
func (w WeekWindow) Contains(t time.Time) bool {
	date := t.In(w.Start.Location()).Format(DateLayout)
	return date >= w.StartDate() && date <= w.EndDate()
}

// MarshalJSON keeps the wire shape of the window as plain dates.
func (w WeekWindow) MarshalJSON() ([]byte, error) {
	return []byte(`{"start_date":"` + w.StartDate() + `","end_date":"` + w.EndDate() + `"}`), nil
}

// DayBucket groups the sessions of one local calendar date.
type DayBucket struct {
	Date     string    `json:"date"`
	Weekday  string    `json:"weekday"`
	Sessions []Session `json:"sessions"`
}

// WeekView is the grouped schedule of one week.
type WeekView struct {
	Window      WeekWindow  `json:"window"`
	WeekOffset  int         `json:"week_offset"`
	Days        []DayBucket `json:"days"`
	DefaultDate *string     `json:"default_date"`
}

// Bucket returns the sessions grouped under date, nil when the date is unknown.
func (v WeekView) Bucket(date string) []Session {
	for _, day := range v.Days {
		if day.Date == date {
			return day.Sessions
		}
	}
	return nil
}

// SessionCount returns the number of sessions across all buckets.
func (v WeekView) SessionCount() int {
	total := 0
	for _, day := range v.Days {
		total += len(day.Sessions)
	}
	return total
}

// Sessions flattens the buckets in day and time order.
func (v WeekView) Sessions() []Session {
	out := make([]Session, 0, v.SessionCount())
	for _, day := range v.Days {
		out = append(out, day.Sessions...)
	}
	return out
}

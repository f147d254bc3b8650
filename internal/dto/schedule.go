package dto

import (
	"time"

	"github.com/noah-isme/timp-schedule-api/internal/models"
)

// EventsRequest captures POST /schedule/events payload.
type EventsRequest struct {
	CenterUUID string `json:"center_uuid" validate:"omitempty,max=64"`
	WeekOffset int    `json:"week_offset"`
}

// EventsResponse is the flat session list of one week.
type EventsResponse struct {
	Sessions []models.Session  `json:"sessions"`
	Window   models.WeekWindow `json:"window"`
}

// WeekQuery binds GET /schedule/week and its export.
type WeekQuery struct {
	CenterUUID   string   `form:"center_uuid" validate:"omitempty,max=64"`
	WeekOffset   int      `form:"week_offset"`
	SelectedDate string   `form:"selected_date" validate:"omitempty,datetime=2006-01-02"`
	Expanded     []string `form:"expanded"`
	Format       string   `form:"format" validate:"omitempty,oneof=csv pdf"`
}

// Badge is the status marker shown next to a session.
type Badge string

const (
	BadgeNone      Badge = ""
	BadgeCancelled Badge = "cancelled"
	BadgeFull      Badge = "full"
	BadgeLowSeats  Badge = "low_seats"
)

// DisplayRecord is the presentation-ready form of one session.
type DisplayRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Instructor      string `json:"instructor"`
	Room            string `json:"room"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Capacity        int    `json:"capacity"`
	Booked          int    `json:"booked"`
	Available       int    `json:"available"`
	ShowCapacity    bool   `json:"show_capacity"`
	IsFull          bool   `json:"is_full"`
	IsCancelled     bool   `json:"is_cancelled"`
	Badge           Badge  `json:"badge"`
	BadgeLabel      string `json:"badge_label,omitempty"`
	CanBook         bool   `json:"can_book"`
	BookingURL      string `json:"booking_url,omitempty"`
	Expanded        bool   `json:"expanded"`
}

// DayView is one selectable day of the weekly schedule.
type DayView struct {
	Date       string          `json:"date"`
	Weekday    string          `json:"weekday"`
	DayName    string          `json:"day_name"`
	DayNumber  int             `json:"day_number"`
	LongDate   string          `json:"long_date"`
	Selectable bool            `json:"selectable"`
	Sessions   []DisplayRecord `json:"sessions"`
}

// WeekScheduleResponse is the rendered weekly view.
type WeekScheduleResponse struct {
	WeekOffset   int       `json:"week_offset"`
	Label        string    `json:"label"`
	RangeLabel   string    `json:"range_label"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DefaultDate  *string   `json:"default_date"`
	SelectedDate *string   `json:"selected_date"`
	Days         []DayView `json:"days"`
	EmptyMessage string    `json:"empty_message,omitempty"`
}

// ConnectionCheckResponse reports the outcome of a credentials check.
type ConnectionCheckResponse struct {
	CenterUUID   string    `json:"center_uuid"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	SessionCount int       `json:"session_count"`
	Message      string    `json:"message"`
	CheckedAt    time.Time `json:"checked_at"`
}

// DebugMeta is attached to schedule responses as meta.debug.
type DebugMeta struct {
	CenterUUID  string `json:"center_uuid"`
	EventsCount int    `json:"events_count"`
}

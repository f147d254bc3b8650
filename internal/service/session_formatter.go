package service

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/models"
)

const (
	defaultLowSeatsThreshold = 3
	sessionIDPlaceholder     = "{session_id}"
)

// FormatterConfig configures presentation of sessions.
type FormatterConfig struct {
	Locale            string
	BookingURL        string
	LowSeatsThreshold int
}

// SessionFormatter turns sessions and weekly views into display records.
// It holds no mutable state.
type SessionFormatter struct {
	locale     *localeStrings
	bookingURL string
	lowSeats   int
	location   *time.Location
}

// NewSessionFormatter constructs a formatter rendering times in location.
func NewSessionFormatter(cfg FormatterConfig, location *time.Location) *SessionFormatter {
	lowSeats := cfg.LowSeatsThreshold
	if lowSeats < 0 {
		lowSeats = defaultLowSeatsThreshold
	}
	if location == nil {
		location = time.UTC
	}
	return &SessionFormatter{
		locale:     lookupLocale(cfg.Locale),
		bookingURL: strings.TrimSpace(cfg.BookingURL),
		lowSeats:   lowSeats,
		location:   location,
	}
}

// Format computes the display record of one session.
func (f *SessionFormatter) Format(session models.Session) dto.DisplayRecord {
	start := session.StartsAt.In(f.location)
	end := session.EndsAt.In(f.location)
	available := session.Available()
	badge := f.badge(session)

	record := dto.DisplayRecord{
		ID:              session.ID,
		Title:           session.Name,
		Description:     session.Description,
		Instructor:      session.Professional.Name,
		Room:            session.Room.Name,
		Date:            start.Format(models.DateLayout),
		StartTime:       start.Format("15:04"),
		EndTime:         end.Format("15:04"),
		DurationMinutes: int(math.Round(end.Sub(start).Minutes())),
		Capacity:        session.Capacity,
		Booked:          session.BookingsCount,
		Available:       available,
		ShowCapacity:    session.Capacity > 0 && !session.IsCancelled(),
		IsFull:          session.IsFull(),
		IsCancelled:     session.IsCancelled(),
		Badge:           badge,
		BadgeLabel:      f.locale.badgeLabels[string(badge)],
	}
	if f.bookingURL != "" && !record.IsFull && !record.IsCancelled {
		record.CanBook = true
		record.BookingURL = strings.ReplaceAll(f.bookingURL, sessionIDPlaceholder, url.QueryEscape(session.ID))
	}
	return record
}

func (f *SessionFormatter) badge(session models.Session) dto.Badge {
	switch {
	case session.IsCancelled():
		return dto.BadgeCancelled
	case session.IsFull():
		return dto.BadgeFull
	case session.Available() <= f.lowSeats:
		return dto.BadgeLowSeats
	default:
		return dto.BadgeNone
	}
}

// WeekLabel names a week relative to the current one.
func (f *SessionFormatter) WeekLabel(offset int) string {
	return f.locale.weekLabel(offset)
}

// RangeLabel renders a window as "4 mar - 10 mar".
func (f *SessionFormatter) RangeLabel(window models.WeekWindow) string {
	return f.locale.shortDate(window.Start) + " - " + f.locale.shortDate(window.End)
}

// DayName returns the localized weekday name of t.
func (f *SessionFormatter) DayName(t time.Time) string {
	return f.locale.days[t.Weekday()]
}

// LongDate renders t as "4 de marzo".
func (f *SessionFormatter) LongDate(t time.Time) string {
	return f.locale.fullDate(t)
}

// EmptyMessage is shown when a week has no sessions at all.
func (f *SessionFormatter) EmptyMessage(offset int) string {
	return f.locale.emptyMessage(offset)
}

// ConnectionMessage summarises a successful connection check.
func (f *SessionFormatter) ConnectionMessage(sessions int) string {
	return fmt.Sprintf(f.locale.connectionOK, sessions)
}

// FormatWeek renders a weekly view. selectedDate is honoured when it is a
// selectable day of the window, otherwise the view's default date is used.
// Sessions whose id is in expanded carry Expanded=true.
func (f *SessionFormatter) FormatWeek(view *models.WeekView, selectedDate string, expanded []string) dto.WeekScheduleResponse {
	open := make(map[string]struct{}, len(expanded))
	for _, id := range expanded {
		open[id] = struct{}{}
	}

	selectable := make(map[string]struct{}, selectableDays)
	for _, date := range view.Window.Dates()[:selectableDays] {
		selectable[date.Format(models.DateLayout)] = struct{}{}
	}

	resp := dto.WeekScheduleResponse{
		WeekOffset:  view.WeekOffset,
		Label:       f.WeekLabel(view.WeekOffset),
		RangeLabel:  f.RangeLabel(view.Window),
		StartDate:   view.Window.StartDate(),
		EndDate:     view.Window.EndDate(),
		DefaultDate: view.DefaultDate,
		Days:        make([]dto.DayView, 0, len(view.Days)),
	}

	for _, day := range view.Days {
		date, err := time.ParseInLocation(models.DateLayout, day.Date, f.location)
		if err != nil {
			continue
		}
		_, isSelectable := selectable[day.Date]
		dayView := dto.DayView{
			Date:       day.Date,
			Weekday:    day.Weekday,
			DayName:    f.DayName(date),
			DayNumber:  date.Day(),
			LongDate:   f.LongDate(date),
			Selectable: isSelectable,
			Sessions:   make([]dto.DisplayRecord, 0, len(day.Sessions)),
		}
		for _, session := range day.Sessions {
			record := f.Format(session)
			_, record.Expanded = open[session.ID]
			dayView.Sessions = append(dayView.Sessions, record)
		}
		resp.Days = append(resp.Days, dayView)
	}

	if _, ok := selectable[selectedDate]; ok {
		resp.SelectedDate = &selectedDate
	} else {
		resp.SelectedDate = view.DefaultDate
	}
	if view.SessionCount() == 0 {
		resp.EmptyMessage = f.EmptyMessage(view.WeekOffset)
	}
	return resp
}

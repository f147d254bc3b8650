package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timp-schedule-api/internal/models"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
)

// selectableDays is how many days from Monday may be picked as the default day.
const selectableDays = 6

type sessionLister interface {
	Aggregate(ctx context.Context, centerUUID string, dateFrom, dateTo, now time.Time) ([]models.Session, error)
}

// WeekViewConfig configures weekly view building.
type WeekViewConfig struct {
	DefaultCenterUUID string
	MaxWeekOffset     int
	CacheTTL          time.Duration
}

// WeekViewService builds the grouped schedule of a week.
type WeekViewService struct {
	sessions sessionLister
	cache    *CacheService
	metrics  *MetricsService
	location *time.Location
	cfg      WeekViewConfig
	logger   *zap.Logger
}

// NewWeekViewService constructs the weekly view builder.
func NewWeekViewService(sessions sessionLister, cache *CacheService, metrics *MetricsService, location *time.Location, cfg WeekViewConfig, logger *zap.Logger) *WeekViewService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeekViewService{sessions: sessions, cache: cache, metrics: metrics, location: location, cfg: cfg, logger: logger}
}

// Location returns the calendar time zone weeks are computed in.
func (s *WeekViewService) Location() *time.Location {
	return s.location
}

// ResolveCenter falls back to the configured center when centerUUID is blank.
func (s *WeekViewService) ResolveCenter(centerUUID string) (string, error) {
	centerUUID = strings.TrimSpace(centerUUID)
	if centerUUID == "" {
		centerUUID = strings.TrimSpace(s.cfg.DefaultCenterUUID)
	}
	if centerUUID == "" {
		return "", appErrors.WithDetails(appErrors.Clone(appErrors.ErrConfig, "center uuid is not configured"), "set TIMP_CENTER_UUID or pass center_uuid")
	}
	return centerUUID, nil
}

// BuildWeek returns the weekly view for weekOffset relative to the week of
// now. The boolean reports whether the sessions came from cache.
func (s *WeekViewService) BuildWeek(ctx context.Context, centerUUID string, weekOffset int, now time.Time) (*models.WeekView, bool, error) {
	if s.cfg.MaxWeekOffset > 0 && (weekOffset > s.cfg.MaxWeekOffset || weekOffset < -s.cfg.MaxWeekOffset) {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("week_offset must be between -%d and %d", s.cfg.MaxWeekOffset, s.cfg.MaxWeekOffset))
	}
	centerUUID, err := s.ResolveCenter(centerUUID)
	if err != nil {
		return nil, false, err
	}

	window := WeekWindowFor(now, weekOffset, s.location)
	sessions, hit, err := s.loadSessions(ctx, centerUUID, window, now)
	if err != nil {
		return nil, false, err
	}

	view := GroupWeek(window, weekOffset, sessions, now, s.location)
	s.metrics.ObserveWeekSize(view.SessionCount())
	s.logger.Debug("built weekly view",
		zap.String("center_uuid", centerUUID),
		zap.String("start_date", window.StartDate()),
		zap.Int("sessions", view.SessionCount()),
		zap.Bool("cache_hit", hit),
	)
	return view, hit, nil
}

func (s *WeekViewService) loadSessions(ctx context.Context, centerUUID string, window models.WeekWindow, now time.Time) ([]models.Session, bool, error) {
	key := SessionsKey(centerUUID, window)
	var cached []models.Session
	if s.cache.Get(ctx, key, &cached) {
		// Cached sessions may have started since they were stored.
		return futureSessions(cached, now), true, nil
	}

	sessions, err := s.sessions.Aggregate(ctx, centerUUID, window.Start, window.End, now)
	if err != nil {
		return nil, false, err
	}
	_ = s.cache.Set(ctx, key, sessions, s.cfg.CacheTTL)
	return sessions, false, nil
}

func futureSessions(sessions []models.Session, now time.Time) []models.Session {
	out := make([]models.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.StartsAt.After(now) {
			out = append(out, session)
		}
	}
	return out
}

// GroupWeek buckets sessions by their local calendar date, sorts each
// bucket by start time and picks the default day. Every date of the window
// gets a bucket; sessions outside the window get buckets of their own.
func GroupWeek(window models.WeekWindow, weekOffset int, sessions []models.Session, now time.Time, loc *time.Location) *models.WeekView {
	grouped := make(map[string][]models.Session)
	for _, date := range window.Dates() {
		grouped[date.Format(models.DateLayout)] = []models.Session{}
	}
	for _, session := range sessions {
		session.StartsAt = session.StartsAt.In(loc)
		session.EndsAt = session.EndsAt.In(loc)
		date := session.StartsAt.Format(models.DateLayout)
		grouped[date] = append(grouped[date], session)
	}

	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]models.DayBucket, 0, len(dates))
	for _, date := range dates {
		bucket := grouped[date]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].StartsAt.Before(bucket[j].StartsAt)
		})
		days = append(days, models.DayBucket{Date: date, Weekday: weekdayName(date, loc), Sessions: bucket})
	}

	view := &models.WeekView{Window: window, WeekOffset: weekOffset, Days: days}
	view.DefaultDate = defaultDate(view, weekOffset, now.In(loc).Format(models.DateLayout))
	return view
}

func defaultDate(view *models.WeekView, weekOffset int, today string) *string {
	if weekOffset == 0 && len(view.Bucket(today)) > 0 {
		return &today
	}
	for _, date := range view.Window.Dates()[:selectableDays] {
		key := date.Format(models.DateLayout)
		if len(view.Bucket(key)) > 0 {
			return &key
		}
	}
	return nil
}

func weekdayName(date string, loc *time.Location) string {
	parsed, err := time.ParseInLocation(models.DateLayout, date, loc)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Weekday().String())
}

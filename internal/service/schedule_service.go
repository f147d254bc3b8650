package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/models"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
)

// ScheduleResult pairs a response payload with the facts handlers surface as meta.
type ScheduleResult[T any] struct {
	Data       T
	CenterUUID string
	Sessions   int
	CacheHit   bool
}

// ScheduleService validates schedule requests and renders weekly views.
type ScheduleService struct {
	weeks     weekBuilder
	formatter *SessionFormatter
	exporter  *ExportService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(weeks weekBuilder, formatter *SessionFormatter, exporter *ExportService, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{weeks: weeks, formatter: formatter, exporter: exporter, validator: validate, logger: logger}
}

// Events returns the flat, time ordered sessions of a week.
func (s *ScheduleService) Events(ctx context.Context, req dto.EventsRequest, now time.Time) (*ScheduleResult[dto.EventsResponse], error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid events request")
	}
	centerUUID, view, hit, err := s.build(ctx, req.CenterUUID, req.WeekOffset, now)
	if err != nil {
		return nil, err
	}
	return &ScheduleResult[dto.EventsResponse]{
		Data:       dto.EventsResponse{Sessions: view.Sessions(), Window: view.Window},
		CenterUUID: centerUUID,
		Sessions:   view.SessionCount(),
		CacheHit:   hit,
	}, nil
}

// Week returns the rendered weekly view.
func (s *ScheduleService) Week(ctx context.Context, query dto.WeekQuery, now time.Time) (*ScheduleResult[dto.WeekScheduleResponse], error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid week query")
	}
	centerUUID, view, hit, err := s.build(ctx, query.CenterUUID, query.WeekOffset, now)
	if err != nil {
		return nil, err
	}
	return &ScheduleResult[dto.WeekScheduleResponse]{
		Data:       s.formatter.FormatWeek(view, query.SelectedDate, query.Expanded),
		CenterUUID: centerUUID,
		Sessions:   view.SessionCount(),
		CacheHit:   hit,
	}, nil
}

// Export renders the weekly view as a downloadable file.
func (s *ScheduleService) Export(ctx context.Context, query dto.WeekQuery, now time.Time) (*ExportFile, error) {
	week, err := s.Week(ctx, query, now)
	if err != nil {
		return nil, err
	}
	return s.exporter.Render(week.Data, query.Format)
}

func (s *ScheduleService) build(ctx context.Context, centerUUID string, weekOffset int, now time.Time) (string, *models.WeekView, bool, error) {
	centerUUID, err := s.weeks.ResolveCenter(centerUUID)
	if err != nil {
		return "", nil, false, err
	}
	view, hit, err := s.weeks.BuildWeek(ctx, centerUUID, weekOffset, now)
	if err != nil {
		if appErrors.IsUpstream(err) {
			s.logger.Warn("schedule unavailable", zap.String("center_uuid", centerUUID), zap.Int("week_offset", weekOffset), zap.Error(err))
		}
		return "", nil, false, err
	}
	return centerUUID, view, hit, nil
}

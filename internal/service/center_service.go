package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/models"
)

type centerLister interface {
	ListCenters(ctx context.Context) ([]models.Center, error)
}

type weekBuilder interface {
	ResolveCenter(centerUUID string) (string, error)
	BuildWeek(ctx context.Context, centerUUID string, weekOffset int, now time.Time) (*models.WeekView, bool, error)
}

// CenterService exposes center discovery and the connection check.
type CenterService struct {
	centers   centerLister
	weeks     weekBuilder
	cache     *CacheService
	formatter *SessionFormatter
	logger    *zap.Logger
}

// NewCenterService constructs the center service.
func NewCenterService(centers centerLister, weeks weekBuilder, cache *CacheService, formatter *SessionFormatter, logger *zap.Logger) *CenterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CenterService{centers: centers, weeks: weeks, cache: cache, formatter: formatter, logger: logger}
}

// List returns the centers the API key is authorized for.
func (s *CenterService) List(ctx context.Context) ([]models.Center, error) {
	centers, err := s.centers.ListCenters(ctx)
	if err != nil {
		return nil, mapUpstreamError(err, "load centers")
	}
	return centers, nil
}

// CheckConnection drops cached weeks of the center and counts this week's
// sessions with fresh upstream data.
func (s *CenterService) CheckConnection(ctx context.Context, centerUUID string, now time.Time) (*dto.ConnectionCheckResponse, error) {
	centerUUID, err := s.weeks.ResolveCenter(centerUUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, CenterPattern(centerUUID)); err != nil {
		s.logger.Warn("connection check continuing with stale cache", zap.String("center_uuid", centerUUID), zap.Error(err))
	}

	view, _, err := s.weeks.BuildWeek(ctx, centerUUID, 0, now)
	if err != nil {
		return nil, err
	}
	count := view.SessionCount()
	s.logger.Info("timp connection check succeeded", zap.String("center_uuid", centerUUID), zap.Int("sessions", count))
	return &dto.ConnectionCheckResponse{
		CenterUUID:   centerUUID,
		StartDate:    view.Window.StartDate(),
		EndDate:      view.Window.EndDate(),
		SessionCount: count,
		Message:      s.formatter.ConnectionMessage(count),
		CheckedAt:    now.UTC(),
	}, nil
}

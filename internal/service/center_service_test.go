package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timp-schedule-api/internal/models"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
	"github.com/noah-isme/timp-schedule-api/pkg/timp"
)

type fakeCenterLister struct {
	centers []models.Center
	err     error
}

func (f *fakeCenterLister) ListCenters(context.Context) ([]models.Center, error) {
	return f.centers, f.err
}

func TestCenterServiceListMapsUpstreamErrors(t *testing.T) {
	svc := NewCenterService(&fakeCenterLister{err: &timp.StatusError{Endpoint: timp.EndpointCenters, StatusCode: 401}}, nil, nil, nil, nil)

	_, err := svc.List(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrUpstreamAuth))

	svc = NewCenterService(&fakeCenterLister{centers: []models.Center{{UUID: "c-1", Name: "Centro"}}}, nil, nil, nil, nil)
	centers, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, centers, 1)
}

func TestCheckConnectionCountsThisWeekWithFreshData(t *testing.T) {
	loc := madrid(t)
	now := time.Date(2024, 3, 6, 8, 0, 0, 0, loc)
	lister := &fakeSessionLister{sessions: []models.Session{
		sessionAt("a", time.Date(2024, 3, 6, 9, 0, 0, 0, loc)),
		sessionAt("b", time.Date(2024, 3, 8, 9, 0, 0, 0, loc)),
	}}
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	weeks := NewWeekViewService(lister, cache, nil, loc, WeekViewConfig{DefaultCenterUUID: "c-1"}, nil)
	formatter := NewSessionFormatter(FormatterConfig{Locale: "es"}, loc)
	svc := NewCenterService(&fakeCenterLister{}, weeks, cache, formatter, nil)

	_, _, err := weeks.BuildWeek(context.Background(), "", 0, now)
	require.NoError(t, err)

	resp, err := svc.CheckConnection(context.Background(), "", now)
	require.NoError(t, err)
	assert.Equal(t, "c-1", resp.CenterUUID)
	assert.Equal(t, 2, resp.SessionCount)
	assert.Equal(t, "2024-03-04", resp.StartDate)
	assert.Equal(t, "¡Conexión exitosa! Se encontraron 2 sesiones para esta semana.", resp.Message)
	assert.Equal(t, 2, lister.calls)
	assert.Equal(t, []string{"schedule:sessions:c-1:*"}, repo.deleted)
}

func TestCheckConnectionSurfacesConfigErrors(t *testing.T) {
	weeks := NewWeekViewService(&fakeSessionLister{}, nil, nil, time.UTC, WeekViewConfig{}, nil)
	svc := NewCenterService(&fakeCenterLister{}, weeks, nil, NewSessionFormatter(FormatterConfig{}, time.UTC), nil)

	_, err := svc.CheckConnection(context.Background(), "", time.Now())
	assert.True(t, errors.Is(err, appErrors.ErrConfig))
}

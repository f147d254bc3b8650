package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timp-schedule-api/internal/models"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
	"github.com/noah-isme/timp-schedule-api/pkg/jobs"
	"github.com/noah-isme/timp-schedule-api/pkg/timp"
)

type fakeScheduleSource struct {
	mu            sync.Mutex
	activities    []models.Activity
	activitiesErr error
	admissions    map[string][]models.Admission
	admissionErrs map[string]error
	requested     []string
}

func (f *fakeScheduleSource) ListActivities(context.Context, string) ([]models.Activity, error) {
	if f.activitiesErr != nil {
		return nil, f.activitiesErr
	}
	return f.activities, nil
}

func (f *fakeScheduleSource) ListAdmissions(_ context.Context, activityUUID string, _, _ time.Time) ([]models.Admission, error) {
	f.mu.Lock()
	f.requested = append(f.requested, activityUUID)
	f.mu.Unlock()
	if err := f.admissionErrs[activityUUID]; err != nil {
		return nil, err
	}
	return f.admissions[activityUUID], nil
}

func strPtr(value string) *string {
	return &value
}

func madrid(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return loc
}

func admissionAt(activityUUID, start, end string) models.Admission {
	return models.Admission{ActivityUUID: activityUUID, StartingAt: start, EndingAt: end, Capacity: 10, BookingsCount: 2}
}

func newTestAggregator(t *testing.T, source scheduleSource, metrics *MetricsService) *SessionAggregator {
	t.Helper()
	pool := jobs.NewPool("admissions-test", jobs.PoolConfig{Workers: 2})
	return NewSessionAggregator(source, pool, metrics, madrid(t), nil)
}

func TestAggregateKeepsOnlyFutureSessions(t *testing.T) {
	loc := madrid(t)
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, loc)
	source := &fakeScheduleSource{
		activities: []models.Activity{{UUID: "yoga", Name: "Yoga", Description: "Hatha"}, {UUID: "spin", Name: "Spinning"}},
		admissions: map[string][]models.Admission{
			"yoga": {
				admissionAt("yoga", "2024-03-05T09:00:00+01:00", "2024-03-05T10:00:00+01:00"),
				admissionAt("yoga", "2024-03-06T10:00:00+01:00", "2024-03-06T11:00:00+01:00"),
				admissionAt("yoga", "2024-03-07T09:00:00+01:00", "2024-03-07T10:00:00+01:00"),
			},
			"spin": {
				admissionAt("spin", "2024-03-08T18:30:00+01:00", "2024-03-08T19:15:00+01:00"),
			},
		},
	}

	sessions, err := newTestAggregator(t, source, nil).Aggregate(context.Background(), "c-1", now, now.AddDate(0, 0, 4), now)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, "yoga_2024-03-07T09:00:00+01:00", sessions[0].ID)
	assert.Equal(t, "Yoga", sessions[0].Name)
	assert.Equal(t, "Hatha", sessions[0].Activity.Description)
	assert.Equal(t, "spin_2024-03-08T18:30:00+01:00", sessions[1].ID)
	assert.Equal(t, 45*time.Minute, sessions[1].Duration())
	for _, session := range sessions {
		assert.True(t, session.StartsAt.After(now))
	}
}

func TestAggregateSkipsActivityWhoseAdmissionsFail(t *testing.T) {
	loc := madrid(t)
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, loc)
	source := &fakeScheduleSource{
		activities: []models.Activity{{UUID: "a"}, {UUID: "b"}, {UUID: "c"}},
		admissions: map[string][]models.Admission{
			"a": {admissionAt("a", "2024-03-05T09:00:00+01:00", "2024-03-05T10:00:00+01:00")},
			"c": {admissionAt("c", "2024-03-06T09:00:00+01:00", "2024-03-06T10:00:00+01:00")},
		},
		admissionErrs: map[string]error{"b": fmt.Errorf("timp admissions: %w", timp.ErrUpstream)},
	}
	metrics := NewMetricsService()

	sessions, err := newTestAggregator(t, source, metrics).Aggregate(context.Background(), "c-1", now, now.AddDate(0, 0, 6), now)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].ActivityUUID)
	assert.Equal(t, "c", sessions[1].ActivityUUID)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, source.requested)
	assert.Equal(t, uint64(1), metrics.Snapshot().SkippedActivities)
}

func TestAggregateFailsWhenActivitiesLookupFails(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target *appErrors.Error
	}{
		{name: "missing key", err: timp.ErrMissingAPIKey, target: appErrors.ErrConfig},
		{name: "missing center", err: timp.ErrMissingCenter, target: appErrors.ErrConfig},
		{name: "unauthorized", err: &timp.StatusError{Endpoint: timp.EndpointActivities, StatusCode: 401}, target: appErrors.ErrUpstreamAuth},
		{name: "server error", err: &timp.StatusError{Endpoint: timp.EndpointActivities, StatusCode: 500}, target: appErrors.ErrUpstream},
		{name: "timeout", err: fmt.Errorf("timp activities: %w", timp.ErrTimeout), target: appErrors.ErrUpstreamTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeScheduleSource{activitiesErr: tt.err}
			now := time.Now()

			sessions, err := newTestAggregator(t, source, nil).Aggregate(context.Background(), "c-1", now, now, now)
			require.Error(t, err)
			assert.Nil(t, sessions)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.Empty(t, source.requested)
		})
	}
}

func TestAggregateUnauthorizedCarriesHint(t *testing.T) {
	source := &fakeScheduleSource{activitiesErr: &timp.StatusError{Endpoint: timp.EndpointActivities, StatusCode: 403}}
	now := time.Now()

	_, err := newTestAggregator(t, source, nil).Aggregate(context.Background(), "c-1", now, now, now)
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "failed to load activities: status 403", appErr.Message)
	assert.NotEmpty(t, appErr.Details)
}

func TestAggregateWithNoActivitiesIsEmpty(t *testing.T) {
	now := time.Now()
	sessions, err := newTestAggregator(t, &fakeScheduleSource{}, nil).Aggregate(context.Background(), "c-1", now, now, now)
	require.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestAggregateDeduplicatesSessionIDs(t *testing.T) {
	loc := madrid(t)
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, loc)
	duplicate := admissionAt("yoga", "2024-03-05T09:00:00+01:00", "2024-03-05T10:00:00+01:00")
	source := &fakeScheduleSource{
		activities: []models.Activity{{UUID: "yoga", Name: "Yoga"}},
		admissions: map[string][]models.Admission{"yoga": {duplicate, duplicate}},
	}

	sessions, err := newTestAggregator(t, source, nil).Aggregate(context.Background(), "c-1", now, now, now)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestAggregateCancelledContextIsTimeout(t *testing.T) {
	source := &fakeScheduleSource{activities: []models.Activity{{UUID: "a"}, {UUID: "b"}}}
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	now := time.Now()
	_, err := newTestAggregator(t, source, nil).Aggregate(ctx, "c-1", now, now, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUpstreamTimeout))
}

func TestNormalizeAdmissionDefaultsOptionalFields(t *testing.T) {
	loc := madrid(t)
	activity := models.Activity{UUID: "pilates", Name: "Pilates", Description: ""}

	plain, err := normalizeAdmission(activity, models.Admission{StartingAt: "2024-03-05T09:00:00", EndingAt: "2024-03-05T09:50:00", Capacity: -1, BookingsCount: 3}, loc)
	require.NoError(t, err)
	assert.Equal(t, "pilates_2024-03-05T09:00:00", plain.ID)
	assert.Equal(t, "pilates", plain.ActivityUUID)
	assert.Equal(t, "", plain.Professional.Name)
	assert.Equal(t, "", plain.Room.Name)
	assert.Equal(t, models.SessionActive, plain.Status)
	assert.Equal(t, 0, plain.Capacity)
	assert.Equal(t, loc, plain.StartsAt.Location())
	assert.Equal(t, 9, plain.StartsAt.Hour())
	assert.Equal(t, 50*time.Minute, plain.Duration())

	rich, err := normalizeAdmission(activity, models.Admission{
		ActivityUUID:     "pilates",
		StartingAt:       "2024-03-05T08:00:00Z",
		EndingAt:         "bogus",
		ProfessionalName: strPtr(" Ana "),
		RoomName:         strPtr("Sala 2"),
		Status:           strPtr("Canceled"),
	}, loc)
	require.NoError(t, err)
	assert.Equal(t, "Ana", rich.Professional.Name)
	assert.Equal(t, "Sala 2", rich.Room.Name)
	assert.True(t, rich.IsCancelled())
	assert.Equal(t, 9, rich.StartsAt.Hour())
	assert.Equal(t, rich.StartsAt, rich.EndsAt)

	_, err = normalizeAdmission(activity, models.Admission{StartingAt: "tomorrow"}, loc)
	assert.Error(t, err)
}

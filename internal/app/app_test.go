package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/pkg/config"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
)

func testConfig(baseURL, apiKey string) *config.Config {
	return &config.Config{
		Env: "test",
		Timp: config.TimpConfig{
			BaseURL:        baseURL,
			APIKey:         apiKey,
			CenterUUID:     "c-1",
			Timeout:        time.Second,
			MaxConcurrency: 2,
			RateBurst:      1,
		},
		Schedule: config.ScheduleConfig{
			Timezone:          "Europe/Madrid",
			Locale:            "es",
			LowSeatsThreshold: 3,
			MaxWeekOffset:     52,
		},
	}
}

func TestBuildServesScheduleFromProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/branch_buildings/c-1/activities":
			_, _ = w.Write([]byte(`[{"uuid":"yoga","name":"Yoga"},{"uuid":"broken","name":"Broken"}]`))
		case "/activities/yoga/admissions":
			_, _ = w.Write([]byte(`{"collection":[{"activity_uuid":"yoga","starting_at":"2024-03-05T09:00:00+01:00","ending_at":"2024-03-05T10:00:00+01:00","capacity":10,"bookings_count":9}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	services, err := Build(testConfig(server.URL, "key"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = services.Close() })
	assert.Nil(t, services.CachePinger)
	assert.False(t, services.Cache.Enabled())

	now := time.Date(2024, 3, 4, 8, 0, 0, 0, services.Location)
	result, err := services.Schedule.Week(context.Background(), dto.WeekQuery{}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sessions)
	require.NotNil(t, result.Data.DefaultDate)
	assert.Equal(t, "2024-03-05", *result.Data.DefaultDate)
	assert.Equal(t, uint64(1), services.Metrics.Snapshot().SkippedActivities)
}

func TestBuildWithoutKeyFailsWithConfigError(t *testing.T) {
	services, err := Build(testConfig("http://127.0.0.1:1", ""), nil)
	require.NoError(t, err)

	_, err = services.Schedule.Events(context.Background(), dto.EventsRequest{}, time.Now())
	assert.True(t, errors.Is(err, appErrors.ErrConfig))
}

func TestBuildRejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1", "key")
	cfg.Schedule.Timezone = "Mars/Olympus"

	_, err := Build(cfg, nil)
	assert.Error(t, err)
}

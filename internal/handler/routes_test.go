package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/middleware"
	"github.com/noah-isme/timp-schedule-api/internal/models"
	"github.com/noah-isme/timp-schedule-api/internal/service"
)

func newTestRouter(schedule *fakeScheduleSrv, metrics *service.MetricsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())
	RegisterRoutes(r, Handlers{
		Schedule: NewScheduleHandler(schedule),
		Centers:  NewCenterHandler(&fakeCenterSrv{centers: []models.Center{}}),
		Metrics:  NewMetricsHandler(metrics, nil),
	}, "/api/v1", false)
	return r
}

func TestRoutesServeScheduleUnderPrefix(t *testing.T) {
	metrics := service.NewMetricsService()
	srv := &fakeScheduleSrv{events: &service.ScheduleResult[dto.EventsResponse]{Data: dto.EventsResponse{Sessions: []models.Session{}}}}
	r := newTestRouter(srv, metrics)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/events", strings.NewReader(`{"week_offset":2}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, srv.lastReq.WeekOffset)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Meta, "debug")
	assert.Equal(t, uint64(1), metrics.Snapshot().RequestsTotal)
}

func TestRoutesExposeOperationalEndpoints(t *testing.T) {
	r := newTestRouter(&fakeScheduleSrv{}, service.NewMetricsService())

	for _, path := range []string{"/health", "/ready", "/metrics", "/api/v1/metrics/summary", "/api/v1/centers"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

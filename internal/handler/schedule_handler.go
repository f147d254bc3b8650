package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/middleware"
	"github.com/noah-isme/timp-schedule-api/internal/service"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
	"github.com/noah-isme/timp-schedule-api/pkg/response"
)

type scheduleService interface {
	Events(ctx context.Context, req dto.EventsRequest, now time.Time) (*service.ScheduleResult[dto.EventsResponse], error)
	Week(ctx context.Context, query dto.WeekQuery, now time.Time) (*service.ScheduleResult[dto.WeekScheduleResponse], error)
	Export(ctx context.Context, query dto.WeekQuery, now time.Time) (*service.ExportFile, error)
}

// ScheduleHandler exposes weekly schedule endpoints.
type ScheduleHandler struct {
	service scheduleService
	now     func() time.Time
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service, now: time.Now}
}

// Events godoc
// @Summary Sessions of a week
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.EventsRequest true "Center and week offset"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /schedule/events [post]
func (h *ScheduleHandler) Events(c *gin.Context) {
	var req dto.EventsRequest
	// An empty body means the configured center and the current week.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.service.Events(c.Request.Context(), req, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, result.CacheHit)
	middleware.SetMeta(c, "debug", dto.DebugMeta{CenterUUID: result.CenterUUID, EventsCount: result.Sessions})
	response.JSON(c, http.StatusOK, result.Data, middleware.ExtractMeta(c))
}

// Week godoc
// @Summary Rendered weekly schedule
// @Tags Schedule
// @Produce json
// @Param week_offset query int false "Weeks relative to the current one"
// @Param center_uuid query string false "Center UUID, defaults to the configured center"
// @Param selected_date query string false "Selected day (YYYY-MM-DD)"
// @Param expanded query []string false "Session ids shown expanded"
// @Success 200 {object} response.Envelope
// @Router /schedule/week [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	query, ok := bindWeekQuery(c)
	if !ok {
		return
	}
	result, err := h.service.Week(c.Request.Context(), query, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, result.CacheHit)
	middleware.SetMeta(c, "debug", dto.DebugMeta{CenterUUID: result.CenterUUID, EventsCount: result.Sessions})
	response.JSON(c, http.StatusOK, result.Data, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Download a weekly schedule
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Param week_offset query int false "Weeks relative to the current one"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /schedule/week/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	query, ok := bindWeekQuery(c)
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), query, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func bindWeekQuery(c *gin.Context) (dto.WeekQuery, bool) {
	var query dto.WeekQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return query, false
	}
	return query, true
}

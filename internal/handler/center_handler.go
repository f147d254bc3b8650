package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/models"
	"github.com/noah-isme/timp-schedule-api/pkg/response"
)

type centerService interface {
	List(ctx context.Context) ([]models.Center, error)
	CheckConnection(ctx context.Context, centerUUID string, now time.Time) (*dto.ConnectionCheckResponse, error)
}

// CenterHandler exposes center discovery and the connection check.
type CenterHandler struct {
	service centerService
	now     func() time.Time
}

// NewCenterHandler constructs the handler.
func NewCenterHandler(service centerService) *CenterHandler {
	return &CenterHandler{service: service, now: time.Now}
}

// List godoc
// @Summary Centers available to the API key
// @Tags Centers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /centers [get]
func (h *CenterHandler) List(c *gin.Context) {
	centers, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, centers, map[string]interface{}{"total": len(centers)})
}

// Check godoc
// @Summary Verify credentials by counting this week's sessions
// @Tags Centers
// @Produce json
// @Param center_uuid query string false "Center UUID, defaults to the configured center"
// @Success 200 {object} response.Envelope
// @Router /connection/check [get]
func (h *CenterHandler) Check(c *gin.Context) {
	result, err := h.service.CheckConnection(c.Request.Context(), c.Query("center_uuid"), h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

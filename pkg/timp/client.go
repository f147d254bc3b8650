package timp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/noah-isme/timp-schedule-api/internal/models"
)

const maxBodyBytes = 5 << 20

// ErrMissingCenter indicates an activities lookup without a center uuid.
var ErrMissingCenter = errors.New("timp center uuid not provided")

// Observer receives one event per upstream call.
type Observer interface {
	ObserveUpstreamCall(endpoint string, status int, duration time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveUpstreamCall(string, int, time.Duration, error) {}

// Config holds connection settings for the TIMP API.
type Config struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

// Client performs authenticated read-only calls against TIMP. It never
// retries; a failed call is reported to the caller as is.
type Client struct {
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
	logger   *zap.Logger
}

// NewClient builds a client with a fixed per-request timeout.
func NewClient(cfg Config, observer Observer, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, cfg.RateBurst),
		observer: observer,
		logger:   logger,
	}
}

// Configured reports whether an API access key is present.
func (c *Client) Configured() bool {
	return c != nil && c.cfg.APIKey != ""
}

type centerPayload struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type activityPayload struct {
	UUID        string  `json:"uuid"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ListCenters returns the branch buildings the API key is authorized for.
func (c *Client) ListCenters(ctx context.Context) ([]models.Center, error) {
	body, err := c.get(ctx, EndpointCenters, "/branch_buildings", nil)
	if err != nil {
		return nil, err
	}
	payload, err := decodeList[centerPayload](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, EndpointCenters, err)
	}
	centers := make([]models.Center, 0, len(payload))
	for _, p := range payload {
		centers = append(centers, models.Center{UUID: p.UUID, Name: p.Name})
	}
	return centers, nil
}

// ListActivities returns the activities of a center in upstream order.
func (c *Client) ListActivities(ctx context.Context, centerUUID string) ([]models.Activity, error) {
	if strings.TrimSpace(centerUUID) == "" {
		return nil, ErrMissingCenter
	}
	path := "/branch_buildings/" + url.PathEscape(centerUUID) + "/activities"
	body, err := c.get(ctx, EndpointActivities, path, nil)
	if err != nil {
		return nil, err
	}
	payload, err := decodeList[activityPayload](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, EndpointActivities, err)
	}
	activities := make([]models.Activity, 0, len(payload))
	for _, p := range payload {
		activity := models.Activity{UUID: p.UUID, Name: p.Name}
		if p.Description != nil {
			activity.Description = *p.Description
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

// ListAdmissions returns the admissions of an activity between two
// inclusive calendar dates. No admissions yields an empty slice.
func (c *Client) ListAdmissions(ctx context.Context, activityUUID string, dateFrom, dateTo time.Time) ([]models.Admission, error) {
	path := "/activities/" + url.PathEscape(activityUUID) + "/admissions"
	query := url.Values{}
	query.Set("date_from", dateFrom.Format(dateLayout))
	query.Set("date_to", dateTo.Format(dateLayout))
	body, err := c.get(ctx, EndpointAdmissions, path, query)
	if err != nil {
		return nil, err
	}
	admissions, err := decodeList[models.Admission](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, EndpointAdmissions, err)
	}
	return admissions, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		// Wait fails early when the deadline cannot be met.
		if _, hasDeadline := ctx.Deadline(); hasDeadline && ctx.Err() == nil {
			return nil, fmt.Errorf("timp %s: %w", endpoint, ErrTimeout)
		}
		return nil, classifyTransportError(endpoint, errors.Join(err, ctx.Err()))
	}

	target := c.cfg.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", endpoint, err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", acceptHeader)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = classifyTransportError(endpoint, err)
		c.observer.ObserveUpstreamCall(endpoint, 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	duration := time.Since(start)
	if err != nil {
		err = classifyTransportError(endpoint, err)
		c.observer.ObserveUpstreamCall(endpoint, resp.StatusCode, duration, err)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
		c.observer.ObserveUpstreamCall(endpoint, resp.StatusCode, duration, statusErr)
		c.logger.Debug("timp non-200 response", zap.String("endpoint", endpoint), zap.Int("status", resp.StatusCode), zap.String("body", statusErr.Body))
		return nil, statusErr
	}

	c.observer.ObserveUpstreamCall(endpoint, resp.StatusCode, duration, nil)
	return body, nil
}

func classifyTransportError(endpoint string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timp %s: %w", endpoint, ErrTimeout)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("timp %s: %w", endpoint, ErrTimeout)
	}
	return fmt.Errorf("timp %s: %w: %w", endpoint, ErrUpstream, err)
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max]
}

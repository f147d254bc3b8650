package service

import (
	"context"
	"errors"
	"fmt"

	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
	"github.com/noah-isme/timp-schedule-api/pkg/timp"
)

// mapUpstreamError converts client and context failures into typed API errors.
// action names what was attempted, e.g. "load activities".
func mapUpstreamError(err error, action string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, timp.ErrMissingAPIKey):
		return appErrors.WithDetails(
			appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Status, "API access key is not configured"),
			"set TIMP_API_KEY",
		)
	case errors.Is(err, timp.ErrMissingCenter):
		return appErrors.WithDetails(
			appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Status, "center uuid is not configured"),
			"set TIMP_CENTER_UUID or pass center_uuid",
		)
	case errors.Is(err, timp.ErrUnauthorized):
		return appErrors.WithDetails(
			appErrors.Wrap(err, appErrors.ErrUpstreamAuth.Code, appErrors.ErrUpstreamAuth.Status, fmt.Sprintf("failed to %s: %s", action, statusSuffix(err))),
			"verify the API access key and that the center authorized it",
		)
	case errors.Is(err, timp.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return appErrors.Wrap(err, appErrors.ErrUpstreamTimeout.Code, appErrors.ErrUpstreamTimeout.Status, fmt.Sprintf("failed to %s: timed out", action))
	case errors.Is(err, context.Canceled):
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("failed to %s: request cancelled", action))
	default:
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("failed to %s: %s", action, statusSuffix(err)))
	}
}

func statusSuffix(err error) string {
	var statusErr *timp.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("status %d", statusErr.StatusCode)
	}
	return "provider unreachable"
}

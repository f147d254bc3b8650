package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timp-schedule-api/internal/models"
	"github.com/noah-isme/timp-schedule-api/pkg/jobs"
)

type scheduleSource interface {
	ListActivities(ctx context.Context, centerUUID string) ([]models.Activity, error)
	ListAdmissions(ctx context.Context, activityUUID string, dateFrom, dateTo time.Time) ([]models.Admission, error)
}

// SessionAggregator fans out admission lookups for every activity of a center
// and merges them into one flat list of future sessions.
type SessionAggregator struct {
	source   scheduleSource
	pool     *jobs.Pool
	metrics  *MetricsService
	location *time.Location
	logger   *zap.Logger
}

type activityResult struct {
	activity models.Activity
	sessions []models.Session
	dropped  int
	err      error
}

// NewSessionAggregator constructs the aggregator.
func NewSessionAggregator(source scheduleSource, pool *jobs.Pool, metrics *MetricsService, location *time.Location, logger *zap.Logger) *SessionAggregator {
	if pool == nil {
		pool = jobs.NewPool("admissions", jobs.PoolConfig{Workers: 4, Logger: logger})
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionAggregator{source: source, pool: pool, metrics: metrics, location: location, logger: logger}
}

// Aggregate returns the sessions of centerUUID between dateFrom and dateTo
// (inclusive calendar dates) that start strictly after now. A failed
// activities lookup fails the whole call. A failed admissions lookup only
// drops that activity.
func (a *SessionAggregator) Aggregate(ctx context.Context, centerUUID string, dateFrom, dateTo, now time.Time) ([]models.Session, error) {
	activities, err := a.source.ListActivities(ctx, centerUUID)
	if err != nil {
		return nil, mapUpstreamError(err, "load activities")
	}
	if len(activities) == 0 {
		return []models.Session{}, nil
	}

	results := make([]activityResult, len(activities))
	tasks := make([]jobs.Task, len(activities))
	for i, activity := range activities {
		i, activity := i, activity
		results[i].activity = activity
		tasks[i] = func(ctx context.Context) error {
			admissions, err := a.source.ListAdmissions(ctx, activity.UUID, dateFrom, dateTo)
			if err != nil {
				return err
			}
			results[i].sessions, results[i].dropped = a.normalize(activity, admissions, now)
			return nil
		}
	}

	errs := a.pool.Run(ctx, tasks)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, mapUpstreamError(ctxErr, "load admissions")
	}
	for i := range results {
		results[i].err = errs[i]
	}

	return a.merge(centerUUID, results), nil
}

func (a *SessionAggregator) normalize(activity models.Activity, admissions []models.Admission, now time.Time) ([]models.Session, int) {
	sessions := make([]models.Session, 0, len(admissions))
	dropped := 0
	for _, admission := range admissions {
		session, err := normalizeAdmission(activity, admission, a.location)
		if err != nil {
			dropped++
			a.logger.Debug("dropping admission with unreadable start", zap.String("activity_uuid", activity.UUID), zap.String("starting_at", admission.StartingAt), zap.Error(err))
			continue
		}
		if !session.StartsAt.After(now) {
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, dropped
}

func (a *SessionAggregator) merge(centerUUID string, results []activityResult) []models.Session {
	seen := make(map[string]struct{})
	sessions := make([]models.Session, 0)
	for _, result := range results {
		if result.err != nil {
			a.metrics.RecordSkippedActivity()
			a.logger.Warn("skipping activity after admissions lookup failed",
				zap.String("center_uuid", centerUUID),
				zap.String("activity_uuid", result.activity.UUID),
				zap.String("activity", result.activity.Name),
				zap.Error(result.err),
			)
			continue
		}
		if result.dropped > 0 {
			a.logger.Warn("admissions dropped during normalization", zap.String("activity_uuid", result.activity.UUID), zap.Int("dropped", result.dropped))
		}
		for _, session := range result.sessions {
			if _, ok := seen[session.ID]; ok {
				continue
			}
			seen[session.ID] = struct{}{}
			sessions = append(sessions, session)
		}
	}
	return sessions
}

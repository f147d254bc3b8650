package app

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timp-schedule-api/internal/repository"
	"github.com/noah-isme/timp-schedule-api/internal/service"
	"github.com/noah-isme/timp-schedule-api/pkg/cache"
	"github.com/noah-isme/timp-schedule-api/pkg/config"
	"github.com/noah-isme/timp-schedule-api/pkg/jobs"
	"github.com/noah-isme/timp-schedule-api/pkg/timp"
)

// Services is the wired service graph shared by the API server and the CLI.
type Services struct {
	Location *time.Location
	Metrics  *service.MetricsService
	Client   *timp.Client
	Cache    *service.CacheService
	Weeks    *service.WeekViewService
	Schedule *service.ScheduleService
	Centers  *service.CenterService

	// CachePinger is nil when no cache backend is connected.
	CachePinger interface{ Ping(context.Context) error }

	closers []func() error
}

// Build wires every service from cfg. A configured but unreachable Redis
// disables caching instead of failing.
func Build(cfg *config.Config, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	location, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}

	s := &Services{Location: location, Metrics: service.NewMetricsService()}

	s.Client = timp.NewClient(timp.Config{
		BaseURL:   cfg.Timp.BaseURL,
		APIKey:    cfg.Timp.APIKey,
		Timeout:   cfg.Timp.Timeout,
		RateLimit: cfg.Timp.RateLimit,
		RateBurst: cfg.Timp.RateBurst,
	}, s.Metrics, logger.Named("timp"))
	if !s.Client.Configured() {
		logger.Warn("TIMP_API_KEY is not set; schedule requests will fail with CONFIG_ERROR")
	}

	var cacheRepo service.CacheRepository
	if cfg.Schedule.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logger.Warn("schedule cache disabled, redis unavailable", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(redisClient, logger.Named("cache"))
			cacheRepo = repo
			s.CachePinger = repo
			s.closers = append(s.closers, repo.Close)
		}
	}
	s.Cache = service.NewCacheService(cacheRepo, s.Metrics, cfg.Schedule.CacheTTL, logger.Named("cache"), cacheRepo != nil)

	pool := jobs.NewPool("admissions", jobs.PoolConfig{Workers: cfg.Timp.MaxConcurrency, Logger: logger.Named("jobs")})
	aggregator := service.NewSessionAggregator(s.Client, pool, s.Metrics, location, logger.Named("aggregator"))
	s.Weeks = service.NewWeekViewService(aggregator, s.Cache, s.Metrics, location, service.WeekViewConfig{
		DefaultCenterUUID: cfg.Timp.CenterUUID,
		MaxWeekOffset:     cfg.Schedule.MaxWeekOffset,
		CacheTTL:          cfg.Schedule.CacheTTL,
	}, logger.Named("weeks"))

	formatter := service.NewSessionFormatter(service.FormatterConfig{
		Locale:            cfg.Schedule.Locale,
		BookingURL:        cfg.Schedule.BookingURL,
		LowSeatsThreshold: cfg.Schedule.LowSeatsThreshold,
	}, location)
	exporter := service.NewExportService(nil, nil, logger.Named("export"))
	s.Schedule = service.NewScheduleService(s.Weeks, formatter, exporter, validator.New(), logger.Named("schedule"))
	s.Centers = service.NewCenterService(s.Client, s.Weeks, s.Cache, formatter, logger.Named("centers"))

	return s, nil
}

// Close releases backend connections.
func (s *Services) Close() error {
	var firstErr error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/noah-isme/timp-schedule-api/api/swagger"
	"github.com/noah-isme/timp-schedule-api/internal/app"
	"github.com/noah-isme/timp-schedule-api/internal/handler"
	"github.com/noah-isme/timp-schedule-api/internal/middleware"
	"github.com/noah-isme/timp-schedule-api/pkg/config"
	"github.com/noah-isme/timp-schedule-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timp-schedule-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timp-schedule-api/pkg/middleware/requestid"
)

// @title TIMP Schedule API
// @version 1.0.0
// @description Weekly class schedules aggregated from the TIMP booking platform
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	services, err := app.Build(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to wire services", "error", err)
	}
	defer services.Close() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(services.Metrics))
	r.Use(middleware.WithResponseMeta())

	handler.RegisterRoutes(r, handler.Handlers{
		Schedule: handler.NewScheduleHandler(services.Schedule),
		Centers:  handler.NewCenterHandler(services.Centers),
		Metrics:  handler.NewMetricsHandler(services.Metrics, services.CachePinger),
	}, cfg.APIPrefix, cfg.Env != config.EnvProduction)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "timezone", services.Location.String(), "cache", services.Cache.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("server forced to shutdown", "error", err)
	}
}

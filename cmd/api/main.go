package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/attachments"
	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/daycache"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg := config.Load()
	logger := logging.New(cfg)

	timezone.SetDefault(cfg.DefaultTimezone)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}

	// ======================================================
	// DAY CACHE (redis opcional)
	// ======================================================
	var cache daycache.Cache = daycache.Nop{}

	redisClient, err := daycache.NewRedisClient(cfg.RedisURL)
	if err == nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = daycache.Ping(pingCtx, redisClient)
		cancel()
	}
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, day cache disabled")
	} else {
		cache = daycache.NewRedisCache(redisClient, cfg.DayCacheTTL)
		defer redisClient.Close()
	}

	dispatcher := audit.NewDispatcher(audit.New(db), logger)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Repo:        infraRepo.NewAppointmentGormRepository(db),
		Attachments: infraRepo.NewAttachmentGormRepository(db),
		Storage:     attachments.NewS3Storage(cfg.S3),
		Cache:       cache,
		Broker:      notify.NewBroker(logger),
		Audit:       dispatcher,
		Resolver:    net.DefaultResolver,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	dispatcher.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/oureon/trackr/api/handler"
	"github.com/oureon/trackr/internal/config"
	"github.com/oureon/trackr/internal/infrastructure/buffer"
	"github.com/oureon/trackr/internal/infrastructure/monitor"
	pgInfra "github.com/oureon/trackr/internal/infrastructure/postgres"
	redisInfra "github.com/oureon/trackr/internal/infrastructure/redis"
	"github.com/oureon/trackr/internal/middleware"
	"github.com/oureon/trackr/internal/router"
	"github.com/oureon/trackr/internal/services"
	"github.com/oureon/trackr/internal/services/lifecycle"
	"github.com/oureon/trackr/pkg/clock"
	"github.com/oureon/trackr/pkg/httpcontext"
	"github.com/oureon/trackr/pkg/logger"
	"github.com/oureon/trackr/repository/postgres"
	redisRepo "github.com/oureon/trackr/repository/redis"
	authUC "github.com/oureon/trackr/usecase/auth"
	focusUC "github.com/oureon/trackr/usecase/focus"
	insightsUC "github.com/oureon/trackr/usecase/insights"
	profileUC "github.com/oureon/trackr/usecase/profile"
	summaryUC "github.com/oureon/trackr/usecase/summary"
	taskUC "github.com/oureon/trackr/usecase/task"
	timelineUC "github.com/oureon/trackr/usecase/timeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	focusRepo := postgres.NewFocusSessionRepository(pool)
	timelineRepo := postgres.NewTimelineRepository(pool)
	authSessionRepo := redisRepo.NewAuthSessionRepository(redisClient, 24*time.Hour)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		timelineRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	recorder := services.NewTimelineRecorder(timelineRepo, bufferProcessor, zapLogger)

	clk := clock.System()
	loc := cfg.Analytics.Location()

	authUseCase := authUC.New(userRepo, authSessionRepo, cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	profileUseCase := profileUC.New(userRepo, zapLogger)
	taskUseCase := taskUC.New(taskRepo, recorder, clk, loc, zapLogger)
	focusUseCase := focusUC.New(focusRepo, recorder, clk, loc, zapLogger)
	summaryUseCase := summaryUC.New(taskRepo, focusRepo, clk, loc, summaryUC.Config{
		UpcomingDays:  cfg.Analytics.UpcomingDays,
		UpcomingLimit: cfg.Analytics.UpcomingLimit,
	}, zapLogger)
	insightsUseCase := insightsUC.New(taskRepo, focusRepo, clk, loc, insightsUC.Config{
		LookbackDays:   cfg.Analytics.StreakLookbackDays,
		MaxSuggestions: cfg.Analytics.MaxSuggestions,
	}, zapLogger)
	timelineUseCase := timelineUC.New(timelineRepo, clk, loc, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Focus:    apiHandler.NewFocusHandler(focusUseCase, ctxAdapter, zapLogger),
		Summary:  apiHandler.NewSummaryHandler(summaryUseCase, ctxAdapter, zapLogger),
		Insights: apiHandler.NewInsightsHandler(insightsUseCase, ctxAdapter, zapLogger),
		Timeline: apiHandler.NewTimelineHandler(timelineUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

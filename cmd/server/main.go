package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskify/backend/api/handler"
	"github.com/taskify/backend/internal/config"
	"github.com/taskify/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskify/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskify/backend/internal/infrastructure/redis"
	"github.com/taskify/backend/internal/router"
	"github.com/taskify/backend/internal/services/lifecycle"
	"github.com/taskify/backend/pkg/httpcontext"
	"github.com/taskify/backend/pkg/logger"
	"github.com/taskify/backend/repository"
	boltRepo "github.com/taskify/backend/repository/bolt"
	pgRepo "github.com/taskify/backend/repository/postgres"
	redisRepo "github.com/taskify/backend/repository/redis"
	taskUC "github.com/taskify/backend/usecase/task"
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

	mon := monitor.New(cfg.Monitor.Interval, zapLogger)

	var taskRepo repository.TaskRepository

	switch cfg.Storage.Driver {
	case config.DriverBolt:
		store, err := boltRepo.Open(cfg.Storage.BoltPath)
		if err != nil {
			zapLogger.Fatal("bolt store open failed", zap.Error(err))
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return store.Close()
		})
		mon.Register("bolt", true, store.Ping)
		taskRepo = store
		zapLogger.Info("using embedded bolt storage", zap.String("path", cfg.Storage.BoltPath))

	default:
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
		mon.Register("postgres", true, pool.Ping)
		taskRepo = pgRepo.NewTaskRepository(pool)
	}

	if cfg.Cache.Enabled {
		redisClient, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		mon.Register("redis", false, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		taskRepo = redisRepo.NewTaskCache(taskRepo, redisClient, cfg.Cache.TTL)
		zapLogger.Info("task cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(cfg.AppName, mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

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

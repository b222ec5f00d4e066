// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"transit-report/internal/api"
	"transit-report/internal/catalog"
	"transit-report/internal/common/camunda"
	"transit-report/internal/common/config"
	"transit-report/internal/common/database"
	"transit-report/internal/common/logger"
	"transit-report/internal/common/observability"
	"transit-report/internal/generation"
	"transit-report/internal/jobstore"
	"transit-report/internal/layout"
	"transit-report/internal/planner"
	"transit-report/internal/renderer"

	cp "transit-report/internal/workers/report/create-plan"
	me "transit-report/internal/workers/report/materialize-elements"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(ctx, observability.Options{
		ServiceName:  cfg.Observability.ServiceName,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
	}, log)
	defer obs.Shutdown()

	// --- Catalogs ---
	shapes, err := catalog.LoadShapes(cfg.Catalog.ShapesPath)
	if err != nil {
		zapLog.Fatal("shape catalog load failed", zap.Error(err))
	}
	heuristics, err := catalog.LoadHeuristics(cfg.Catalog.HeuristicPath)
	if err != nil {
		zapLog.Fatal("heuristic catalog load failed", zap.Error(err))
	}
	zapLog.Info("Catalogs loaded", zap.Int("shapes", shapes.Len()), zap.Int("heuristics", heuristics.Len()))

	// --- External services ---
	generator, err := generation.New(ctx, cfg.APIs.GenAI, log)
	if err != nil {
		zapLog.Fatal("text generator init failed", zap.Error(err))
	}
	renderClient := renderer.NewClient(cfg.APIs.Renderer, log)

	measurer, err := layout.NewFontMeasurer(cfg.Layout.FontPath, cfg.Layout.LineSpacing)
	if err != nil {
		zapLog.Fatal("font load failed", zap.Error(err))
	}

	// --- Job store ---
	readyChecks := map[string]api.ReadyCheck{}
	var redis *database.RedisClient
	if cfg.JobStore.Driver == config.DriverRedis {
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis connection failed", zap.Error(err))
		}
		defer redis.Close()
		readyChecks["redis"] = redis.Ping
		zapLog.Info("Redis connected successfully")
	}

	store, err := jobstore.New(cfg.JobStore, redis)
	if err != nil {
		zapLog.Fatal("job store init failed", zap.Error(err))
	}

	service := planner.NewService(planner.ServiceOptions{
		Compiler:      planner.NewCompiler(shapes, heuristics, log),
		Resolver:      planner.NewResolver(generator, config.GetDuration(cfg.APIs.GenAI.Timeout), cfg.Planner.MaxConcurrency, log),
		Dispatcher:    planner.NewDispatcher(renderClient, cfg.Planner.MaxConcurrency, log),
		Materializer:  planner.NewMaterializer(layout.NewFitter(measurer, cfg.Layout.UnitsPerPoint), cfg.Layout.InsetMargin),
		Store:         store,
		Observability: obs,
		Logger:        log,
	})

	// --- Workers ---
	var workers []*camunda.Worker
	if cfg.Camunda.BrokerAddress != "" {
		zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
			ConnectAttempts:        10,
			ConnectBackoff:         2 * time.Second,
		}, log)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer zeebe.Close()
		readyChecks["zeebe"] = zeebe.HealthCheck
		zapLog.Info("Zeebe client connected successfully")

		createPlan, err := cp.NewHandler(cp.HandlerOptions{
			AppConfig:     cfg,
			Planner:       service,
			Observability: obs,
			Logger:        log,
		})
		if err != nil {
			zapLog.Fatal("worker init failed", zap.String("taskType", cp.TaskType), zap.Error(err))
		}

		materialize, err := me.NewHandler(me.HandlerOptions{
			AppConfig:     cfg,
			Materializer:  service,
			Observability: obs,
			Logger:        log,
		})
		if err != nil {
			zapLog.Fatal("worker init failed", zap.String("taskType", me.TaskType), zap.Error(err))
		}

		workers = append(workers,
			createPlan.Register(zeebe.GetClient()),
			materialize.Register(zeebe.GetClient()),
		)
	} else {
		zapLog.Warn("camunda.broker_address not set, serving HTTP only")
	}

	// --- HTTP ---
	router := api.NewRouter(api.RouterConfig{
		PlanHandler:    api.NewPlanHandler(service, log),
		ReadyChecks:    readyChecks,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Logger:         log,
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

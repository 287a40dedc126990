package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	printingapp "github.com/erp/suratjalan/internal/application/printing"
	"github.com/erp/suratjalan/internal/infrastructure/cache"
	"github.com/erp/suratjalan/internal/infrastructure/config"
	"github.com/erp/suratjalan/internal/infrastructure/logger"
	infra "github.com/erp/suratjalan/internal/infrastructure/printing"
	"github.com/erp/suratjalan/internal/infrastructure/telemetry"
	"github.com/erp/suratjalan/internal/interfaces/http/handler"
	"github.com/erp/suratjalan/internal/interfaces/http/middleware"
	"github.com/erp/suratjalan/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Logs pipeline first, so the bridged logger is used everywhere after it
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logs exporter", zap.Error(err))
	}
	if logsProvider.IsEnabled() {
		base, err := logger.NewCore(logCfg)
		if err != nil {
			log.Fatal("Failed to initialize logger core", zap.Error(err))
		}
		level, _ := logger.ParseLevel(cfg.Log.Level)
		log = telemetry.NewBridgedLogger(base, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: logsProvider,
			Level:          level,
		}), logger.Options()...)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Surat Jalan service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("engine", cfg.Printing.Engine),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		ProfileTypes:      cfg.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && cfg.Profiling.SpanProfiles {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// PDF engine and print service
	engine, err := infra.NewEngine(cfg.Printing, log)
	if err != nil {
		log.Fatal("Failed to initialize PDF engine", zap.Error(err))
	}
	renderer := infra.NewRenderer(engine, log)

	serviceOpts := []printingapp.Option{
		printingapp.WithRenderTimeout(cfg.Printing.RenderTimeout),
	}
	if meterProvider.IsEnabled() {
		renderMetrics, err := telemetry.NewRenderMetrics(telemetry.RenderMetricsConfig{
			Meter:  meterProvider.Meter("suratjalan/printing"),
			Logger: log,
		})
		if err != nil {
			log.Warn("Failed to register render metrics", zap.Error(err))
		} else {
			serviceOpts = append(serviceOpts, printingapp.WithMetrics(renderMetrics))
		}
	}

	renderCache, err := cache.NewRenderCache(ctx, cfg.Cache, log)
	if err != nil {
		log.Fatal("Failed to initialize render cache", zap.Error(err))
	}
	if renderCache != nil {
		serviceOpts = append(serviceOpts, printingapp.WithResultCache(renderCache, cfg.Cache.TTL))
	}
	printService := printingapp.NewPrintService(renderer, log, serviceOpts...)

	printHandler := handler.NewPrintHandler(printService)
	systemHandler := handler.NewSystemHandler(handler.SystemInfo{
		Name:    cfg.App.Name,
		Version: cfg.App.Version,
		Engine:  renderer.EngineName(),
		Telemetry: handler.TelemetryStatus{
			Tracing:      tracerProvider.IsEnabled(),
			Metrics:      meterProvider.IsEnabled(),
			Logs:         logsProvider.IsEnabled(),
			Profiling:    profiler.IsEnabled(),
			SpanProfiles: tracerProvider.IsSpanProfilesEnabled(),
		},
	})

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	httpEngine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := httpEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - otelgin span, request attributes, error status
	// 4. Logger - Log requests with trace correlation
	// 5. Metrics and profiling labels
	// 6. Security, CORS, BodyLimit
	httpEngine.Use(middleware.RequestID())
	httpEngine.Use(logger.Recovery(log))

	tracingConfig := middleware.DefaultTracingConfig()
	tracingConfig.ServiceName = cfg.Telemetry.ServiceName
	tracingConfig.Enabled = tracerProvider.IsEnabled()
	httpEngine.Use(middleware.TracingWithConfig(tracingConfig))
	httpEngine.Use(middleware.TracingAttributeInjector())
	httpEngine.Use(middleware.SpanErrorMarker())

	httpEngine.Use(logger.GinMiddleware(log))
	httpEngine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       meterProvider.IsEnabled(),
		Logger:        log,
	}))
	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()
	httpEngine.Use(middleware.ProfilingWithConfig(profilingConfig))

	httpEngine.Use(middleware.Secure())
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	httpEngine.Use(middleware.CORSWithConfig(corsConfig))
	httpEngine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	httpEngine.GET("/health", systemHandler.Health)

	r := router.NewRouter(httpEngine, router.WithAPIVersion("v1"))
	r.Register(handler.PrintRoutes(printHandler)).
		Register(handler.SystemRoutes(systemHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        httpEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := renderer.Close(); err != nil {
		log.Warn("Failed to close PDF engine", zap.Error(err))
	}
	if renderCache != nil {
		if err := renderCache.Close(); err != nil {
			log.Warn("Failed to close render cache", zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shutdown meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shutdown tracer provider", zap.Error(err))
	}
	if err := logsProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shutdown logs provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

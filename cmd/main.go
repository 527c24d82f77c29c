package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/slotwise/slotwise/internal/adapters/http/api"
	"github.com/slotwise/slotwise/internal/adapters/http/swagger"
	"github.com/slotwise/slotwise/internal/adapters/repository"
	service "github.com/slotwise/slotwise/internal/app"
	"github.com/slotwise/slotwise/internal/config"
	"github.com/slotwise/slotwise/internal/domain/schedule"
	"github.com/slotwise/slotwise/pkg/logger"
	"github.com/slotwise/slotwise/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Local .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	opts := []service.Option{
		service.WithLogger(loggerInstance),
		service.WithScoreWeights(cfg.FieldWeight, cfg.SkillWeight),
		service.WithCalendar(calendarOptions(cfg)...),
	}
	if cfg.PostgresDSN != "" {
		store, err := repository.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			os.Stderr.WriteString("failed to open postgres store: " + err.Error() + "\n")
			return
		}
		loggerInstance.Info(ctx, "using postgres store")
		opts = append(opts, service.WithStore(store))
	}

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.MaxScheduleLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// calendarOptions maps the configured calendar window onto scheduler options.
func calendarOptions(cfg *config.Config) []schedule.Option {
	opts := []schedule.Option{
		schedule.WithWorkingHours(
			time.Duration(cfg.DayStartHour)*time.Hour,
			time.Duration(cfg.DayEndHour)*time.Hour,
		),
		schedule.WithLunchBreak(
			time.Duration(cfg.LunchStartHour)*time.Hour,
			time.Duration(cfg.LunchMinutes)*time.Minute,
		),
		schedule.WithSlotLength(time.Duration(cfg.SlotMinutes) * time.Minute),
		schedule.WithBreaks(cfg.BreakAfter, time.Duration(cfg.BreakMinutes)*time.Minute),
	}
	if start, err := cfg.WindowStartDate(); err == nil {
		opts = append(opts, schedule.WithWindow(start, cfg.WindowDays))
	}
	return opts
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval) // Update every 10 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval) // Update every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *service.Service) {
	stats := svc.GetStats()

	if scheduled, ok := stats["last_scheduled"].(int); ok {
		metrics.UpdateScheduledInterviews(scheduled)
	}

	if unmatched, ok := stats["last_unmatched"].(int); ok {
		metrics.UpdateUnmatchedCandidates(unmatched)
	}
}

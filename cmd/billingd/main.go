package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billing-engine/config"
	"billing-engine/internal/adapter/gateway"
	httpHandler "billing-engine/internal/adapter/http/handler"
	"billing-engine/internal/adapter/notify"
	pgStorage "billing-engine/internal/adapter/storage/postgres"
	redisStorage "billing-engine/internal/adapter/storage/redis"
	"billing-engine/internal/core/ports"
	"billing-engine/internal/scheduler"
	"billing-engine/internal/service"
	"billing-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Billing Engine")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pageFanOut := cfg.Billing.PageSize
	if cfg.Billing.WorkerLimit > 0 && cfg.Billing.WorkerLimit < pageFanOut {
		pageFanOut = cfg.Billing.WorkerLimit
	}
	pool, err := pgStorage.NewPool(ctx, cfg.Database, pageFanOut, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize repositories
	invoiceRepo := pgStorage.NewInvoiceRepo(pool)
	customerRepo := pgStorage.NewCustomerRepo(pool)

	healthCheckers := []ports.HealthChecker{pgStorage.NewHealthCheck(pool)}

	// Notification sink. Redis is only dialed when the stream sink is on.
	var notifier ports.Notifier
	switch cfg.Notify.Sink {
	case "redis":
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		notifier = notify.NewStreamNotifier(rdb, cfg.Notify.Stream, cfg.Notify.MaxLen)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		log.Info().Str("stream", cfg.Notify.Stream).Msg("Redis notification stream enabled")
	default:
		notifier = notify.NewLogNotifier(log)
	}

	// Simulated payment gateway
	seed := cfg.Gateway.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	charger := gateway.NewMockCharger(cfg.Gateway.SuccessRate, cfg.Gateway.TransientRate, seed)

	// Business services
	billingSvc := service.NewBillingService(invoiceRepo, charger, notifier, service.BillingOptions{
		PageSize:    cfg.Billing.PageSize,
		MaxAttempts: cfg.Billing.MaxAttempts,
		WorkerLimit: cfg.Billing.WorkerLimit,
	}, log)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo, log)
	customerSvc := service.NewCustomerService(customerRepo, log)

	// Cron triggers
	sched := scheduler.New(billingSvc, log)
	if err := sched.ScheduleJobs(cfg.Schedule.ChargeCron, cfg.Schedule.ReminderCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register billing triggers")
	}
	if cfg.Schedule.Enabled {
		sched.Start()
		log.Info().
			Str("charge_cron", cfg.Schedule.ChargeCron).
			Str("reminder_cron", cfg.Schedule.ReminderCron).
			Msg("Billing schedule started")
	} else {
		log.Warn().Msg("Billing schedule disabled, passes run only via the API")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		InvoiceSvc:     invoiceSvc,
		CustomerSvc:    customerSvc,
		PassTrigger:    sched,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down...")

	// Stop firing new passes, then drain the HTTP server. A pass already in
	// flight finishes on its own goroutine.
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

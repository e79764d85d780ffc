package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cityview-school/admissions-payments/internal/config"
	"github.com/cityview-school/admissions-payments/internal/gateway"
	"github.com/cityview-school/admissions-payments/internal/handler"
	"github.com/cityview-school/admissions-payments/internal/logging"
	"github.com/cityview-school/admissions-payments/internal/middleware"
	"github.com/cityview-school/admissions-payments/internal/obs"
	"github.com/cityview-school/admissions-payments/internal/repository"
	"github.com/cityview-school/admissions-payments/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("admissions-payments", cfg.LogLevel, cfg.AppEnv)

	if cfg.PaystackSecretKey == "" {
		slog.Warn("PAYSTACK_SECRET_KEY not configured; payment paths will reject until it is set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := obs.NewMetrics(registry)

	admissions := repository.NewAdmissionRepository(db)
	deliveries := repository.NewWebhookDeliveryRepository(db)

	paystack := gateway.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey,
		time.Duration(cfg.GatewayTimeoutS)*time.Second)

	initiator := service.NewPaymentInitiator(paystack, admissions, cfg.PaystackSecretKey)
	reconciler := service.NewWebhookReconciler(admissions, deliveries, metrics)

	initiateHandler := handler.NewInitiateHandler(initiator, metrics)
	webhookHandler := handler.NewWebhookHandler(reconciler, cfg.PaystackSecretKey, metrics)
	admissionHandler := handler.NewAdmissionHandler(admissions)
	healthHandler := handler.NewHealthHandler(db)

	authed := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Liveness)
	mux.HandleFunc("GET /health/ready", healthHandler.Readiness)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.Handle("POST /api/v1/admissions/payments/initiate",
		authed(http.HandlerFunc(initiateHandler.InitiatePayment)))
	mux.Handle("GET /api/v1/admissions/{id}/payment",
		authed(http.HandlerFunc(admissionHandler.GetPayment)))

	// Registered without a method so the handler can answer 405 itself; the
	// gateway's retry logic distinguishes it from auth failures.
	mux.HandleFunc("/webhooks/paystack", webhookHandler.ReceiveGatewayWebhook)

	chain := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chain,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

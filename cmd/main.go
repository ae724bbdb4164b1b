package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/saoodchoudhary/rbmesports/backend"
	"github.com/saoodchoudhary/rbmesports/config"
	"github.com/saoodchoudhary/rbmesports/db"
	"github.com/saoodchoudhary/rbmesports/handlers"
	"github.com/saoodchoudhary/rbmesports/metrics"
	"github.com/saoodchoudhary/rbmesports/middleware"
	"github.com/saoodchoudhary/rbmesports/notify"
	"github.com/saoodchoudhary/rbmesports/repositories"
	api "github.com/saoodchoudhary/rbmesports/routes"
	"github.com/saoodchoudhary/rbmesports/services"
	"github.com/saoodchoudhary/rbmesports/storage"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("backend", cfg.BackendAPIURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.EnsureSchema(ctx, dbConn); err != nil {
		logger.Error("failed to prepare database schema", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database connection established")

	// Метрики
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// joinService создается ниже; gauge читает его лениво
	var joinService *services.JoinService
	collectorsSet := metrics.New(registry, func() int {
		if joinService == nil {
			return 0
		}
		return joinService.ActiveSessions()
	})

	// Клиент основного API
	apiClient, err := backend.NewClient(cfg.BackendAPIURL, cfg.BackendTimeout,
		backend.WithObserver(collectorsSet.ObserveBackend),
		backend.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create backend client", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация загрузчика файлов (Cloudflare R2)
	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewR2Uploader(ctx, storage.R2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 is not configured, file uploads are disabled")
	}

	// Инициализация WebSocket Hub
	hub := notify.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)

	// Инициализация сервисов
	sealer, err := services.NewTokenSealer([]byte(cfg.JWTSecretKey))
	if err != nil {
		logger.Error("failed to create token sealer", slog.Any("error", err))
		os.Exit(1)
	}
	toastService := services.NewToastService(hub, 0)
	authService := services.NewAuthService(apiClient, sessionRepo, sealer, []byte(cfg.JWTSecretKey), cfg.SessionTTL, logger)
	paymentService := services.NewPaymentService(apiClient, uploader, toastService, services.PaymentConfig{
		PaymentPageURL: cfg.PaymentPageURL,
		CheckoutKeyID:  cfg.RazorpayKeyID,
	}, logger)
	couponService := services.NewCouponService(apiClient, toastService, logger)
	registrationService := services.NewRegistrationService(apiClient, paymentService, toastService, logger)
	joinService = services.NewJoinService(apiClient, apiClient, couponService, registrationService, logger)
	tournamentService := services.NewTournamentService(apiClient)
	walletService := services.NewWalletService(apiClient, toastService, logger)
	adminService := services.NewAdminService(apiClient, uploader, logger)

	authService.OnLogout(joinService.Drop)
	authService.OnLogout(toastService.Clear)
	logger.Info("Services initialized")

	// Фоновые задачи
	scheduler, err := services.StartMaintenance(authService, joinService, cfg.JoinSessionIdle, logger)
	if err != nil {
		logger.Error("failed to start scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:          handlers.NewAuthHandler(authService, cfg.CookieSecure),
		Tournament:    handlers.NewTournamentHandler(tournamentService, joinService),
		Join:          handlers.NewJoinHandler(joinService),
		Wallet:        handlers.NewWalletHandler(walletService, paymentService),
		Payment:       handlers.NewPaymentHandler(paymentService),
		Admin:         handlers.NewAdminHandler(adminService),
		Notifications: handlers.NewNotificationHandler(toastService, hub, cfg.AllowedOrigins, logger),
	}
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, h, api.Options{
		Authenticator:  authService,
		RateLimiter:    middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		Metrics:        collectorsSet,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

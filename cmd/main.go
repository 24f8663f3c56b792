package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/shenikar/incident_triage/docs"
	"github.com/shenikar/incident_triage/internal/authenticity"
	"github.com/shenikar/incident_triage/internal/config"
	"github.com/shenikar/incident_triage/internal/geolocation"
	v1 "github.com/shenikar/incident_triage/internal/handler/http/v1"
	"github.com/shenikar/incident_triage/internal/repository"
	"github.com/shenikar/incident_triage/internal/service"
	"github.com/shenikar/incident_triage/internal/webhook"
	"github.com/shenikar/incident_triage/pkg/logger"
	"github.com/shenikar/incident_triage/pkg/postgres"
	redisclient "github.com/shenikar/incident_triage/pkg/redis"
)

// @title Incident Triage API
// @version 1.0
// @description Crowd-sourced incident reports with AI authenticity checks and community verification.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, webhook.WorkerConfig{
		URL:        cfg.WebhookURL,
		Secret:     cfg.WebhookSecret,
		Timeout:    cfg.WebhookTimeout,
		MaxRetries: cfg.WebhookMaxRetries,
		BaseDelay:  cfg.WebhookBaseDelay,
	})
	webhookWorker.Start(ctx)

	// Внешние провайдеры. Отсутствующий ключ не мешает старту:
	// соответствующая операция вернет ошибку "не настроено".
	validator, err := authenticity.NewGeminiValidator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout, log)
	if err != nil {
		log.Fatalf("Failed to create authenticity validator: %v", err)
	}
	geocoder, err := geolocation.NewGoogleGeocoder(cfg.GoogleMapsAPIKey, cfg.GeoTimeout)
	if err != nil {
		log.Fatalf("Failed to create geocoder: %v", err)
	}
	cellLocator := geolocation.NewUnwiredClient(cfg.UnwiredURL, cfg.UnwiredAPIKey, geolocation.WithTimeout(cfg.GeoTimeout))

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
	draftRepo := repository.NewDraftRepository(redisClient, cfg.DraftTTL)

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, draftRepo, validator, webhookPublisher, log, cfg)
	locationService := service.NewLocationService(geocoder, cellLocator, log)
	evidenceService := service.NewEvidenceService(draftRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, locationService, evidenceService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркер вебхуков и ждем выхода горутины
	cancel()
	select {
	case <-webhookWorker.Done():
	case <-shutdownCtx.Done():
		log.Warn("Webhook worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}

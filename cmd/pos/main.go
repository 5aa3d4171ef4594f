package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sharpcut-pos/sharpcut-pos-service/internal/clients"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/config"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/events"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/handlers"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/repository"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/server"
	"github.com/sharpcut-pos/sharpcut-pos-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; environment variables win in deployment.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting pos-service", zap.Int("port", cfg.Server.Port))

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	settingsStore := repository.NewPostgresSettingsStore(db, logger)
	catalogCache := repository.NewRedisCatalogCache(cfg.Redis, logger)

	catalogClient := clients.NewHTTPCatalogClient(cfg.BookingAPI, logger)
	discountClient := clients.NewHTTPDiscountClient(cfg.BookingAPI, logger)
	appointmentClient := clients.NewHTTPAppointmentClient(cfg.BookingAPI, logger)
	productClient := clients.NewHTTPProductClient(cfg.BookingAPI, logger)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	catalogService := service.NewCatalogService(catalogClient, catalogCache, cfg, logger)
	discountService := service.NewDiscountService(discountClient, logger)
	completionService := service.NewCompletionService(
		catalogService,
		appointmentClient,
		productClient,
		eventPublisher,
		cfg,
		logger,
	)

	h := handlers.NewHandlers(
		catalogService,
		discountService,
		completionService,
		settingsStore,
		cfg,
		logger,
	)

	srv := server.NewServer(cfg, h, logger)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	eventConsumer := events.NewKafkaConsumer(cfg.Kafka, catalogCache, logger)
	go func() {
		if err := eventConsumer.Start(context.Background()); err != nil && err != context.Canceled {
			logger.Error("Catalog event consumer failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eventConsumer.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)

	return db, nil
}

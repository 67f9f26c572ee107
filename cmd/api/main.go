package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	deliveryHTTP "github.com/frontandrew/carrent/internal/delivery/http"
	"github.com/frontandrew/carrent/internal/pkg/config"
	"github.com/frontandrew/carrent/internal/pkg/database"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/pkg/metrics"
	"github.com/frontandrew/carrent/internal/pkg/redis"
	"github.com/frontandrew/carrent/internal/repository"
	"github.com/frontandrew/carrent/internal/repository/cached"
	"github.com/frontandrew/carrent/internal/repository/postgres"
	"github.com/frontandrew/carrent/internal/usecase/car"
	"github.com/frontandrew/carrent/internal/usecase/reservation"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	logger.SetGlobalLogger(log)
	log.Info("Starting car rental API server", map[string]interface{}{
		"version": "1.0.0",
	})

	// =========================================================================
	// Подключение к PostgreSQL
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if cfg.Database.Migrate {
		applied, err := database.Migrate(ctx, db)
		if err != nil {
			log.Fatal("Failed to apply migrations", map[string]interface{}{
				"error": err.Error(),
			})
		}
		log.Info("Migrations applied", map[string]interface{}{
			"migrations": applied,
		})
	}

	// =========================================================================
	// Создание repositories
	// =========================================================================

	var carRepo repository.CarRepository = postgres.NewCarRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)

	// Redis не обязателен: без него автомобили читаются напрямую из БД
	if cfg.Redis.Enabled {
		cache, err := redis.NewClient(ctx, redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis is not available, cache disabled", map[string]interface{}{
				"error":   err.Error(),
				"address": cfg.Redis.Address(),
			})
		} else {
			defer cache.Close()
			carRepo = cached.NewCarRepository(carRepo, cache, cfg.Redis.TTL, log)
			log.Info("Connected to Redis", map[string]interface{}{
				"address": cfg.Redis.Address(),
				"ttl":     cfg.Redis.TTL.String(),
			})
		}
	}

	log.Info("Repositories initialized")

	// =========================================================================
	// Метрики
	// =========================================================================

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("carrent")
	}

	// =========================================================================
	// Создание use case services
	// =========================================================================

	carService := car.NewService(carRepo, reservationRepo, log)
	reservationService := reservation.NewService(carRepo, reservationRepo, m, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// Создание HTTP handlers и router
	// =========================================================================

	carHandler := deliveryHTTP.NewCarHandler(carService, log)
	reservationHandler := deliveryHTTP.NewReservationHandler(reservationService, log)

	router := deliveryHTTP.NewRouter(carHandler, reservationHandler, m, cfg, log)
	handler := router.Setup()

	log.Info("HTTP router configured", map[string]interface{}{
		"metrics": cfg.Metrics.Enabled,
	})

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера в goroutine
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			// Принудительное закрытие
			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"

	"github.com/ignatzorin/plumbing-backend/internal/catalog"
	"github.com/ignatzorin/plumbing-backend/internal/config"
	"github.com/ignatzorin/plumbing-backend/internal/db"
	"github.com/ignatzorin/plumbing-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/plumbing-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/plumbing-backend/internal/http/router"
	"github.com/ignatzorin/plumbing-backend/internal/logger"
	"github.com/ignatzorin/plumbing-backend/internal/repository"
	"github.com/ignatzorin/plumbing-backend/internal/service"
)

var (
	app = kingpin.New("plumbing-backend", "Сервис записи к мастерам-сантехникам")

	serveCmd  = app.Command("serve", "Запустить HTTP сервер").Default()
	servePort = serveCmd.Flag("port", "Порт HTTP сервера (перекрывает HTTP_PORT)").String()

	migrateCmd = app.Command("migrate", "Применить миграции и выйти")

	seedCmd = app.Command("seed", "Заполнить справочник мастеров и выйти")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		app.Fatalf("ошибка загрузки конфигурации: %v", err)
	}
	if *servePort != "" {
		cfg.HTTPPort = *servePort
	}

	log := logger.Setup(cfg.Env, cfg.LogLevel)

	if err := run(ctx, command, cfg); err != nil {
		stop()
		log.Fatalf("main: %v", err)
	}
}

// run выполняет команду; соединение с базой закрывается при любом исходе.
func run(ctx context.Context, command string, cfg *config.Config) error {
	// Подключение к базе и миграции.
	dbConn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("ошибка подключения к базе: %w", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn); err != nil {
		return fmt.Errorf("ошибка миграций: %w", err)
	}

	cache := service.NewCacheService()
	professionalRepo := repository.NewProfessionalRepository(dbConn)
	seedService := service.NewSeedService(professionalRepo, cache)

	switch command {
	case migrateCmd.FullCommand():
		logger.Entry().Info("main: миграции применены")
		return nil
	case seedCmd.FullCommand():
		inserted, err := seedService.SeedProfessionals(ctx)
		if err != nil {
			return fmt.Errorf("ошибка заполнения мастеров: %w", err)
		}
		logger.Entry().WithField("inserted", inserted).Info("main: справочник мастеров заполнен")
		return nil
	}

	if cfg.SeedOnStart {
		if _, err := seedService.SeedProfessionals(ctx); err != nil {
			return fmt.Errorf("ошибка заполнения мастеров: %w", err)
		}
	}

	if err := serve(ctx, cfg, dbConn, cache, seedService); err != nil {
		return fmt.Errorf("сервер завершился с ошибкой: %w", err)
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, dbConn *sqlx.DB, cache *service.CacheService, seedService *service.SeedService) error {
	services, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	// Репозитории.
	professionalRepo := repository.NewProfessionalRepository(dbConn)
	taskRepo := repository.NewTaskRepository(dbConn)

	// Сервисы.
	professionalService := service.NewProfessionalService(professionalRepo, services, cache, cfg.CacheTTL)
	taskService := service.NewTaskService(taskRepo, professionalRepo, services, cfg.Location())

	// HTTP хэндлеры.
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	catalogHandler := httpHandlers.NewCatalogHandler(services)
	professionalHandler := httpHandlers.NewProfessionalHandler(professionalService)
	taskHandler := httpHandlers.NewTaskHandler(taskService)
	statsHandler := httpHandlers.NewStatsHandler(taskService)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, healthHandler, catalogHandler, professionalHandler, taskHandler, statsHandler, seedHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: httpRouter.WithCORS(cfg, engine),
	}

	// ListenAndServe может завершиться раньше сигнала.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	goroutine.SafeGoWithContext(ctx, cache.Run)

	var serveErr error
	wg := conc.NewWaitGroup()

	// Завершаем сервер при получении сигнала.
	wg.Go(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Entry().Errorf("main: ошибка остановки http сервера: %v", err)
		}
	})

	wg.Go(func() {
		defer cancel()

		logger.Entry().WithFields(logrus.Fields{
			"port":   cfg.HTTPPort,
			"driver": cfg.DBDriver,
			"env":    cfg.Env,
		}).Info("main: HTTP сервер запущен")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	})

	wg.Wait()
	return serveErr
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Entry().Errorf("main: ошибка закрытия базы: %v", err)
	}
}

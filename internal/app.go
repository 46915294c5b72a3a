package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"property-scraper-service/internal/adapters/claudeai"
	"property-scraper-service/internal/adapters/imagefetcher"
	"property-scraper-service/internal/adapters/imagestore"
	"property-scraper-service/internal/adapters/jsonfile"
	logger_adapter "property-scraper-service/internal/adapters/logger"
	"property-scraper-service/internal/adapters/pagefetcher"
	postgres_adapter "property-scraper-service/internal/adapters/postgres"
	rabbitmq_adapter "property-scraper-service/internal/adapters/rabbitmq"
	"property-scraper-service/internal/adapters/rest"
	"property-scraper-service/internal/configs"
	"property-scraper-service/internal/core/port"
	"property-scraper-service/internal/core/usecase"
	fluentlogger "property-scraper-service/pkg/fluent_logger"
	"property-scraper-service/pkg/postgres"
	"property-scraper-service/pkg/rabbitmq/rabbitmq_common"
	"property-scraper-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	apiServer    *rest.Server
	dbPool       *pgxpool.Pool
	connManager  *rabbitmq_common.ConnectionManager
	producer     *rabbitmq_producer.Publisher
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. ХРАНИЛИЩА КОЛЛЕКЦИЙ ---
	var (
		dbPool          *pgxpool.Pool
		propertyStorage port.PropertyStoragePort
		historyStorage  port.HistoryStoragePort
	)
	switch appConfig.Storage.Backend {
	case configs.StorageBackendPostgres:
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Storage.DatabaseURL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		propertyStorage, err = postgres_adapter.NewPropertyStorageAdapter(context.Background(), dbPool)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create postgres property storage: %w", err)
		}
		historyStorage, err = postgres_adapter.NewHistoryStorageAdapter(context.Background(), dbPool)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create postgres history storage: %w", err)
		}
	default:
		propertyStorage, err = jsonfile.NewPropertyStorageAdapter(appConfig.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create property storage: %w", err)
		}
		historyStorage, err = jsonfile.NewHistoryStorageAdapter(appConfig.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create history storage: %w", err)
		}
	}
	appLogger.Info("Collection storage initialized", port.Fields{"backend": appConfig.Storage.Backend})

	// --- 3. СОБЫТИЯ RABBITMQ (опционально) ---
	var (
		connManager *rabbitmq_common.ConnectionManager
		producer    *rabbitmq_producer.Publisher
		events      port.ScrapeEventsPort
	)
	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(
			baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err = rabbitmq_common.NewManager(
			rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}

		producerBridge := rabbitmq_adapter.NewPkgLoggerBridge(
			baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"}))
		producer, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             appConfig.RabbitMQ.Exchange,
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   producerBridge,
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			connManager.Close()
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}

		events, err = rabbitmq_adapter.NewScrapeEventsPublisher(producer, appConfig.RabbitMQ.RoutingKey, baseLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create scrape events publisher: %w", err)
		}
		appLogger.Info("RabbitMQ events publisher initialized.", nil)
	}

	// --- 4. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	imageStore, err := imagestore.NewLocalDiskAdapter(appConfig.Images.Dir, appConfig.Images.PublicBaseURL, baseLogger)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, fmt.Errorf("failed to create image store: %w", err)
	}

	pageFetcher := pagefetcher.NewAdapter(baseLogger)
	imageFetcher := imagefetcher.NewAdapter(baseLogger)
	aiAdapter := claudeai.NewAdapter(appConfig.Anthropic.APIKey, appConfig.Anthropic.Model, baseLogger)
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. USE CASES (ядро бизнес-логики) ---
	catalogUC := usecase.NewPropertyCatalogUseCase(propertyStorage, historyStorage, events, baseLogger)
	processor := usecase.NewCandidateProcessor(imageFetcher, imageStore, aiAdapter, baseLogger)
	scrapeURLUC := usecase.NewScrapeURLUseCase(pageFetcher, aiAdapter, processor, catalogUC, baseLogger)
	scrapeHTMLUC := usecase.NewScrapeHTMLUseCase(aiAdapter, processor, catalogUC, baseLogger)
	scrapeBulkUC := usecase.NewScrapeBulkUseCase(scrapeURLUC, baseLogger)
	reEnhanceUC := usecase.NewReEnhanceUseCase(aiAdapter, catalogUC, baseLogger)
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. REST API ---
	scrapeHandler := rest.NewScrapeHandler(scrapeURLUC, scrapeHTMLUC, scrapeBulkUC)
	catalogHandler := rest.NewCatalogHandler(catalogUC, reEnhanceUC)
	apiServer := rest.NewServer(
		appConfig.HTTPPort,
		appConfig.AllowedOrigins,
		scrapeHandler,
		catalogHandler,
		imageStore.Dir(),
		baseLogger,
	)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:       appConfig,
		apiServer:    apiServer,
		dbPool:       dbPool,
		connManager:  connManager,
		producer:     producer,
		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		wg.Wait()

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.producer != nil {
			if err := a.producer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Пишем в stdout: fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.HTTPPort})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}

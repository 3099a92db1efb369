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
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/mongo"

	token_adapter "listing-service/internal/adapters/jwt"
	logger_adapter "listing-service/internal/adapters/logger"
	"listing-service/internal/adapters/memory"
	mongo_adapter "listing-service/internal/adapters/mongo"
	postgres_adapter "listing-service/internal/adapters/postgres"
	"listing-service/internal/adapters/rabbitmq"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/configs"
	"listing-service/internal/constants"
	"listing-service/internal/core/access"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/lifecycle"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
	"listing-service/internal/core/usecase"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *configs.AppConfig
	storage   *storage
	apiServer *rest.Server

	rabbitManager *rabbitmq.ConnectionManager
	publisher     *rabbitmq.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// storage - набор хранилищ выбранного драйвера и функция их закрытия
type storage struct {
	properties port.PropertyStoragePort
	inquiries  port.InquiryStoragePort
	contacts   port.ContactStoragePort
	users      port.UserDirectoryPort
	close      func(ctx context.Context)
}

// NewLogger собирает stdout-логгер и, если включен, Fluent Bit в один FanoutLogger
func NewLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.JSON,
		UseColor: !cfg.StdoutLogger.JSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	fanout, err := logger_adapter.NewFanoutLogger(activeLoggers...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fanout logger: %w", err)
	}

	return fanout.WithFields(port.Fields{"service_name": cfg.AppName}), fluentClient, nil
}

func NewApp(ctx context.Context, appConfig *configs.AppConfig) (*App, error) {
	// --- 1. ЛОГГЕРЫ ---
	baseLogger, fluentClient, err := NewLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{"fluent_enabled": appConfig.FluentBit.Enabled})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	// --- 2. ХРАНИЛИЩЕ ---
	application.storage, err = openStorage(ctx, appConfig, appLogger)
	if err != nil {
		application.shutdown()
		return nil, err
	}

	// --- 3. ШИНА СОБЫТИЙ ---
	events, err := application.initEvents(ctx, baseLogger)
	if err != nil {
		application.shutdown()
		return nil, err
	}

	// --- 4. ТОКЕНЫ ---
	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
	if err != nil {
		application.shutdown()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	// --- 5. ЯДРО ---
	st := application.storage
	guard := access.NewGuard()
	manager := lifecycle.NewManager()
	executor := query.NewExecutor(st.properties, st.users)
	compiler := filter.NewCompiler(filter.Options{
		DefaultLimit: appConfig.Pagination.DefaultLimit,
		MaxLimit:     appConfig.Pagination.MaxLimit,
	})

	metrics := rest.NewMetrics(strings.ReplaceAll(appConfig.AppName, "-", "_"))

	handlers := rest.Handlers{
		Properties: rest.NewPropertyHandler(
			usecase.NewListPropertiesUseCase(compiler, executor),
			usecase.NewGetPropertyUseCase(st.properties, executor),
			usecase.NewCreatePropertyUseCase(st.properties, guard, events, executor),
			usecase.NewUpdatePropertyUseCase(st.properties, guard, events, executor),
			usecase.NewDeletePropertyUseCase(st.properties, st.inquiries, guard, events),
			usecase.NewListMyPropertiesUseCase(guard, executor),
			metrics,
		),
		Inquiries: rest.NewInquiryHandler(
			usecase.NewCreateInquiryUseCase(st.properties, st.inquiries, guard, manager, events),
			usecase.NewListMyInquiriesUseCase(guard, executor, st.inquiries),
			usecase.NewListPropertyInquiriesUseCase(st.properties, st.inquiries, guard),
			usecase.NewUpdateInquiryStatusUseCase(st.properties, st.inquiries, guard, manager, events),
			usecase.NewDeleteInquiryUseCase(st.properties, st.inquiries, guard, events),
			metrics,
		),
		Contacts: rest.NewContactHandler(
			usecase.NewCreateContactUseCase(st.contacts, guard, manager, events),
			usecase.NewListContactsUseCase(st.contacts, guard),
			usecase.NewUpdateContactStatusUseCase(st.contacts, guard, manager, events),
			usecase.NewDeleteContactUseCase(st.contacts, guard, events),
			metrics,
		),
	}

	// --- 6. REST ---
	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
	}, handlers, tokenService, metrics, baseLogger)
	appLogger.Info("REST API server configured.", port.Fields{"storage_driver": appConfig.StorageDriver})

	return application, nil
}

// initEvents подключает RabbitMQ; без RABBITMQ_URL события не публикуются
func (a *App) initEvents(ctx context.Context, baseLogger port.LoggerPort) (port.EventPublisherPort, error) {
	if a.config.RabbitMQ.URL == "" {
		a.logger.Warn("RABBITMQ_URL is empty, domain events are disabled", nil)
		return rabbitmq.NoopEventPublisher{}, nil
	}

	manager, err := rabbitmq.NewConnectionManager(ctx, a.config.RabbitMQ.URL, baseLogger)
	if err != nil {
		a.logger.Error("Failed to connect to RabbitMQ", err, nil)
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	a.rabbitManager = manager

	publisher, err := rabbitmq.NewPublisher(rabbitmq.PublisherConfig{
		ExchangeName:             a.config.RabbitMQ.Exchange,
		ExchangeType:             constants.ListingEventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
	}, manager, baseLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
	}
	a.publisher = publisher

	events, err := rabbitmq.NewEventPublisherAdapter(publisher)
	if err != nil {
		return nil, err
	}
	a.logger.Info("RabbitMQ event publisher initialized", port.Fields{"exchange": a.config.RabbitMQ.Exchange})
	return events, nil
}

func openStorage(ctx context.Context, cfg *configs.AppConfig, logger port.LoggerPort) (*storage, error) {
	switch cfg.StorageDriver {
	case configs.StoragePostgres:
		pool, err := postgres_adapter.NewClient(ctx, postgres_adapter.Config{DatabaseURL: cfg.Database.URL})
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		logger.Info("Successfully connected to PostgreSQL pool!", nil)
		return postgresStorage(pool)

	case configs.StorageMongo:
		client, db, err := mongo_adapter.NewClient(ctx, mongo_adapter.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			logger.Error("Failed to connect to MongoDB", err, nil)
			return nil, err
		}
		logger.Info("Successfully connected to MongoDB!", port.Fields{"database": cfg.Mongo.Database})
		return mongoStorage(client, db)

	default:
		logger.Warn("Using in-memory storage, data is lost on restart", nil)
		return &storage{
			properties: memory.NewPropertyStore(),
			inquiries:  memory.NewInquiryStore(),
			contacts:   memory.NewContactStore(),
			users:      memory.NewUserDirectory(),
			close:      func(context.Context) {},
		}, nil
	}
}

func postgresStorage(pool *pgxpool.Pool) (*storage, error) {
	properties, err := postgres_adapter.NewPropertyRepository(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	inquiries, err := postgres_adapter.NewInquiryRepository(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	contacts, err := postgres_adapter.NewContactRepository(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	users, err := postgres_adapter.NewUserDirectory(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		properties: properties,
		inquiries:  inquiries,
		contacts:   contacts,
		users:      users,
		close:      func(context.Context) { pool.Close() },
	}, nil
}

func mongoStorage(client *mongo.Client, db *mongo.Database) (*storage, error) {
	disconnect := func(ctx context.Context) { _ = client.Disconnect(ctx) }

	properties, err := mongo_adapter.NewPropertyRepository(db)
	if err != nil {
		disconnect(context.Background())
		return nil, err
	}
	inquiries, err := mongo_adapter.NewInquiryRepository(db)
	if err != nil {
		disconnect(context.Background())
		return nil, err
	}
	contacts, err := mongo_adapter.NewContactRepository(db)
	if err != nil {
		disconnect(context.Background())
		return nil, err
	}
	users, err := mongo_adapter.NewUserDirectory(db)
	if err != nil {
		disconnect(context.Background())
		return nil, err
	}
	return &storage{
		properties: properties,
		inquiries:  inquiries,
		contacts:   contacts,
		users:      users,
		close:      disconnect,
	}, nil
}

// Run запускает сервер и ждет сигнала завершения или ошибки сервера.
func (a *App) Run() error {
	defer a.shutdown()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		return err
	}
}

// shutdown освобождает ресурсы в обратном порядке; безопасен для частично собранного App
func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutdown sequence initiated...", nil)

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.rabbitManager != nil {
		if err := a.rabbitManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.storage != nil {
		a.storage.close(ctx)
		a.logger.Info("Storage closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен, пишем в stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// Migrate создает схему postgres или индексы mongo для выбранного драйвера
func Migrate(ctx context.Context, cfg *configs.AppConfig, logger port.LoggerPort) error {
	switch cfg.StorageDriver {
	case configs.StoragePostgres:
		pool, err := postgres_adapter.NewClient(ctx, postgres_adapter.Config{DatabaseURL: cfg.Database.URL})
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		defer pool.Close()
		if err := postgres_adapter.Migrate(ctx, pool); err != nil {
			return err
		}
	case configs.StorageMongo:
		client, db, err := mongo_adapter.NewClient(ctx, mongo_adapter.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer client.Disconnect(ctx)
		if err := mongo_adapter.EnsureIndexes(ctx, db); err != nil {
			return err
		}
	default:
		logger.Info("Nothing to migrate for in-memory storage", nil)
		return nil
	}

	logger.Info("Migration completed", port.Fields{"storage_driver": cfg.StorageDriver})
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

// Package bootstrap is the composition root: it turns a loaded configuration
// into a running set of application services.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cadastrosapp "github.com/oficina/backend/internal/application/cadastros"
	estoqueapp "github.com/oficina/backend/internal/application/estoque"
	appevent "github.com/oficina/backend/internal/application/event"
	ordemservicoapp "github.com/oficina/backend/internal/application/ordemservico"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/infrastructure/auth"
	"github.com/oficina/backend/internal/infrastructure/config"
	"github.com/oficina/backend/internal/infrastructure/event"
	"github.com/oficina/backend/internal/infrastructure/logger"
	"github.com/oficina/backend/internal/infrastructure/persistence"
	"github.com/oficina/backend/internal/infrastructure/scheduler"
	"github.com/oficina/backend/internal/infrastructure/telemetry"
)

const processedKeyPrefix = "oficina:event:processed:"

// Services groups the application services exposed by the module
type Services struct {
	Customers  *cadastrosapp.CustomerService
	Vehicles   *cadastrosapp.VehicleService
	Catalog    *cadastrosapp.CatalogService
	Inventory  *estoqueapp.InventoryService
	WorkOrders *ordemservicoapp.WorkOrderService
}

// App holds every long-lived dependency built from the configuration
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *persistence.Database
	Tracer   *telemetry.TracerProvider
	Bus      *event.InMemoryEventBus
	Redis    *redis.Client
	Tokens   *auth.JWTService
	Services Services

	// Jobs runs background tasks; Reports fires the daily ones. Neither is
	// started by New.
	Jobs    *scheduler.Scheduler
	Reports *scheduler.DailyTrigger

	partsConsumed *event.IdempotentHandler
}

// New wires the application. On error every resource opened so far is released.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (app *App, err error) {
	if err := shared.CheckIdentitySource(); err != nil {
		return nil, err
	}

	app = &App{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			_ = app.Close(context.Background())
			app = nil
		}
	}()

	app.Tracer, err = telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	if err = app.openDatabase(); err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		app.Redis, err = auth.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		log.Info("Redis connected", zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	}

	app.Tokens = auth.NewJWTService(cfg.JWT, app.tokenBlacklist())
	app.Bus = event.NewInMemoryEventBus(log)
	if err = app.wireServices(); err != nil {
		return nil, err
	}

	if err = app.Bus.Start(ctx); err != nil {
		return nil, err
	}
	log.Info("Application wired",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("database_driver", cfg.Database.Driver),
		zap.Bool("telemetry", app.Tracer.IsEnabled()),
		zap.Bool("redis", app.Redis != nil),
	)
	return app, nil
}

func (a *App) openDatabase() error {
	cfg := a.Config
	gormLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, a.Logger, gormLevel, cfg.Telemetry.DBSlowQueryThresh)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	a.DB = db

	plugin := telemetry.NewDBTracingPlugin(
		telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database), nil, a.Logger)
	if err := plugin.Register(db.DB); err != nil {
		return fmt.Errorf("database tracing: %w", err)
	}

	// sqlite has no SQL migrations; its schema always comes from the models
	if cfg.Database.Driver == "sqlite" || cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		a.Logger.Info("Database schema migrated from models")
	}
	a.Logger.Info("Database connected", zap.String("driver", cfg.Database.Driver))
	return nil
}

func (a *App) tokenBlacklist() auth.TokenBlacklist {
	if a.Redis != nil {
		return auth.NewRedisTokenBlacklist(a.Redis)
	}
	return auth.NewInMemoryTokenBlacklist()
}

func (a *App) processedStore() event.ProcessedStore {
	if a.Redis != nil {
		return event.NewRedisProcessedStore(a.Redis, processedKeyPrefix)
	}
	return event.NewMemoryProcessedStore()
}

func (a *App) wireServices() error {
	gdb := a.DB.DB
	customerRepo := persistence.NewGormCustomerRepository(gdb)
	vehicleRepo := persistence.NewGormVehicleRepository(gdb)
	serviceRepo := persistence.NewGormServiceRepository(gdb)
	itemRepo := persistence.NewGormInventoryItemRepository(gdb)
	orderRepo := persistence.NewGormWorkOrderRepository(gdb)

	dispatcher := appevent.NewDispatcher(a.Bus, a.Logger)

	cadastrosACL := cadastrosapp.NewWorkOrderTranslator(customerRepo, vehicleRepo, serviceRepo)
	estoqueACL := estoqueapp.NewWorkOrderTranslator(itemRepo)

	a.Services = Services{
		Customers:  cadastrosapp.NewCustomerService(customerRepo, vehicleRepo, dispatcher, a.Logger.Named("cadastros")),
		Vehicles:   cadastrosapp.NewVehicleService(vehicleRepo, customerRepo, dispatcher, a.Logger.Named("cadastros")),
		Catalog:    cadastrosapp.NewCatalogService(serviceRepo, dispatcher, a.Logger.Named("cadastros")),
		Inventory:  estoqueapp.NewInventoryService(itemRepo, dispatcher, a.Logger.Named("estoque")),
		WorkOrders: ordemservicoapp.NewWorkOrderService(orderRepo, cadastrosACL, cadastrosACL, estoqueACL, dispatcher, a.Logger.Named("ordemservico")),
	}

	a.partsConsumed = event.NewIdempotentHandler(
		estoqueapp.NewPartsConsumedHandler(itemRepo, dispatcher, a.Logger.Named("estoque")),
		a.processedStore(),
		event.DefaultProcessedTTL,
		a.Logger,
	)
	a.Bus.Subscribe(a.partsConsumed)
	a.Bus.Subscribe(estoqueapp.NewStockBelowMinimumHandler(a.Logger.Named("estoque")))

	sc := a.Config.Scheduler
	a.Jobs = scheduler.NewScheduler(scheduler.Config{
		MaxConcurrentJobs: sc.Workers,
		JobTimeout:        sc.JobTimeout,
		RetryAttempts:     sc.RetryAttempts,
		RetryDelay:        sc.RetryDelay,
	}, a.Logger)
	trigger, err := scheduler.NewDailyTrigger(sc.LowStockReport, a.Jobs, a.Logger,
		estoqueapp.NewLowStockReport(itemRepo, a.Logger.Named("estoque")))
	if err != nil {
		return fmt.Errorf("scheduler.low_stock_report: %w", err)
	}
	a.Reports = trigger
	return nil
}

// StartBackground starts the job pool and the daily report trigger
func (a *App) StartBackground(ctx context.Context) error {
	if err := a.Jobs.Start(ctx); err != nil {
		return err
	}
	return a.Reports.Start(ctx)
}

// PartsConsumedStats reports how many completed work orders deducted stock
func (a *App) PartsConsumedStats() event.IdempotencyStats {
	if a.partsConsumed == nil {
		return event.IdempotencyStats{}
	}
	return a.partsConsumed.Stats()
}

// Check pings every external dependency
func (a *App) Check(ctx context.Context) error {
	var errs []error
	if err := shared.CheckIdentitySource(); err != nil {
		errs = append(errs, err)
	}
	if a.DB != nil {
		if err := a.DB.Ping(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close stops background work and the bus, flushes spans, then closes connections
func (a *App) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var errs []error
	if a.Reports != nil {
		if err := a.Reports.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Jobs != nil {
		if err := a.Jobs.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Bus != nil {
		if err := a.Bus.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Tracer != nil {
		if err := a.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}

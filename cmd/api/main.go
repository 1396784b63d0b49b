package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/armazem-api/internal/application/allocation"
	"github.com/jhoicas/armazem-api/internal/application/auth"
	"github.com/jhoicas/armazem-api/internal/application/catalog"
	"github.com/jhoicas/armazem-api/internal/application/labels"
	"github.com/jhoicas/armazem-api/internal/application/location"
	"github.com/jhoicas/armazem-api/internal/application/zonestock"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
	"github.com/jhoicas/armazem-api/internal/infrastructure/memory"
	"github.com/jhoicas/armazem-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/armazem-api/internal/infrastructure/pdf"
	"github.com/jhoicas/armazem-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/armazem-api/internal/interfaces/http"
	"github.com/jhoicas/armazem-api/pkg/config"
	"github.com/jhoicas/armazem-api/pkg/logger"
	"github.com/jhoicas/armazem-api/pkg/migrate"
)

// txRunner lo implementan postgres.TxRunner y memory.Store.
type txRunner interface {
	allocation.TxRunner
	zonestock.TxRunner
}

// backend repositorios del driver elegido.
type backend struct {
	tx          txRunner
	users       repository.UserRepository
	zones       repository.ZoneRepository
	racks       repository.RackRepository
	products    repository.ProductRepository
	orderLines  repository.OrderLineRepository
	allocations repository.AllocationRepository
	zoneStock   repository.ZoneStockRepository
	ready       func(ctx context.Context) error
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
		log.Warn().Msg("JWT_SECRET vacío: usando secreto de desarrollo")
	}

	ledgerMetrics := metrics.NewLedgerMetrics(prometheus.DefaultRegisterer)
	resolver := location.NewResolver(be.racks, be.zones, be.products)

	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     jwtSecret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewUseCase(be.zones, be.racks, be.orderLines)
	labelsUC := labels.NewUseCase(be.racks, be.zones, be.allocations, infrapdf.NewMarotoLabelGenerator())
	allocationUC := allocation.NewUseCase(be.tx, resolver, be.allocations, ledgerMetrics, cfg.Ledger.OperationTimeout)
	zoneStockUC := zonestock.NewUseCase(be.tx, resolver, be.zoneStock, ledgerMetrics, cfg.Ledger.OperationTimeout)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Armazém API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := be.ready(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		CatalogUC:         catalogUC,
		LabelsUC:          labelsUC,
		AllocationUC:      allocationUC,
		ZoneStockUC:       zoneStockUC,
		JWTSecret:         jwtSecret,
		Log:               log.Named("http").Zerolog(),
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		RateLimitMax:      cfg.HTTP.RateLimitMax,
		LoginRateLimitMax: cfg.HTTP.LoginRateLimitMax,
		Gatherer:          prometheus.DefaultGatherer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.Store.Driver == "memory" {
		store := memory.NewStore()
		if err := store.LoadSample(ctx); err != nil {
			return nil, err
		}
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return &backend{
			tx:          store,
			users:       store.Users(),
			zones:       store.Zones(),
			racks:       store.Racks(),
			products:    store.Products(),
			orderLines:  store.OrderLines(),
			allocations: store.Allocations(),
			zoneStock:   store.ZoneStock(),
			ready:       func(context.Context) error { return nil },
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		err := migrate.Up(ctx, db)
		_ = db.Close()
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &backend{
		tx:          postgres.NewTxRunner(pool),
		users:       postgres.NewUserRepository(pool),
		zones:       postgres.NewZoneRepository(pool),
		racks:       postgres.NewRackRepository(pool),
		products:    postgres.NewProductRepository(pool),
		orderLines:  postgres.NewOrderLineRepository(pool),
		allocations: postgres.NewAllocationRepository(pool),
		zoneStock:   postgres.NewZoneStockRepository(pool),
		ready:       pool.Ping,
		close:       pool.Close,
	}, nil
}

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/ports"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/messaging"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
	"github.com/jhoicas/Bodega-api/pkg/telemetry"
)

const swaggerFile = "./docs/swagger.json"

// storage repositorios y TxRunner del driver elegido.
type storage struct {
	txRunner  inventory.TxRunner
	locations repository.LocationRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	logs      repository.InventoryLogRepository
	close     func()
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.Telemetry, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var publisher ports.EventPublisher = messaging.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kafkaPub := messaging.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := kafkaPub.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor Kafka")
			}
		}()
		publisher = kafkaPub
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos en Kafka")
	}

	ledgerUC := inventory.NewLedgerUseCase(
		store.txRunner, store.locations, store.products, store.inventory, store.logs, publisher, log,
	)
	importUC := catalog.NewImportUseCase(store.products, publisher, log, cfg.Upload.TmpDir, cfg.Upload.BatchSize)
	productUC := usecase.NewProductUseCase(store.products, log)
	locationUC := usecase.NewLocationUseCase(store.locations)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Upload.MaxBytes,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.Tracing())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Bodega API",
		}))
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:   ledgerUC,
		ProductUC:  productUC,
		ImportUC:   importUC,
		LocationUC: locationUC,
		JWTSecret:  cfg.JWT.Secret,
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar trazas")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		mem := memory.NewStore()
		loc, err := mem.SeedDefaults()
		if err != nil {
			return nil, err
		}
		log.Warn().Str("location", loc.Code).Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			txRunner:  mem,
			locations: mem.Locations(),
			products:  mem.Products(),
			inventory: mem.Inventory(),
			logs:      mem.Logs(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:  postgres.NewTxRunner(pool),
		locations: postgres.NewLocationRepository(pool),
		products:  postgres.NewProductRepository(pool),
		inventory: postgres.NewInventoryRepository(pool),
		logs:      postgres.NewInventoryLogRepository(pool),
		close:     pool.Close,
	}, nil
}

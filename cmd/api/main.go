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
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/tienda-api/docs"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

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

	var (
		catalog  repository.Catalog
		txRunner inventory.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.New()
		catalog = store.Catalog()
		txRunner = store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			migrator, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			if err := migrator.Up(); err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			if err := migrator.Close(); err != nil {
				log.Warn().Err(err).Msg("cerrar migrador")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		catalog = postgres.NewCatalog(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	recorder := inventory.NewRecorder(catalog.History, log.Zerolog())
	deps := inventory.Deps{
		Tx:        txRunner,
		Products:  catalog.Products,
		Clients:   catalog.Clients,
		Suppliers: catalog.Suppliers,
		Returns:   catalog.Returns,
		Recorder:  recorder,
	}

	authUC := auth.NewAuthUseCase(catalog.Jefes, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: comprobante de venta
	receiptUC := billing.NewReceiptUseCase(catalog.Sales, infrapdf.NewMarotoReceiptGenerator(), cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		// Sin archivo se sirve el documento embebido, sin la UI.
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, se sirve /docs/doc.json")
		app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc()
			if err != nil {
				return err
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(doc)
		})
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    usecase.NewProductUseCase(catalog.Products, recorder),
		LotUC:        usecase.NewLotUseCase(catalog.Lots, recorder),
		ClientUC:     usecase.NewClientUseCase(catalog.Clients, recorder),
		SupplierUC:   usecase.NewSupplierUseCase(catalog.Suppliers, recorder),
		LedgerUC:     usecase.NewLedgerUseCase(catalog),
		ReceiptUC:    receiptUC,
		Sales:        inventory.NewSaleUseCase(deps),
		Entries:      inventory.NewEntryUseCase(deps),
		Exits:        inventory.NewExitUseCase(deps),
		Returns:      inventory.NewReturnUseCase(deps),
		Adjust:       inventory.NewAdjustUseCase(deps),
		Catalog:      inventory.NewStockCatalogUseCase(deps),
		Logger:       log.Zerolog(),
		JWTSecret:    cfg.JWT.Secret,
		AuthRequired: cfg.Auth.Required,
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

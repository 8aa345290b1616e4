package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/billing"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	LotUC      *usecase.LotUseCase
	ClientUC   *usecase.ClientUseCase
	SupplierUC *usecase.SupplierUseCase
	LedgerUC   *usecase.LedgerUseCase
	ReceiptUC  *billing.ReceiptUseCase

	Sales   *inventory.SaleUseCase
	Entries *inventory.EntryUseCase
	Exits   *inventory.ExitUseCase
	Returns *inventory.ReturnUseCase
	Adjust  *inventory.AdjustUseCase
	Catalog *inventory.StockCatalogUseCase

	Logger       zerolog.Logger
	JWTSecret    string
	AuthRequired bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Jefe (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/jefe/registro", authHandler.Register)
	app.Post("/jefe/login", authHandler.Login)

	// El resto identifica al jefe por jefe_id y, si viene, por el Bearer Token.
	r := app.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthRequired))

	productHandler := NewProductHandler(deps.ProductUC, deps.Catalog, deps.Adjust)
	inventoryHandler := NewInventoryHandler(InventoryHandlerDeps{
		Sales:   deps.Sales,
		Entries: deps.Entries,
		Exits:   deps.Exits,
		Returns: deps.Returns,
		Catalog: deps.Catalog,
		Lots:    deps.LotUC,
	})
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.ReceiptUC)
	partyHandler := NewPartyHandler(deps.ClientUC, deps.SupplierUC)

	// Altas
	r.Post("/registrar/producto", productHandler.Register)
	r.Post("/registrar/entrada", inventoryHandler.RegisterEntryWithProduct)
	r.Post("/registrar/inventario", inventoryHandler.RegisterLot)

	// Productos (las rutas fijas antes que /:id)
	r.Get("/productos", productHandler.List)
	r.Get("/productos/venta", productHandler.ListForSale)
	r.Put("/productos/actualizar-cantidad", productHandler.AdjustQuantity)
	r.Get("/productos/:id", productHandler.GetByID)
	r.Put("/productos/:id", productHandler.Update)
	r.Delete("/productos/:id", productHandler.Delete)

	// Lotes
	r.Put("/inventario/:id/venta", inventoryHandler.SetLotForSale)
	r.Get("/inventario/:jefeId", inventoryHandler.ListLots)

	// Ventas
	r.Post("/ventas/registrar", inventoryHandler.RegisterSale)
	r.Get("/ventas/:id/comprobante", ledgerHandler.Receipt)
	r.Get("/ventas/:id", ledgerHandler.Sale)

	// Entradas y salidas
	r.Post("/entradas/registrar", inventoryHandler.RegisterEntry)
	r.Get("/entradas/:id", ledgerHandler.Entry)
	r.Post("/salidas/registrar", inventoryHandler.RegisterExit)
	r.Get("/salidas/:id", ledgerHandler.Exit)

	// Devoluciones
	r.Post("/devoluciones", inventoryHandler.CreateReturn)
	r.Get("/devoluciones", ledgerHandler.Returns)
	r.Put("/devoluciones/:id/actualizar-stock", inventoryHandler.SettleReturn)

	// Clientes y proveedores
	r.Post("/clientes/registrar", partyHandler.CreateClient)
	r.Get("/clientes", partyHandler.ListClients)
	r.Get("/clientes/:id", partyHandler.GetClient)
	r.Put("/clientes/:id", partyHandler.UpdateClient)
	r.Post("/proveedores/registrar", partyHandler.CreateSupplier)
	r.Get("/proveedores", partyHandler.ListSuppliers)
	r.Get("/proveedores/:id", partyHandler.GetSupplier)

	// Bitácora
	r.Get("/movimientos", ledgerHandler.Movements)
	r.Get("/historial", ledgerHandler.History)
}

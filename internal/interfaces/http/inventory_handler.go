package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// InventoryHandler operaciones que mueven stock: ventas, entradas, salidas, devoluciones y lotes.
type InventoryHandler struct {
	sales   *inventory.SaleUseCase
	entries *inventory.EntryUseCase
	exits   *inventory.ExitUseCase
	returns *inventory.ReturnUseCase
	catalog *inventory.StockCatalogUseCase
	lots    *usecase.LotUseCase
}

// InventoryHandlerDeps casos de uso del handler de inventario.
type InventoryHandlerDeps struct {
	Sales   *inventory.SaleUseCase
	Entries *inventory.EntryUseCase
	Exits   *inventory.ExitUseCase
	Returns *inventory.ReturnUseCase
	Catalog *inventory.StockCatalogUseCase
	Lots    *usecase.LotUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(d InventoryHandlerDeps) *InventoryHandler {
	return &InventoryHandler{
		sales:   d.Sales,
		entries: d.Entries,
		exits:   d.Exits,
		returns: d.Returns,
		catalog: d.Catalog,
		lots:    d.Lots,
	}
}

// RegisterSale godoc
// @Summary      Registrar venta
// @Description  Todo o nada: si una línea no tiene stock no se modifica nada.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "Cliente y productos"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /ventas/registrar [post]
func (h *InventoryHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, in.JefeID)
	if err != nil {
		return respondError(c, err)
	}
	in.JefeID = jefeID
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	lineas := make([]inventory.SaleLineInput, 0, len(in.Productos))
	for _, l := range in.Productos {
		lineas = append(lineas, inventory.SaleLineInput{ProductoID: l.ID, Cantidad: l.Cantidad, Precio: l.Precio})
	}
	res, err := h.sales.Register(c.UserContext(), inventory.SaleInput{
		JefeID:    in.JefeID,
		ClienteID: in.ClienteID,
		Lineas:    lineas,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SaleResponse{Message: "Venta registrada", VentaID: res.VentaID, Total: res.Total})
}

// RegisterEntry godoc
// @Summary      Registrar entrada de un producto existente
// @Tags         entradas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryRequest  true  "Entrada"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /entradas/registrar [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, in.JefeID)
	if err != nil {
		return respondError(c, err)
	}
	in.JefeID = jefeID
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	res, err := h.entries.Register(c.UserContext(), inventory.EntryInput{
		JefeID:       in.JefeID,
		ProductoID:   in.ProductoID,
		ProveedorID:  in.ProveedorID,
		Cantidad:     in.Cantidad,
		PrecioCompra: *in.PrecioCompra,
		Target:       inventory.ReplenishTarget{LoteID: in.LoteID, Almacen: in.Almacen, Lote: in.Lote},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entryResponse(res))
}

// RegisterEntryWithProduct godoc
// @Summary      Registrar entrada creando el producto si no existe
// @Description  El producto se reutiliza por nombre normalizado; si es nuevo nace con la cantidad de la entrada.
// @Tags         entradas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NewProductEntryRequest  true  "Producto y entrada"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /registrar/entrada [post]
func (h *InventoryHandler) RegisterEntryWithProduct(c *fiber.Ctx) error {
	var in dto.NewProductEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, in.JefeID)
	if err != nil {
		return respondError(c, err)
	}
	in.JefeID = jefeID
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	res, err := h.entries.RegisterWithProduct(c.UserContext(), inventory.NewProductEntryInput{
		JefeID:       in.JefeID,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		Modelo:       in.Modelo,
		Marca:        in.Marca,
		Ubicacion:    in.Ubicacion,
		PrecioVenta:  in.PrecioVenta,
		Cantidad:     in.Cantidad,
		PrecioCompra: *in.PrecioCompra,
		ProveedorID:  in.ProveedorID,
		Fecha:        in.Fecha,
		Almacen:      in.Almacen,
		Lote:         in.Lote,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entryResponse(res))
}

func entryResponse(res *inventory.EntryResult) dto.EntryResponse {
	return dto.EntryResponse{
		Message:    "Entrada registrada",
		EntradaID:  res.EntradaID,
		ProductoID: res.ProductoID,
		LoteID:     res.LoteID,
		Nuevo:      res.Nuevo,
	}
}

// RegisterExit godoc
// @Summary      Registrar salida
// @Tags         salidas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExitRequest  true  "Salida"
// @Success      201   {object}  dto.ExitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /salidas/registrar [post]
func (h *InventoryHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, in.JefeID)
	if err != nil {
		return respondError(c, err)
	}
	in.JefeID = jefeID
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	id, err := h.exits.Register(c.UserContext(), inventory.ExitInput{
		JefeID:      in.JefeID,
		ProductoID:  in.ProductoID,
		Cantidad:    in.Cantidad,
		Observacion: in.Observacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExitResponse{Message: "Salida registrada", SalidaID: id})
}

// CreateReturn godoc
// @Summary      Registrar devolución
// @Description  Queda pendiente; el stock cambia al aplicarla.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnRequest  true  "Devolución"
// @Success      201   {object}  dto.ReturnCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /devoluciones [post]
func (h *InventoryHandler) CreateReturn(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, in.JefeID)
	if err != nil {
		return respondError(c, err)
	}
	in.JefeID = jefeID
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	ret, err := h.returns.Create(c.UserContext(), inventory.ReturnInput{
		JefeID:     in.JefeID,
		Tipo:       in.Tipo,
		ProductoID: in.ProductoID,
		Cantidad:   in.Cantidad,
		Motivo:     in.Motivo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReturnCreatedResponse{
		Message:      "Devolución registrada",
		DevolucionID: ret.ID,
		Estado:       ret.Estado,
	})
}

// SettleReturn godoc
// @Summary      Aplicar devolución al stock
// @Description  Una sola vez por devolución; la segunda aplicación devuelve 409.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Param        id       path   string  true   "ID de la devolución"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Param        lote_id  query  string  false  "Lote destino (devoluciones de venta)"
// @Success      200  {object}  dto.SettleReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /devoluciones/{id}/actualizar-stock [put]
func (h *InventoryHandler) SettleReturn(c *fiber.Ctx) error {
	var in dto.SettleReturnRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	var q dto.SettleReturnRequest
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	in.JefeID = firstNonEmpty(in.JefeID, q.JefeID)
	in.LoteID = firstNonEmpty(in.LoteID, q.LoteID)
	in.Almacen = firstNonEmpty(in.Almacen, q.Almacen)
	in.Lote = firstNonEmpty(in.Lote, q.Lote)

	jefeID, err := tenant(c, in.JefeID)
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	res, err := h.returns.Settle(c.UserContext(), jefeID, id, inventory.ReplenishTarget{
		LoteID:  in.LoteID,
		Almacen: in.Almacen,
		Lote:    in.Lote,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SettleReturnResponse{
		ProductoID:         res.ProductoID,
		CantidadModificada: res.CantidadModificada,
		LoteID:             res.LoteID,
	})
}

// RegisterLot godoc
// @Summary      Registrar lote
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Lote"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /registrar/inventario [post]
func (h *InventoryHandler) RegisterLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, in.JefeID)
	if err != nil {
		return respondError(c, err)
	}
	in.JefeID = jefeID
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	enVenta := true
	if in.EnVenta != nil {
		enVenta = *in.EnVenta
	}
	lot, err := h.catalog.RegisterLot(c.UserContext(), inventory.LotInput{
		JefeID:       in.JefeID,
		ProductoID:   in.ProductoID,
		Almacen:      in.Almacen,
		Lote:         in.Lote,
		Cantidad:     in.Cantidad,
		EnVenta:      enVenta,
		FechaIngreso: in.FechaIngreso,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToLotResponse(lot))
}

// ListLots godoc
// @Summary      Listar lotes del jefe
// @Tags         inventario
// @Produce      json
// @Param        jefeId  path  string  true  "Jefe"
// @Success      200  {array}  dto.LotResponse
// @Router       /inventario/{jefeId} [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Params("jefeId"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.lots.List(c.UserContext(), jefeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetLotForSale godoc
// @Summary      Marcar un lote a la venta o retirarlo
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del lote"
// @Param        body  body  dto.SetForSaleRequest  true  "en_venta"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /inventario/{id}/venta [put]
func (h *InventoryHandler) SetLotForSale(c *fiber.Ctx) error {
	var in dto.SetForSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, firstNonEmpty(in.JefeID, c.Query("jefe_id")))
	if err != nil {
		return respondError(c, err)
	}
	in.JefeID = jefeID
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	if err := h.lots.SetForSale(c.UserContext(), jefeID, id, *in.EnVenta); err != nil {
		return respondError(c, err)
	}
	msg := "Lote retirado de la venta"
	if *in.EnVenta {
		msg = "Lote puesto a la venta"
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

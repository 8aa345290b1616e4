package http

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// ProductHandler catálogo de productos y edición directa de cantidad.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	catalog *inventory.StockCatalogUseCase
	adjust  *inventory.AdjustUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, catalog *inventory.StockCatalogUseCase, adjust *inventory.AdjustUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, catalog: catalog, adjust: adjust}
}

// Register godoc
// @Summary      Registrar producto
// @Description  Con cantidad > 0 crea también el lote inicial y el movimiento de entrada.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /registrar/producto [post]
func (h *ProductHandler) Register(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
	p, err := h.catalog.RegisterProduct(c.UserContext(), inventory.ProductInput{
		JefeID:       in.JefeID,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		Modelo:       in.Modelo,
		Marca:        in.Marca,
		Ubicacion:    in.Ubicacion,
		Cantidad:     in.Cantidad,
		PrecioCompra: in.PrecioCompra,
		PrecioVenta:  in.PrecioVenta,
		Almacen:      in.Almacen,
		Lote:         in.Lote,
		FechaIngreso: in.FechaIngreso,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToProductResponse(p))
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         productos
// @Produce      json
// @Param        id       path   string  true   "ID del producto"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), jefeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos del jefe
// @Tags         productos
// @Produce      json
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), jefeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListForSale godoc
// @Summary      Productos con existencias en lotes a la venta
// @Tags         productos
// @Produce      json
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /productos/venta [get]
func (h *ProductHandler) ListForSale(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListForSale(c.UserContext(), jefeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar producto
// @Description  Solo campos permitidos; claves desconocidas (incluida cantidad) devuelven 400.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /productos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido o campo no permitido"))
	}
	requested := in.JefeID
	if requested == "" {
		requested = c.Query("jefe_id")
	}
	jefeID, err := tenant(c, requested)
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
	out, err := h.uc.Update(c.UserContext(), jefeID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Borra lotes, detalle, entradas, salidas, devoluciones y movimientos del producto en una transacción.
// @Tags         productos
// @Produce      json
// @Param        id       path   string  true   "ID del producto"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /productos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	id, err := idParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.catalog.DeleteProduct(c.UserContext(), jefeID, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Producto eliminado"})
}

// AdjustQuantity godoc
// @Summary      Fijar la cantidad de un producto
// @Description  La diferencia se repone en un lote (lote_id o uno nuevo) o se descuenta de los lotes con más existencias.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustQuantityRequest  true  "Nueva cantidad"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /productos/actualizar-cantidad [put]
func (h *ProductHandler) AdjustQuantity(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
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
	err = h.adjust.SetQuantity(c.UserContext(), inventory.AdjustInput{
		JefeID:     in.JefeID,
		ProductoID: in.ProductoID,
		Cantidad:   *in.Cantidad,
		Target:     inventory.ReplenishTarget{LoteID: in.LoteID, Almacen: in.Almacen, Lote: in.Lote},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Cantidad actualizada"})
}

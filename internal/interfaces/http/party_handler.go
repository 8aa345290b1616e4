package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// PartyHandler clientes y proveedores del jefe.
type PartyHandler struct {
	clients   *usecase.ClientUseCase
	suppliers *usecase.SupplierUseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(clients *usecase.ClientUseCase, suppliers *usecase.SupplierUseCase) *PartyHandler {
	return &PartyHandler{clients: clients, suppliers: suppliers}
}

// CreateClient godoc
// @Summary      Registrar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "Cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /clientes/registrar [post]
func (h *PartyHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.ClientRequest
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
	out, err := h.clients.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {array}  dto.ClientResponse
// @Router       /clientes [get]
func (h *PartyHandler) ListClients(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.clients.List(c.UserContext(), jefeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetClient godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Produce      json
// @Param        id       path   string  true   "ID del cliente"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /clientes/{id} [get]
func (h *PartyHandler) GetClient(c *fiber.Ctx) error {
	jefeID, id, err := tenantAndID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.clients.GetByID(c.UserContext(), jefeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateClient godoc
// @Summary      Editar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del cliente"
// @Param        body  body  dto.ClientRequest  true  "Cliente"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /clientes/{id} [put]
func (h *PartyHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	jefeID, err := tenant(c, in.JefeID)
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
	out, err := h.clients.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Registrar proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /proveedores/registrar [post]
func (h *PartyHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.SupplierRequest
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
	out, err := h.suppliers.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Produce      json
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {array}  dto.SupplierResponse
// @Router       /proveedores [get]
func (h *PartyHandler) ListSuppliers(c *fiber.Ctx) error {
	jefeID, err := tenant(c, c.Query("jefe_id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.suppliers.List(c.UserContext(), jefeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSupplier godoc
// @Summary      Obtener proveedor
// @Tags         proveedores
// @Produce      json
// @Param        id       path   string  true   "ID del proveedor"
// @Param        jefe_id  query  string  false  "Jefe (opcional con token)"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /proveedores/{id} [get]
func (h *PartyHandler) GetSupplier(c *fiber.Ctx) error {
	jefeID, id, err := tenantAndID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.suppliers.GetByID(c.UserContext(), jefeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
